package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joestump/jobs-portal/internal/guard"
	"github.com/joestump/jobs-portal/internal/localstore"
)

type checkOptions struct {
	token        string
	profile      string
	from         string
	serverRender bool
}

// newCheckCmd evaluates the route guard offline, without a browser or server.
func newCheckCmd() *cobra.Command {
	var opts checkOptions

	cmd := &cobra.Command{
		Use:   "check PATH",
		Short: "Show what the route guard does for a navigation",
		Example: `  jobs-portal check /jobs
  jobs-portal check / --token abc123
  jobs-portal check / --profile ~/.config/jobs-portal/profile`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := guard.New(opts.storage(cmd)).Check(
				guard.Env{Client: !opts.serverRender},
				guard.Route{Path: args[0]},
				guard.Route{Path: opts.from},
			)
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.token, "token", "", "auth token present in storage")
	f.StringVar(&opts.profile, "profile", "", "directory holding one file per storage key")
	f.StringVar(&opts.from, "from", "", "path the navigation starts from")
	f.BoolVar(&opts.serverRender, "server-render", false, "evaluate as a server render pass")
	cmd.MarkFlagsMutuallyExclusive("token", "profile")

	return cmd
}

// storage picks the profile directory, else --token (even when empty), else
// an empty store.
func (o checkOptions) storage(cmd *cobra.Command) guard.Storage {
	switch {
	case o.profile != "":
		return localstore.Open(o.profile)
	case cmd.Flags().Changed("token"):
		return guard.NewMemoryStorage(map[string]string{guard.TokenKey: o.token})
	default:
		return guard.NewMemoryStorage(nil)
	}
}
