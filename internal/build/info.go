// Package build holds version metadata stamped in by the linker:
//
//	go build -ldflags "-X github.com/joestump/jobs-portal/internal/build.Version=v1.2.0 -X ...Commit=abc1234"
package build

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Branch  = "unknown"
)

// String renders the metadata as a single line for `jobs-portal version` and
// the startup log.
func String() string {
	return fmt.Sprintf("jobs-portal %s (commit %s, branch %s)", Version, Commit, Branch)
}
