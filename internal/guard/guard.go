// Package guard decides, before each navigation, whether the visitor should be
// sent between the public landing page and the jobs page.
package guard

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	// TokenKey is the storage key holding the auth token.
	TokenKey = "authToken"

	LandingPath = "/"
	JobsPath    = "/jobs"
)

// Route describes one end of a navigation.
type Route struct {
	Path string
}

// Env carries the execution context the guard runs in.
// Client is false during a server render pass, where browser storage is not
// reachable.
type Env struct {
	Client bool
}

// Storage is a read-only view of a browser-scoped key-value store.
// ok reports whether the key is present; a present key may hold "".
type Storage interface {
	GetItem(key string) (value string, ok bool, err error)
}

// Reason records which row of the decision table produced a Decision.
type Reason string

const (
	ReasonServerRender    Reason = "server_render"
	ReasonUnauthenticated Reason = "unauthenticated"
	ReasonAuthenticated   Reason = "authenticated"
	ReasonPassThrough     Reason = "pass_through"
)

// Decision is the outcome of a guard check. An empty Redirect lets the
// navigation proceed to the requested route.
type Decision struct {
	Redirect string
	Reason   Reason
}

// Allowed reports whether the navigation proceeds unchanged.
func (d Decision) Allowed() bool {
	return d.Redirect == ""
}

func (d Decision) String() string {
	if d.Allowed() {
		return "allow"
	}
	return "redirect " + d.Redirect
}

// Guard is safe for concurrent use as long as its Storage is.
type Guard struct {
	storage Storage
	logger  *zap.Logger
	onError func(error)
}

// Option configures a Guard.
type Option func(*Guard)

// WithLogger sets the logger used for debug output. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(g *Guard) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithErrorHook registers a callback invoked whenever the storage read fails.
func WithErrorHook(fn func(error)) Option {
	return func(g *Guard) { g.onError = fn }
}

// New returns a Guard reading the token from s. A nil s behaves like an empty
// store.
func New(s Storage, opts ...Option) *Guard {
	g := &Guard{storage: s, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Check evaluates the navigation from -> to. It never fails: storage problems
// are treated as "no token".
func (g *Guard) Check(env Env, to, from Route) Decision {
	if !env.Client {
		return Decision{Reason: ReasonServerRender}
	}

	authenticated := g.authenticated()

	var d Decision
	switch {
	case to.Path == JobsPath && !authenticated:
		d = Decision{Redirect: LandingPath, Reason: ReasonUnauthenticated}
	case authenticated && to.Path == LandingPath:
		d = Decision{Redirect: JobsPath, Reason: ReasonAuthenticated}
	default:
		d = Decision{Reason: ReasonPassThrough}
	}

	g.logger.Debug("route guard",
		zap.String("to", to.Path),
		zap.String("from", from.Path),
		zap.Bool("authenticated", authenticated),
		zap.Stringer("decision", d),
	)
	return d
}

func (g *Guard) authenticated() bool {
	if g.storage == nil {
		return false
	}
	_, ok, err := g.read()
	if err != nil {
		g.logger.Debug("auth token unreadable", zap.Error(err))
		if g.onError != nil {
			g.onError(err)
		}
		return false
	}
	return ok
}

// read shields the caller from panicking storage implementations.
func (g *Guard) read() (value string, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			value, ok, err = "", false, fmt.Errorf("storage panic: %v", r)
		}
	}()
	return g.storage.GetItem(TokenKey)
}
