package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/joestump/jobs-portal/internal/guard"
	"github.com/joestump/jobs-portal/internal/metrics"
)

type contextKey string

const browserContextKey contextKey = "browser"

// DefaultServerRenderHeader marks requests issued by a server render pass.
// Any non-empty value other than "client" counts.
const DefaultServerRenderHeader = "X-Render-Mode"

// Middleware runs the route guard in front of page handlers.
type Middleware struct {
	storage            RequestStorage
	logger             *zap.Logger
	serverRenderHeader string
}

// NewMiddleware creates a new auth Middleware. An empty header falls back to
// DefaultServerRenderHeader.
func NewMiddleware(rs RequestStorage, logger *zap.Logger, serverRenderHeader string) *Middleware {
	if logger == nil {
		logger = zap.NewNop()
	}
	if serverRenderHeader == "" {
		serverRenderHeader = DefaultServerRenderHeader
	}
	return &Middleware{storage: rs, logger: logger, serverRenderHeader: serverRenderHeader}
}

// BrowserDetection records on the request context whether the request is a
// browser navigation, so later middleware and handlers agree on the answer.
func (m *Middleware) BrowserDetection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), browserContextKey, m.isBrowserRequest(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IsBrowserRequest reports whether r is a navigation made by a browser.
func (m *Middleware) IsBrowserRequest(r *http.Request) bool {
	if v, ok := r.Context().Value(browserContextKey).(bool); ok {
		return v
	}
	return m.isBrowserRequest(r)
}

// isBrowserRequest decides in this order:
//  1. a server render pass is never a browser request
//  2. /api/ and /static/ are not navigations
//  3. HTMX requests come from the browser
//  4. a missing Accept header is assumed to be a browser
//  5. otherwise the client must accept text/html
func (m *Middleware) isBrowserRequest(r *http.Request) bool {
	if mode := r.Header.Get(m.serverRenderHeader); mode != "" && !strings.EqualFold(mode, "client") {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/api/") || strings.HasPrefix(r.URL.Path, "/static/") {
		return false
	}
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	accept := r.Header.Get("Accept")
	if accept == "" {
		return true
	}
	return strings.Contains(accept, "text/html")
}

// Guard redirects between the landing page and the jobs page based on the
// presence of the auth token in the visitor's storage.
func (m *Middleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		g := guard.New(m.storage.ForRequest(r),
			guard.WithLogger(m.logger),
			guard.WithErrorHook(func(err error) {
				metrics.GuardStorageErrorsTotal.Inc()
				m.logger.Warn("auth token read failed", zap.String("path", r.URL.Path), zap.Error(err))
			}),
		)
		d := g.Check(
			guard.Env{Client: m.IsBrowserRequest(r)},
			guard.Route{Path: r.URL.Path},
			guard.Route{Path: refererPath(r)},
		)

		metrics.GuardDuration.Observe(time.Since(start).Seconds())
		metrics.GuardDecisionsTotal.WithLabelValues(string(d.Reason)).Inc()

		if !d.Allowed() {
			metrics.GuardRedirectsTotal.WithLabelValues(d.Redirect).Inc()
			http.Redirect(w, r, d.Redirect, http.StatusFound)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// refererPath returns the path the visitor navigated from, or "" when unknown.
func refererPath(r *http.Request) string {
	ref := r.Referer()
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil {
		return ""
	}
	return u.Path
}
