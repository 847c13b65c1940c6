package handler

import (
	"io/fs"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/joestump/jobs-portal/internal/auth"
	"github.com/joestump/jobs-portal/internal/logging"
	"github.com/joestump/jobs-portal/web"
)

// Deps holds all dependencies required to build the HTTP router.
type Deps struct {
	Logger         *zap.Logger
	SessionManager *scs.SessionManager // nil when the token lives in a cookie
	AuthMiddleware *auth.Middleware
}

// NewRouter assembles the full chi router with all middleware and routes.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	// HEAD navigations take the GET route so the guard runs for them too.
	r.Use(middleware.GetHead)
	r.Use(middleware.RealIP)
	r.Use(logging.Requests(logger))
	r.Use(logging.Recover(logger))

	// Static assets (embedded). Use fs.Sub so the file server sees
	// css/app.css directly, not static/css/... paths.
	staticSub, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic("failed to sub static FS: " + err.Error())
	}
	r.Handle("/static/*", http.StripPrefix("/static", http.FileServerFS(staticSub)))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	// Pages: the route guard runs before every navigation.
	landing := NewLandingHandler()
	jobs := NewJobsHandler()
	r.Group(func(r chi.Router) {
		if deps.SessionManager != nil {
			r.Use(deps.SessionManager.LoadAndSave)
		}
		r.Use(deps.AuthMiddleware.BrowserDetection)
		r.Use(deps.AuthMiddleware.Guard)

		r.Get("/", landing.Index)
		r.Get("/jobs", jobs.Show)
		r.NotFound(notFound)
	})

	return r
}

func notFound(w http.ResponseWriter, r *http.Request) {
	renderStatus(w, http.StatusNotFound, "not_found.html", newBasePage(r, "Not found"))
}
