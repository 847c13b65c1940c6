package handler

import "net/http"

// LandingHandler serves the public landing page.
type LandingHandler struct{}

// NewLandingHandler creates a new LandingHandler.
func NewLandingHandler() *LandingHandler { return &LandingHandler{} }

// Index serves GET /. Signed-in visitors never reach it: the route guard
// sends them to /jobs first.
func (h *LandingHandler) Index(w http.ResponseWriter, r *http.Request) {
	render(w, "landing.html", newBasePage(r, "Welcome"))
}
