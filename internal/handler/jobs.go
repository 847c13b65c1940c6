package handler

import "net/http"

// JobsHandler serves the protected jobs page.
type JobsHandler struct{}

// NewJobsHandler creates a new JobsHandler.
func NewJobsHandler() *JobsHandler { return &JobsHandler{} }

// Show serves GET /jobs. Access control is done by the route guard.
func (h *JobsHandler) Show(w http.ResponseWriter, r *http.Request) {
	render(w, "jobs.html", newBasePage(r, "Jobs"))
}
