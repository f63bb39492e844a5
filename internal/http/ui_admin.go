package httpx

import (
	"net/http"

	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
)

// AdminDashboard lists all polls with their current counts.
func (h *UIHandlers) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, "Polls")
	overviews, err := h.Polls.Dashboard(r.Context(), bearer(r))
	if err != nil {
		h.logger().Warn("load admin dashboard", "error", err)
		data["Error"] = appErrors.UserMessage(err)
	}
	data["Polls"] = overviews
	h.Renderer.RenderPage(w, http.StatusOK, "admin", data)
}

// CreatePollForm renders the empty create-poll form.
func (h *UIHandlers) CreatePollForm(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, "Create poll")
	data["FormTitle"] = ""
	data["FormOptions"] = []string{"", ""}
	h.Renderer.RenderPage(w, http.StatusOK, "create-poll", data)
}

// CreatePollSubmit validates and creates a poll, then lands on its live page.
func (h *UIHandlers) CreatePollSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	title := r.PostFormValue("title")
	options := r.PostForm["options"]

	id, err := h.Polls.Create(r.Context(), bearer(r), title, options)
	if err != nil {
		status := http.StatusBadGateway
		if appErrors.IsValidation(err) {
			status = http.StatusUnprocessableEntity
		} else {
			h.logger().Warn("create poll", "error", err)
		}
		data := h.basePageData(r, "Create poll")
		data["Error"] = appErrors.UserMessage(err)
		data["FormTitle"] = title
		data["FormOptions"] = options
		h.Renderer.RenderPage(w, status, "create-poll", data)
		return
	}
	redirect(w, r, "/admin/poll/"+id+"/live")
}

// LivePoll renders the live results page; the numbers themselves arrive via
// the fragment below, refreshed every couple of seconds.
func (h *UIHandlers) LivePoll(w http.ResponseWriter, r *http.Request) {
	data := h.basePageData(r, "Live results")
	data["PollID"] = r.PathValue("id")
	h.Renderer.RenderPage(w, http.StatusOK, "live", data)
}

// LivePollResults serves the polled results fragment. A fetch error renders
// inline; the next refresh tick is the retry. The request context is the
// page's own: navigating away cancels the in-flight fetch, so a late answer
// is never painted.
func (h *UIHandlers) LivePollResults(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	data := h.basePageData(r, "Live results")
	data["PollID"] = pollID

	tally, err := h.Polls.Results(r.Context(), bearer(r), pollID)
	if err != nil {
		if r.Context().Err() != nil {
			// Page is gone; drop the response instead of logging noise
			return
		}
		data["Error"] = appErrors.UserMessage(err)
		h.Renderer.RenderFragment(w, http.StatusOK, "live", "live-results", data)
		return
	}
	data["Tally"] = tally
	h.Renderer.RenderFragment(w, http.StatusOK, "live", "live-results", data)
}

// ClosePoll ends a poll and returns to the dashboard.
func (h *UIHandlers) ClosePoll(w http.ResponseWriter, r *http.Request) {
	pollID := r.PathValue("id")
	if err := h.Polls.ClosePoll(r.Context(), bearer(r), pollID); err != nil {
		h.logger().Warn("close poll", "poll_id", pollID, "error", err)
		data := h.basePageData(r, "Live results")
		data["PollID"] = pollID
		data["Error"] = appErrors.UserMessage(err)
		h.Renderer.RenderPage(w, http.StatusBadGateway, "live", data)
		return
	}
	redirect(w, r, "/admin")
}
