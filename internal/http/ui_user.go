package httpx

import (
	"net/http"

	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
)

// UserDashboard shows the active poll with voting buttons, the recorded vote
// once one was cast, or a "no active poll" notice.
func (h *UIHandlers) UserDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderUserDashboard(w, r, http.StatusOK, "")
}

// VoteSubmit casts a vote. A session that already voted on the poll is
// served the recorded choice without another API call.
func (h *UIHandlers) VoteSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return
	}
	sess := SessionFromContext(r.Context())
	pollID := r.PostFormValue("poll_id")
	optionID := r.PostFormValue("option_id")

	if _, err := h.Polls.Vote(r.Context(), sess, pollID, optionID); err != nil {
		status := http.StatusBadGateway
		if appErrors.IsValidation(err) {
			status = http.StatusUnprocessableEntity
		} else {
			h.logger().Warn("cast vote", "poll_id", pollID, "error", err)
		}
		h.renderUserDashboard(w, r, status, appErrors.UserMessage(err))
		return
	}
	redirect(w, r, "/user")
}

func (h *UIHandlers) renderUserDashboard(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	data := h.basePageData(r, "Vote")
	if errMsg != "" {
		data["Error"] = errMsg
	}

	active, err := h.Polls.Active(r.Context(), bearer(r))
	if err != nil {
		h.logger().Warn("load active poll", "error", err)
		data["Error"] = appErrors.UserMessage(err)
	} else if active != nil {
		data["ActivePoll"] = active
		if sess := SessionFromContext(r.Context()); sess != nil {
			if voted := sess.VotedOption(active.ID); voted != "" {
				data["VotedOption"] = voted
				for _, opt := range active.Options {
					if opt.ID == voted {
						data["VotedLabel"] = opt.Label
					}
				}
			}
		}
	}
	h.Renderer.RenderPage(w, status, "user", data)
}
