package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/domain/poll"
	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
)

func newUIHandlers(t *testing.T, auth *mockAuthService, polls *mockPollService) *UIHandlers {
	t.Helper()
	return &UIHandlers{
		Auth:     auth,
		Polls:    polls,
		Renderer: newTestRenderer(t),
		Logger:   discardLogger(),
	}
}

func adminRequest(method, target string, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return SetSessionInContext(req, testSession("sess-1"), domainauth.RoleAdmin)
}

func TestAdminDashboard(t *testing.T) {
	polls := &mockPollService{
		DashboardFunc: func(context.Context, string) ([]poll.Overview, error) {
			return []poll.Overview{
				{
					Poll:    poll.Poll{ID: "p1", Title: "Lunch choice", Status: poll.StatusOpen},
					Results: poll.Results{Counts: map[string]int{"A": 3, "B": 1}},
				},
				{
					Poll: poll.Poll{ID: "p2", Title: "Closed one", Status: poll.StatusClosed},
				},
			}, nil
		},
	}
	h := newUIHandlers(t, &mockAuthService{}, polls)

	rec := httptest.NewRecorder()
	h.AdminDashboard(rec, adminRequest(http.MethodGet, "/admin", ""))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, "Lunch choice")
	assert.Contains(t, body, "/admin/poll/p1/live")
	assert.Contains(t, body, "Closed one")
	// Closed polls get no live link
	assert.NotContains(t, body, "/admin/poll/p2/live")
}

func TestAdminDashboard_APIErrorRendersInline(t *testing.T) {
	polls := &mockPollService{
		DashboardFunc: func(context.Context, string) ([]poll.Overview, error) {
			return nil, appErrors.API("poll service unavailable")
		},
	}
	h := newUIHandlers(t, &mockAuthService{}, polls)

	rec := httptest.NewRecorder()
	h.AdminDashboard(rec, adminRequest(http.MethodGet, "/admin", ""))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "poll service unavailable")
}

func TestCreatePollSubmit(t *testing.T) {
	t.Run("success redirects to the live page", func(t *testing.T) {
		var gotTitle string
		var gotOptions []string
		polls := &mockPollService{
			CreateFunc: func(_ context.Context, _ string, title string, options []string) (string, error) {
				gotTitle, gotOptions = title, options
				return "p-new", nil
			},
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		form := url.Values{"title": {"Lunch"}, "options": {"Pizza", "Sushi"}}
		rec := httptest.NewRecorder()
		h.CreatePollSubmit(rec, adminRequest(http.MethodPost, "/admin/polls", form.Encode()))

		assert.Equal(t, "Lunch", gotTitle)
		assert.Equal(t, []string{"Pizza", "Sushi"}, gotOptions)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/poll/p-new/live", rec.Header().Get("Location"))
	})

	t.Run("validation failure re-renders with the input kept", func(t *testing.T) {
		polls := &mockPollService{
			CreateFunc: func(context.Context, string, string, []string) (string, error) {
				return "", appErrors.ValidationField("options", "at least two options are required")
			},
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		form := url.Values{"title": {"Lunch"}, "options": {"Pizza"}}
		rec := httptest.NewRecorder()
		h.CreatePollSubmit(rec, adminRequest(http.MethodPost, "/admin/polls", form.Encode()))

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Contains(t, rec.Body.String(), "at least two options are required")
		assert.Contains(t, rec.Body.String(), "Lunch")
	})
}

func TestLivePollResultsFragment(t *testing.T) {
	t.Run("renders counts and percentages", func(t *testing.T) {
		polls := &mockPollService{
			ResultsFunc: func(_ context.Context, _ string, pollID string) (poll.Tally, error) {
				assert.Equal(t, "p1", pollID)
				return poll.Results{Counts: map[string]int{"A": 3, "B": 1}}.Tallied(), nil
			},
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		req := adminRequest(http.MethodGet, "/admin/poll/p1/live/results", "")
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()
		h.LivePollResults(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "75%")
		assert.Contains(t, body, "25%")
		assert.Contains(t, body, "4")
		assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
		// Fragment only, no layout
		assert.NotContains(t, body, "<html")
	})

	t.Run("fetch error renders inline for the next tick to retry", func(t *testing.T) {
		polls := &mockPollService{
			ResultsFunc: func(context.Context, string, string) (poll.Tally, error) {
				return poll.Tally{}, appErrors.Network("timeout")
			},
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		req := adminRequest(http.MethodGet, "/admin/poll/p1/live/results", "")
		req.SetPathValue("id", "p1")
		rec := httptest.NewRecorder()
		h.LivePollResults(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "timeout")
	})
}

func TestClosePoll(t *testing.T) {
	var closedID string
	polls := &mockPollService{
		ClosePollFunc: func(_ context.Context, _ string, pollID string) error {
			closedID = pollID
			return nil
		},
	}
	h := newUIHandlers(t, &mockAuthService{}, polls)

	req := adminRequest(http.MethodPost, "/admin/poll/p1/close", "")
	req.SetPathValue("id", "p1")
	rec := httptest.NewRecorder()
	h.ClosePoll(rec, req)

	assert.Equal(t, "p1", closedID)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/admin", rec.Header().Get("Location"))
}

func voterRequest(method, target, body string) *http.Request {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	return SetSessionInContext(req, testSession("sess-1"), domainauth.RoleVoter)
}

func TestUserDashboard(t *testing.T) {
	activePoll := &poll.ActivePoll{
		ID:    "p1",
		Title: "Lunch",
		Options: []poll.Option{
			{ID: "o1", Label: "Pizza"},
			{ID: "o2", Label: "Sushi"},
		},
	}

	t.Run("active poll shows voting buttons", func(t *testing.T) {
		polls := &mockPollService{
			ActiveFunc: func(context.Context, string) (*poll.ActivePoll, error) { return activePoll, nil },
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		rec := httptest.NewRecorder()
		h.UserDashboard(rec, voterRequest(http.MethodGet, "/user", ""))

		body := rec.Body.String()
		assert.Contains(t, body, "Lunch")
		assert.Contains(t, body, "Pizza")
		assert.Contains(t, body, "Sushi")
	})

	t.Run("voted session sees the recorded choice", func(t *testing.T) {
		polls := &mockPollService{
			ActiveFunc: func(context.Context, string) (*poll.ActivePoll, error) { return activePoll, nil },
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		sess := testSession("sess-1")
		sess.RecordVote("p1", "o1")
		req := httptest.NewRequest(http.MethodGet, "/user", nil)
		req = SetSessionInContext(req, sess, domainauth.RoleVoter)
		rec := httptest.NewRecorder()
		h.UserDashboard(rec, req)

		body := rec.Body.String()
		assert.Contains(t, body, "You voted for")
		assert.Contains(t, body, "Pizza")
		// No vote forms once a vote is recorded
		assert.NotContains(t, body, "/user/vote")
	})

	t.Run("no active poll", func(t *testing.T) {
		h := newUIHandlers(t, &mockAuthService{}, &mockPollService{})

		rec := httptest.NewRecorder()
		h.UserDashboard(rec, voterRequest(http.MethodGet, "/user", ""))

		assert.Contains(t, rec.Body.String(), "No active poll")
	})
}

func TestVoteSubmit(t *testing.T) {
	t.Run("success redirects back to the dashboard", func(t *testing.T) {
		var gotPoll, gotOption string
		polls := &mockPollService{
			VoteFunc: func(_ context.Context, _ *domainauth.Session, pollID, optionID string) (string, error) {
				gotPoll, gotOption = pollID, optionID
				return optionID, nil
			},
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		form := url.Values{"poll_id": {"p1"}, "option_id": {"o2"}}
		rec := httptest.NewRecorder()
		h.VoteSubmit(rec, voterRequest(http.MethodPost, "/user/vote", form.Encode()))

		assert.Equal(t, "p1", gotPoll)
		assert.Equal(t, "o2", gotOption)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/user", rec.Header().Get("Location"))
	})

	t.Run("api failure renders the dashboard with the error", func(t *testing.T) {
		polls := &mockPollService{
			VoteFunc: func(context.Context, *domainauth.Session, string, string) (string, error) {
				return "", appErrors.API("poll already closed")
			},
		}
		h := newUIHandlers(t, &mockAuthService{}, polls)

		form := url.Values{"poll_id": {"p1"}, "option_id": {"o2"}}
		rec := httptest.NewRecorder()
		h.VoteSubmit(rec, voterRequest(http.MethodPost, "/user/vote", form.Encode()))

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "poll already closed")
	})
}
