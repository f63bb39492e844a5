package httpx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	pollbooth "github.com/pollbooth/pollbooth-ui"
	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/domain/poll"
)

// mockAuthService implements AuthService with overridable behavior per test.
type mockAuthService struct {
	BeginLoginFunc    func(ctx context.Context) (string, error)
	CompleteLoginFunc func(ctx context.Context, code, state string) (*domainauth.Session, error)
	GetSessionFunc    func(ctx context.Context, sessionID string) (*domainauth.Session, error)
	RoleForFunc       func(sess *domainauth.Session) domainauth.Role
	LogoutFunc        func(ctx context.Context, sessionID string) error
	LogoutURLFunc     func() string
}

var _ AuthService = (*mockAuthService)(nil)

func (m *mockAuthService) BeginLogin(ctx context.Context) (string, error) {
	if m.BeginLoginFunc != nil {
		return m.BeginLoginFunc(ctx)
	}
	return "https://idp.example.com/oauth2/authorize?state=s1", nil
}

func (m *mockAuthService) CompleteLogin(ctx context.Context, code, state string) (*domainauth.Session, error) {
	if m.CompleteLoginFunc != nil {
		return m.CompleteLoginFunc(ctx, code, state)
	}
	return testSession("sess-1"), nil
}

func (m *mockAuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if m.GetSessionFunc != nil {
		return m.GetSessionFunc(ctx, sessionID)
	}
	return nil, errors.New("no session")
}

func (m *mockAuthService) RoleFor(sess *domainauth.Session) domainauth.Role {
	if m.RoleForFunc != nil {
		return m.RoleForFunc(sess)
	}
	return domainauth.RoleVoter
}

func (m *mockAuthService) Logout(ctx context.Context, sessionID string) error {
	if m.LogoutFunc != nil {
		return m.LogoutFunc(ctx, sessionID)
	}
	return nil
}

func (m *mockAuthService) LogoutURL() string {
	if m.LogoutURLFunc != nil {
		return m.LogoutURLFunc()
	}
	return "https://idp.example.com/logout?client_id=c1"
}

// mockPollService implements PollService with overridable behavior per test.
type mockPollService struct {
	DashboardFunc func(ctx context.Context, bearer string) ([]poll.Overview, error)
	CreateFunc    func(ctx context.Context, bearer, title string, options []string) (string, error)
	ActiveFunc    func(ctx context.Context, bearer string) (*poll.ActivePoll, error)
	ResultsFunc   func(ctx context.Context, bearer, pollID string) (poll.Tally, error)
	VoteFunc      func(ctx context.Context, sess *domainauth.Session, pollID, optionID string) (string, error)
	ClosePollFunc func(ctx context.Context, bearer, pollID string) error
}

var _ PollService = (*mockPollService)(nil)

func (m *mockPollService) Dashboard(ctx context.Context, bearer string) ([]poll.Overview, error) {
	if m.DashboardFunc != nil {
		return m.DashboardFunc(ctx, bearer)
	}
	return nil, nil
}

func (m *mockPollService) Create(ctx context.Context, bearer, title string, options []string) (string, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bearer, title, options)
	}
	return "p-new", nil
}

func (m *mockPollService) Active(ctx context.Context, bearer string) (*poll.ActivePoll, error) {
	if m.ActiveFunc != nil {
		return m.ActiveFunc(ctx, bearer)
	}
	return nil, nil
}

func (m *mockPollService) Results(ctx context.Context, bearer, pollID string) (poll.Tally, error) {
	if m.ResultsFunc != nil {
		return m.ResultsFunc(ctx, bearer, pollID)
	}
	return poll.Tally{}, nil
}

func (m *mockPollService) Vote(ctx context.Context, sess *domainauth.Session, pollID, optionID string) (string, error) {
	if m.VoteFunc != nil {
		return m.VoteFunc(ctx, sess, pollID, optionID)
	}
	return optionID, nil
}

func (m *mockPollService) ClosePoll(ctx context.Context, bearer, pollID string) error {
	if m.ClosePollFunc != nil {
		return m.ClosePollFunc(ctx, bearer, pollID)
	}
	return nil
}

func testSession(id string) *domainauth.Session {
	now := time.Now()
	return &domainauth.Session{
		ID: id,
		Tokens: domainauth.TokenBundle{
			AccessToken: "at",
			IDToken:     "id-token",
			TokenType:   "Bearer",
			ExpiresIn:   3600,
		},
		Status:    "Logged in",
		CreatedAt: now,
		ExpiresAt: now.Add(time.Hour),
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	renderer, err := NewTemplateRenderer(pollbooth.TemplateFS(), slog.Default())
	require.NoError(t, err)
	return renderer
}
