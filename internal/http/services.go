package httpx

import (
	"context"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/domain/poll"
)

// AuthService is the slice of the auth service the HTTP layer uses.
type AuthService interface {
	BeginLogin(ctx context.Context) (string, error)
	CompleteLogin(ctx context.Context, code, state string) (*domainauth.Session, error)
	GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error)
	RoleFor(sess *domainauth.Session) domainauth.Role
	Logout(ctx context.Context, sessionID string) error
	LogoutURL() string
}

// PollService is the slice of the poll service the HTTP layer uses.
type PollService interface {
	Dashboard(ctx context.Context, bearer string) ([]poll.Overview, error)
	Create(ctx context.Context, bearer, title string, options []string) (string, error)
	Active(ctx context.Context, bearer string) (*poll.ActivePoll, error)
	Results(ctx context.Context, bearer, pollID string) (poll.Tally, error)
	Vote(ctx context.Context, sess *domainauth.Session, pollID, optionID string) (string, error)
	ClosePoll(ctx context.Context, bearer, pollID string) error
}
