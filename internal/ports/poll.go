package ports

import (
	"context"

	"github.com/pollbooth/pollbooth-ui/internal/domain/poll"
)

// PollAPI is the remote poll service. Every call carries the caller's
// identity token as the bearer credential; the API owns all poll data.
type PollAPI interface {
	// ListPolls returns all polls visible to the caller.
	ListPolls(ctx context.Context, bearer string) ([]poll.Poll, error)
	// Results returns the current vote counts for a poll.
	Results(ctx context.Context, bearer, pollID string) (poll.Results, error)
	// Create creates a poll and returns its id.
	Create(ctx context.Context, bearer string, req poll.CreateRequest) (string, error)
	// Active returns the poll currently open for voting, or nil when there is none.
	Active(ctx context.Context, bearer string) (*poll.ActivePoll, error)
	// Vote casts a vote for an option of a poll.
	Vote(ctx context.Context, bearer, pollID, optionID string) error
	// Close marks a poll closed.
	Close(ctx context.Context, bearer, pollID string) error
}
