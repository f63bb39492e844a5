package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	domainauth "github.com/pollbooth/pollbooth-ui/internal/domain/auth"
	"github.com/pollbooth/pollbooth-ui/internal/domain/poll"
	appErrors "github.com/pollbooth/pollbooth-ui/internal/errors"
	"github.com/pollbooth/pollbooth-ui/internal/ports"
)

// resultFetchConcurrency caps parallel result fetches on the admin dashboard.
const resultFetchConcurrency = 4

// PollServiceOptions holds the dependencies for PollService.
type PollServiceOptions struct {
	API      ports.PollAPI
	Sessions ports.SessionStore
	Logger   *slog.Logger
}

// PollService wraps the poll API with dashboard aggregation, create-form
// validation and vote idempotency.
type PollService struct {
	api      ports.PollAPI
	sessions ports.SessionStore
	logger   *slog.Logger
}

// NewPollService creates a PollService from options.
func NewPollService(opts PollServiceOptions) (*PollService, error) {
	if opts.API == nil {
		return nil, fmt.Errorf("poll service: api client is required")
	}
	if opts.Sessions == nil {
		return nil, fmt.Errorf("poll service: session store is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &PollService{
		api:      opts.API,
		sessions: opts.Sessions,
		logger:   logger,
	}, nil
}

// Dashboard lists all polls with their current counts. Result fetches run
// concurrently; a failed fetch degrades that row to empty counts instead of
// failing the page.
func (s *PollService) Dashboard(ctx context.Context, bearer string) ([]poll.Overview, error) {
	polls, err := s.api.ListPolls(ctx, bearer)
	if err != nil {
		return nil, err
	}

	overviews := make([]poll.Overview, len(polls))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(resultFetchConcurrency)
	for i, p := range polls {
		g.Go(func() error {
			results, err := s.api.Results(gctx, bearer, p.ID)
			if err != nil {
				s.logger.Warn("fetch poll results", "poll_id", p.ID, "error", err)
				results = poll.Results{}
			}
			overviews[i] = poll.Overview{Poll: p, Results: results}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return overviews, nil
}

// Create validates and submits a new poll, returning its id. The title must
// be non-empty and at least two options must survive trimming.
func (s *PollService) Create(ctx context.Context, bearer, title string, options []string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", appErrors.ValidationField("title", "title is required")
	}
	cleaned := make([]string, 0, len(options))
	for _, opt := range options {
		if trimmed := strings.TrimSpace(opt); trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}
	if len(cleaned) < 2 {
		return "", appErrors.ValidationField("options", "at least two options are required")
	}
	return s.api.Create(ctx, bearer, poll.CreateRequest{Title: title, Options: cleaned})
}

// Active returns the poll currently open for voting, or nil when there is none.
func (s *PollService) Active(ctx context.Context, bearer string) (*poll.ActivePoll, error) {
	return s.api.Active(ctx, bearer)
}

// Results returns the tallied counts for a poll.
func (s *PollService) Results(ctx context.Context, bearer, pollID string) (poll.Tally, error) {
	results, err := s.api.Results(ctx, bearer, pollID)
	if err != nil {
		return poll.Tally{}, err
	}
	return results.Tallied(), nil
}

// Vote casts a vote and records the chosen option on the session. When the
// session already holds a vote for the poll the call is a no-op: no request
// reaches the API and the recorded option is returned.
func (s *PollService) Vote(ctx context.Context, sess *domainauth.Session, pollID, optionID string) (string, error) {
	if pollID == "" || optionID == "" {
		return "", appErrors.Validation("poll and option are required")
	}
	if voted := sess.VotedOption(pollID); voted != "" {
		return voted, nil
	}
	if err := s.api.Vote(ctx, sess.Tokens.IDToken, pollID, optionID); err != nil {
		return "", err
	}
	sess.RecordVote(pollID, optionID)
	if err := s.sessions.Save(ctx, sess); err != nil {
		// The vote is already cast; losing the record only risks a duplicate
		// attempt on the next submit.
		s.logger.Warn("persist vote record", "poll_id", pollID, "error", err)
	}
	return optionID, nil
}

// ClosePoll marks a poll closed.
func (s *PollService) ClosePoll(ctx context.Context, bearer, pollID string) error {
	if pollID == "" {
		return appErrors.Validation("poll id is required")
	}
	return s.api.Close(ctx, bearer, pollID)
}
