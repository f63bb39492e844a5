// Package auth defines the core authentication domain types.
package auth

import "time"

// Role represents the access tier derived from the identity token's groups.
// It is never persisted: every request re-derives it from the token so a
// group change at the provider takes effect on the next login.
type Role string

const (
	// RoleAdmin can manage polls and watch live results.
	RoleAdmin Role = "admin"
	// RoleVoter can view the active poll and cast a vote.
	RoleVoter Role = "voter"
)

// LandingPath returns the dashboard route a role is sent to after login and
// whenever it requests a route outside its tier.
func (r Role) LandingPath() string {
	if r == RoleAdmin {
		return "/admin"
	}
	return "/user"
}

// TokenBundle is the credential set returned by the provider's token endpoint.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	// ExpiresIn is the provider-reported lifetime in seconds.
	ExpiresIn int64 `json:"expires_in,omitempty"`
}

// Session represents an authenticated browser session backed by the store.
type Session struct {
	// ID is the opaque session identifier carried by the cookie
	ID string `json:"id"`
	// Tokens is the credential bundle from the code exchange
	Tokens TokenBundle `json:"tokens"`
	// Status is a short human-readable login status line
	Status string `json:"status,omitempty"`
	// VotedOptions maps poll id to the option this session voted for
	VotedOptions map[string]string `json:"voted_options,omitempty"`
	// CreatedAt is when the session was established
	CreatedAt time.Time `json:"created_at"`
	// ExpiresAt is when the session (and its tokens) expire
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired() bool {
	return !s.ExpiresAt.IsZero() && time.Now().After(s.ExpiresAt)
}

// VotedOption returns the option this session already voted for in the given
// poll, or "" when it has not voted.
func (s *Session) VotedOption(pollID string) string {
	if s.VotedOptions == nil {
		return ""
	}
	return s.VotedOptions[pollID]
}

// RecordVote remembers the option voted for in the given poll.
func (s *Session) RecordVote(pollID, optionID string) {
	if s.VotedOptions == nil {
		s.VotedOptions = make(map[string]string, 1)
	}
	s.VotedOptions[pollID] = optionID
}
