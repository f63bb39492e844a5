// Package poll defines the poll domain types served by the remote poll API.
package poll

// Status of a poll as reported by the poll API.
const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// Poll is a summary row from the poll listing.
type Poll struct {
	ID     string `json:"poll_id"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

// Open reports whether the poll still accepts votes.
func (p Poll) Open() bool {
	return p.Status != StatusClosed
}

// ActivePoll is the poll currently offered to voters, with its options.
type ActivePoll struct {
	ID      string
	Title   string
	Options []Option
}

// Option is one selectable answer of a poll.
type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Results holds raw per-option vote counts for a poll.
type Results struct {
	Counts map[string]int `json:"counts"`
}

// CreateRequest is the payload for creating a poll.
type CreateRequest struct {
	Title   string   `json:"title"`
	Options []string `json:"options"`
}

// Overview pairs a poll with its current vote counts for the admin dashboard.
type Overview struct {
	Poll    Poll
	Results Results
}
