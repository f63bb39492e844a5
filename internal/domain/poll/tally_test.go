package poll

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResults_Tallied(t *testing.T) {
	tests := []struct {
		name      string
		counts    map[string]int
		wantTotal int
		wantRows  []OptionCount
	}{
		{
			name:      "three to one split",
			counts:    map[string]int{"A": 3, "B": 1},
			wantTotal: 4,
			wantRows: []OptionCount{
				{Option: "A", Count: 3, Percent: 75},
				{Option: "B", Count: 1, Percent: 25},
			},
		},
		{
			name:      "zero total yields zero percent",
			counts:    map[string]int{"A": 0, "B": 0},
			wantTotal: 0,
			wantRows: []OptionCount{
				{Option: "A", Count: 0, Percent: 0},
				{Option: "B", Count: 0, Percent: 0},
			},
		},
		{
			name:      "thirds round to nearest",
			counts:    map[string]int{"A": 1, "B": 1, "C": 1},
			wantTotal: 3,
			wantRows: []OptionCount{
				{Option: "A", Count: 1, Percent: 33},
				{Option: "B", Count: 1, Percent: 33},
				{Option: "C", Count: 1, Percent: 33},
			},
		},
		{
			name:      "empty counts",
			counts:    nil,
			wantTotal: 0,
			wantRows:  []OptionCount{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tally := Results{Counts: tt.counts}.Tallied()
			assert.Equal(t, tt.wantTotal, tally.Total)
			assert.Equal(t, tt.wantRows, tally.Rows)
		})
	}
}

func TestPoll_Open(t *testing.T) {
	assert.True(t, Poll{Status: StatusOpen}.Open())
	assert.False(t, Poll{Status: StatusClosed}.Open())
	assert.True(t, Poll{Status: "anything-else"}.Open())
}
