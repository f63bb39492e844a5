// Package mocks provides generated mock implementations for testing.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for
// the poll API port. The mocks are generated using go:generate directives and
// provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	mockAPI := mocks.NewMockPollAPI(ctrl)
//	mockAPI.EXPECT().ListPolls(gomock.Any(), "bearer").Return(polls, nil)
package mocks

// Generate mock for the PollAPI interface from internal/ports.
// This creates MockPollAPI with methods for all PollAPI interface methods:
// ListPolls, Results, Create, Active, Vote, Close
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=poll_api_mock.go github.com/pollbooth/pollbooth-ui/internal/ports PollAPI
