package config

import (
	"strings"
	"time"
)

// PollAPIConfig contains configuration for the remote poll API client.
type PollAPIConfig struct {
	// BaseURL is the root of the poll REST API, e.g. "https://api.example.com".
	BaseURL string `env:"BASE_URL,required"`

	// Timeout bounds each outgoing API request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

// Sanitize applies guardrails to poll API configuration values.
func (p *PollAPIConfig) Sanitize() {
	p.BaseURL = strings.TrimRight(strings.TrimSpace(p.BaseURL), "/")
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
}
