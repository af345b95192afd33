package config

import "github.com/chargewise/chargewise/core/scoring"

// ServerConfig defines the API server settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SetDefaults applies sane defaults.
func (c *ServerConfig) SetDefaults() {
	if c.Addr == "" {
		c.Addr = ":8080"
	}
}

// ScoringConfig tunes the recommendation engine.
type ScoringConfig struct {
	// CandidateCap bounds the number of stations scored per request.
	CandidateCap int `json:"candidate_cap"`
	// Seed fixes the evolving-weight strategy's random stream. Zero keeps
	// the stochastic behaviour.
	Seed int64 `json:"seed"`
}

// SetDefaults applies sane defaults.
func (c *ScoringConfig) SetDefaults() {
	if c.CandidateCap <= 0 {
		c.CandidateCap = scoring.DefaultCandidateCap
	}
}
