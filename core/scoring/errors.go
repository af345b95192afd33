package scoring

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned when the user location or station list is
// missing or empty. Callers translate it to a 400 response.
var ErrInvalidInput = errors.New("invalid input data")

// ErrEmptyCandidateSet is returned when feature extraction yields no usable
// stations. Distinct from ErrInvalidInput so callers can tell bad input from
// an empty extraction result.
var ErrEmptyCandidateSet = errors.New("no valid station data")

// StrategyError wraps an unexpected failure inside a single strategy.
type StrategyError struct {
	Strategy string
	Err      error
}

func (e *StrategyError) Error() string {
	return fmt.Sprintf("strategy %s: %v", e.Strategy, e.Err)
}

func (e *StrategyError) Unwrap() error { return e.Err }
