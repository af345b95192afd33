package metrics

import "time"

// StrategyOutcome is one strategy's pick for one scoring request.
type StrategyOutcome struct {
	RequestID string
	Strategy  string
	Winner    string
	Score     float64
	Time      time.Time
}

// RequestOutcome summarises a full scoring request.
type RequestOutcome struct {
	RequestID string
	Stations  int
	Winner    string
	Agreement int
	Duration  time.Duration
	Status    string
	Time      time.Time
}

// Sink records scoring outcomes for observability purposes.
type Sink interface {
	RecordStrategyOutcomes(outcomes []StrategyOutcome) error
	RecordRequest(ev RequestOutcome) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordStrategyOutcomes([]StrategyOutcome) error { return nil }
func (NopSink) RecordRequest(RequestOutcome) error             { return nil }
