package metrics

import (
	"errors"

	coremetrics "github.com/chargewise/chargewise/core/metrics"
)

// MultiSink fans events out to several sinks. Errors are collected so one
// failing sink does not stop the others.
type MultiSink struct {
	sinks []coremetrics.Sink
}

// NewMultiSink returns a sink writing to all given sinks.
func NewMultiSink(sinks ...coremetrics.Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordStrategyOutcomes(outcomes []coremetrics.StrategyOutcome) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordStrategyOutcomes(outcomes); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordRequest(ev coremetrics.RequestOutcome) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordRequest(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
