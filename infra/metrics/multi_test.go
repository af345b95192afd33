package metrics

import (
	"errors"
	"testing"

	coremetrics "github.com/chargewise/chargewise/core/metrics"
)

type recordingSink struct {
	outcomes int
	requests int
	err      error
}

func (r *recordingSink) RecordStrategyOutcomes(o []coremetrics.StrategyOutcome) error {
	r.outcomes += len(o)
	return r.err
}

func (r *recordingSink) RecordRequest(coremetrics.RequestOutcome) error {
	r.requests++
	return r.err
}

func TestMultiSink_FansOut(t *testing.T) {
	a, b := &recordingSink{}, &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordStrategyOutcomes(make([]coremetrics.StrategyOutcome, 4)); err != nil {
		t.Fatalf("outcomes: %v", err)
	}
	if err := m.RecordRequest(coremetrics.RequestOutcome{}); err != nil {
		t.Fatalf("request: %v", err)
	}
	if a.outcomes != 4 || b.outcomes != 4 || a.requests != 1 || b.requests != 1 {
		t.Fatalf("fan-out incomplete: %+v %+v", a, b)
	}
}

func TestMultiSink_CollectsErrors(t *testing.T) {
	boom := errors.New("boom")
	a, b := &recordingSink{err: boom}, &recordingSink{}
	m := NewMultiSink(a, b)
	if err := m.RecordRequest(coremetrics.RequestOutcome{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if b.requests != 1 {
		t.Fatal("second sink should still record")
	}
}
