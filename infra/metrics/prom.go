package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/chargewise/chargewise/core/metrics"
)

// PromSink records scoring events in Prometheus metrics.
type PromSink struct {
	requests  *prometheus.CounterVec
	wins      *prometheus.CounterVec
	duration  prometheus.Histogram
	agreement prometheus.Histogram
}

// NewPromSink registers scoring metrics on the default Prometheus registerer.
// The Prometheus server is started separately on cfg.PrometheusPort.
func NewPromSink(cfg coremetrics.Config) (coremetrics.Sink, error) {
	return NewPromSinkWithRegistry(cfg, prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(_ coremetrics.Config, reg prometheus.Registerer) (coremetrics.Sink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "scoring_requests_total",
		Help: "Total number of scoring requests",
	}, []string{"status"})
	wins := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "strategy_wins_total",
		Help: "Winning picks per strategy",
	}, []string{"strategy"})
	duration := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scoring_duration_seconds",
		Help:    "Wall-clock time of a full scoring request",
		Buckets: prometheus.DefBuckets,
	})
	agreement := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "scoring_agreement",
		Help:    "Number of strategies agreeing with the consensus winner",
		Buckets: []float64{1, 2, 3, 4},
	})

	if err := reg.Register(requests); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			requests = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(wins); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			wins = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(agreement); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			agreement = are.ExistingCollector.(prometheus.Histogram)
		} else {
			return nil, err
		}
	}

	return &PromSink{requests: requests, wins: wins, duration: duration, agreement: agreement}, nil
}

// RecordStrategyOutcomes increments the win counter per strategy.
func (s *PromSink) RecordStrategyOutcomes(outcomes []coremetrics.StrategyOutcome) error {
	for _, o := range outcomes {
		s.wins.WithLabelValues(o.Strategy).Inc()
	}
	return nil
}

// RecordRequest records the request counter, latency and agreement.
func (s *PromSink) RecordRequest(ev coremetrics.RequestOutcome) error {
	s.requests.WithLabelValues(ev.Status).Inc()
	s.duration.Observe(ev.Duration.Seconds())
	if ev.Agreement > 0 {
		s.agreement.Observe(float64(ev.Agreement))
	}
	return nil
}
