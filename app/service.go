package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chargewise/chargewise/api/stations"
	"github.com/chargewise/chargewise/config"
	"github.com/chargewise/chargewise/connectors/tomtom"
	"github.com/chargewise/chargewise/core/history"
	coremetrics "github.com/chargewise/chargewise/core/metrics"
	"github.com/chargewise/chargewise/core/scoring"
	"github.com/chargewise/chargewise/infra/logger"
	"github.com/chargewise/chargewise/infra/metrics"
	"github.com/chargewise/chargewise/infra/mqtt"
	"github.com/chargewise/chargewise/internal/eventbus"
)

// Service wires the scoring engine to its HTTP surface and side channels.
type Service struct {
	Engine *scoring.Engine

	cfg       *config.Config
	log       logger.Logger
	bus       *eventbus.Bus
	store     history.Store
	publisher *mqtt.ResultPublisher
	srv       *http.Server
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	log := logger.New("service")

	engine := scoring.NewEngine(log)
	engine.CandidateCap = cfg.Scoring.CandidateCap
	engine.Seed = cfg.Scoring.Seed

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	bus := eventbus.New()
	svc := &Service{Engine: engine, cfg: cfg, log: log, bus: bus}

	if cfg.History.Enabled {
		store, err := newHistoryStore(cfg.History)
		if err != nil {
			return nil, fmt.Errorf("history store: %w", err)
		}
		svc.store = store
	}
	if cfg.MQTT.Enabled {
		pub, err := mqtt.NewResultPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}

	mux := http.NewServeMux()
	mux.Handle("/api/find-best-station", stations.NewFinderHandler(engine, sink, bus, log))
	if cfg.TomTom.APIKey != "" {
		source := tomtom.NewClient(cfg.TomTom)
		mux.Handle("/api/stations", stations.NewSearchHandler(source, log))
		mux.Handle("/api/geocode", stations.NewGeocodeHandler(source, log))
	}
	svc.srv = &http.Server{Addr: cfg.Server.Addr, Handler: mux}

	return svc, nil
}

func newHistoryStore(cfg config.HistoryConfig) (history.Store, error) {
	switch cfg.Backend {
	case "sqlite":
		return history.NewSQLiteStore(cfg.Path)
	default:
		return history.NewJSONLStore(cfg.Path)
	}
}

// Run starts the service and blocks until the context is cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.store != nil {
		sub := s.bus.Subscribe()
		go s.consumeHistory(ctx, sub)
	}
	if s.publisher != nil {
		go s.publisher.Run(s.bus.Subscribe())
	}
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("server shutdown: %v", err)
		}
	}()

	s.log.Infof("listening on %s", s.cfg.Server.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// consumeHistory appends every result event to the history store.
func (s *Service) consumeHistory(ctx context.Context, sub <-chan eventbus.ResultEvent) {
	for ev := range sub {
		rec := history.Record{
			Timestamp:    ev.Time,
			RequestID:    ev.RequestID,
			UserLocation: ev.UserLocation,
			Stations:     ev.Stations,
			BestStation:  ev.BestStation,
			Agreement:    ev.Consensus.Agreement,
			Results:      ev.Results,
		}
		if err := s.store.Append(ctx, rec); err != nil {
			s.log.Errorf("history append %s: %v", ev.RequestID, err)
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	if s.publisher != nil {
		s.publisher.Close()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}
