package scoring

import (
	"context"
	"math/rand"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chargewise/chargewise/core/logger"
	"github.com/chargewise/chargewise/core/model"
)

// Report is the full outcome of one scoring request.
type Report struct {
	BestStation model.Station          `json:"bestStation"`
	Results     []model.StrategyResult `json:"results"`
	Consensus   model.ConsensusReport  `json:"explanation"`
	Candidates  int                    `json:"candidates"`
	Elapsed     time.Duration          `json:"-"`
}

// Engine runs feature extraction, every strategy and the consensus reduction
// for a single request. Engines are safe for concurrent use as long as the
// configured strategies are; NewEngine builds a fresh evolving-weight
// strategy per call to Evaluate so the default set is.
type Engine struct {
	CandidateCap int
	// Seed fixes the evolving-weight strategy's random stream. Zero means
	// a time-based seed per request.
	Seed int64
	log  logger.Logger
}

// NewEngine returns an engine with the default candidate cap.
func NewEngine(log logger.Logger) *Engine {
	return &Engine{CandidateCap: DefaultCandidateCap, log: log}
}

// strategies returns the strategy set in canonical evaluation order:
// weighted-distance, heuristic-search, evolving-weight, normalized-feature.
// The order decides consensus tie-breaks and must not change.
func (e *Engine) strategies() []Strategy {
	var rng *rand.Rand
	if e.Seed != 0 {
		rng = rand.New(rand.NewSource(e.Seed))
	}
	return []Strategy{
		WeightedDistanceStrategy{},
		HeuristicSearchStrategy{},
		NewEvolvingWeightStrategy(rng),
		NormalizedFeatureStrategy{},
	}
}

// Evaluate scores the stations for the given user location and reduces the
// per-strategy winners to a single recommendation.
func (e *Engine) Evaluate(ctx context.Context, user model.Coordinate, stations []model.Station) (*Report, error) {
	if len(stations) == 0 {
		return nil, ErrInvalidInput
	}
	start := time.Now()

	annotated := ExtractFeatures(user, stations, e.CandidateCap)
	if len(annotated) == 0 {
		return nil, ErrEmptyCandidateSet
	}

	set := e.strategies()
	results := make([]model.StrategyResult, len(set))
	g, _ := errgroup.WithContext(ctx)
	for i, s := range set {
		g.Go(func() error {
			res, err := s.Score(annotated)
			if err != nil {
				return &StrategyError{Strategy: s.Key(), Err: err}
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best, report := Reduce(results, annotated)
	elapsed := time.Since(start)
	if e.log != nil {
		e.log.Debugw("scoring complete", map[string]any{
			"stations":  len(annotated),
			"winner":    best.Name,
			"agreement": report.Agreement,
			"elapsed":   elapsed.String(),
		})
	}

	return &Report{
		BestStation: best,
		Results:     results,
		Consensus:   report,
		Candidates:  len(annotated),
		Elapsed:     elapsed,
	}, nil
}
