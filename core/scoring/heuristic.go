package scoring

import "github.com/chargewise/chargewise/core/model"

// HeuristicSearchStrategy combines an actual cost g (distance plus weighted
// travel time) with a heuristic h built from inverted quality factors and
// selects the station with the lowest f = g + h.
type HeuristicSearchStrategy struct{}

func (HeuristicSearchStrategy) Key() string       { return "aStar" }
func (HeuristicSearchStrategy) Algorithm() string { return "A* Heuristic Search" }

func (s HeuristicSearchStrategy) Score(stations []model.AnnotatedStation) (model.StrategyResult, error) {
	if len(stations) == 0 {
		return model.StrategyResult{}, ErrEmptyCandidateSet
	}
	best := stations[0]
	bestF := fScore(stations[0].Features)
	for _, c := range stations[1:] {
		if f := fScore(c.Features); f < bestF {
			best, bestF = c, f
		}
	}
	return model.StrategyResult{
		Key:       s.Key(),
		Algorithm: s.Algorithm(),
		Winner:    best.Station,
		Score:     100 - bestF,
		Reasoning: "Uses heuristic to predict best path considering future costs",
	}, nil
}

func fScore(f model.FeatureVector) float64 {
	g := f.DistanceKm + f.TimeMin*0.5
	h := (100-f.Reliability)*0.3 +
		(100-f.ChargingSpeed)*0.2 +
		(100-f.Availability)*0.1
	return g + h
}
