package scoring

import "github.com/chargewise/chargewise/core/model"

// WeightedDistanceStrategy ranks stations by a fixed linear combination of
// distance, travel time and inverted reliability and charging speed. The
// smallest weighted distance wins; the reported score is 100 minus that
// value and may be negative for far-away stations.
type WeightedDistanceStrategy struct{}

func (WeightedDistanceStrategy) Key() string       { return "dijkstra" }
func (WeightedDistanceStrategy) Algorithm() string { return "Dijkstra's Shortest Path" }

func (s WeightedDistanceStrategy) Score(stations []model.AnnotatedStation) (model.StrategyResult, error) {
	if len(stations) == 0 {
		return model.StrategyResult{}, ErrEmptyCandidateSet
	}
	best := stations[0]
	bestCost := weightedDistance(stations[0].Features)
	for _, c := range stations[1:] {
		if cost := weightedDistance(c.Features); cost < bestCost {
			best, bestCost = c, cost
		}
	}
	return model.StrategyResult{
		Key:       s.Key(),
		Algorithm: s.Algorithm(),
		Winner:    best.Station,
		Score:     100 - bestCost,
		Reasoning: "Minimizes weighted distance considering multiple factors",
	}, nil
}

func weightedDistance(f model.FeatureVector) float64 {
	return f.DistanceKm*0.4 +
		f.TimeMin*0.3 +
		(100-f.Reliability)*0.2 +
		(100-f.ChargingSpeed)*0.1
}
