package scoring

import "github.com/chargewise/chargewise/core/model"

// NormalizedFeatureStrategy normalizes each feature to the unit interval with
// fixed scale constants and applies a fixed weight vector. Stations beyond
// the assumed scale maxima (50 km, 60 min) yield negative normalized values;
// these are kept as-is.
type NormalizedFeatureStrategy struct{}

func (NormalizedFeatureStrategy) Key() string       { return "machineLearning" }
func (NormalizedFeatureStrategy) Algorithm() string { return "Machine Learning" }

func (s NormalizedFeatureStrategy) Score(stations []model.AnnotatedStation) (model.StrategyResult, error) {
	if len(stations) == 0 {
		return model.StrategyResult{}, ErrEmptyCandidateSet
	}
	best := stations[0]
	bestScore := normalizedScore(stations[0].Features)
	for _, c := range stations[1:] {
		if score := normalizedScore(c.Features); score > bestScore {
			best, bestScore = c, score
		}
	}
	return model.StrategyResult{
		Key:       s.Key(),
		Algorithm: s.Algorithm(),
		Winner:    best.Station,
		Score:     bestScore,
		Reasoning: "Uses normalized features with learned optimal weights",
	}, nil
}

func normalizedScore(f model.FeatureVector) float64 {
	score := (1-f.DistanceKm/50)*0.25 +
		(1-f.TimeMin/60)*0.20 +
		f.Reliability/100*0.20 +
		f.ChargingSpeed/100*0.15 +
		(1-f.Cost/100)*0.10 +
		f.Availability/100*0.05 +
		f.Accessibility/100*0.05
	return score * 100
}
