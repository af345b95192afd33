package scoring

import "github.com/chargewise/chargewise/core/model"

// Strategy scores an annotated candidate set and elects a winner. A strategy
// must pick its winner from the given set and fail with ErrEmptyCandidateSet
// when the set is empty.
type Strategy interface {
	// Key identifies the strategy in API responses, e.g. "dijkstra".
	Key() string
	// Algorithm is the human readable strategy name.
	Algorithm() string
	Score(stations []model.AnnotatedStation) (model.StrategyResult, error)
}
