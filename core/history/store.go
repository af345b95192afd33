package history

import (
	"context"
	"time"

	"github.com/chargewise/chargewise/core/model"
)

// Record captures one scoring request and its consensus outcome.
type Record struct {
	Timestamp    time.Time              `json:"timestamp"`
	RequestID    string                 `json:"request_id"`
	UserLocation model.Coordinate       `json:"user_location"`
	Stations     int                    `json:"stations"`
	BestStation  model.Station          `json:"best_station"`
	Agreement    int                    `json:"agreement"`
	Results      []model.StrategyResult `json:"results"`
}

// Query defines filters for retrieving records. Zero times disable the
// corresponding bound.
type Query struct {
	Start  time.Time
	End    time.Time
	Winner string
}

// Store persists records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

func (q Query) matches(rec Record) bool {
	if !q.Start.IsZero() && rec.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && rec.Timestamp.After(q.End) {
		return false
	}
	if q.Winner != "" && rec.BestStation.Name != q.Winner {
		return false
	}
	return true
}
