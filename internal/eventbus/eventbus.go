package eventbus

import (
	"sync"
	"time"

	"github.com/chargewise/chargewise/core/model"
)

// ResultEvent is published once per completed scoring request. History
// writers and external publishers subscribe to it.
type ResultEvent struct {
	RequestID    string                 `json:"request_id"`
	UserLocation model.Coordinate       `json:"user_location"`
	Stations     int                    `json:"stations"`
	BestStation  model.Station          `json:"best_station"`
	Results      []model.StrategyResult `json:"results"`
	Consensus    model.ConsensusReport  `json:"consensus"`
	Elapsed      time.Duration          `json:"elapsed"`
	Time         time.Time              `json:"time"`
}

// Bus is a publish/subscribe bus for scoring result events.
type Bus struct {
	mu     sync.RWMutex
	subs   []chan ResultEvent
	closed bool
}

// New creates a new Bus.
func New() *Bus { return &Bus{} }

// Publish sends the event to all subscribers. Delivery is non-blocking; slow
// subscribers miss events instead of stalling the request path.
func (b *Bus) Publish(e ResultEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for _, ch := range b.subs {
		select {
		case ch <- e:
		default:
		}
	}
}

// Subscribe registers a subscriber and returns its channel.
func (b *Bus) Subscribe() <-chan ResultEvent {
	ch := make(chan ResultEvent, 8)
	b.mu.Lock()
	if b.closed {
		close(ch)
	} else {
		b.subs = append(b.subs, ch)
	}
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes the subscriber and closes its channel.
func (b *Bus) Unsubscribe(sub <-chan ResultEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, ch := range b.subs {
		if ch == sub {
			b.subs = append(b.subs[:i], b.subs[i+1:]...)
			if !b.closed {
				close(ch)
			}
			return
		}
	}
}

// Close closes the bus and all subscriber channels.
func (b *Bus) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	for _, ch := range b.subs {
		close(ch)
	}
	b.subs = nil
	b.mu.Unlock()
}
