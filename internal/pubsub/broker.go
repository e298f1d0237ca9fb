package pubsub

import (
	"encoding/json"
	"sync"
	"time"

	"go.uber.org/zap"
)

const maxRecent = 32

// Broker fans accepted-solve events out to scoreboard watchers over an
// in-memory channel per subscriber.
type Broker struct {
	mu          sync.Mutex
	subscribers []chan []byte
	recent      [][]byte // last maxRecent events, replayed to new subscribers
}

// SolveEvent is the wire format of one accepted flag on the live feed.
type SolveEvent struct {
	Username      string    `json:"username"`
	ChallengeName string    `json:"challenge_name"`
	Category      string    `json:"category"`
	Score         int       `json:"score"`
	SolvedAt      time.Time `json:"solved_at"`
}

func NewBroker() *Broker {
	return &Broker{}
}

// Subscribe registers a new watcher. Recent events are queued onto the
// returned channel first so a fresh client sees some history. The returned
// function unsubscribes and closes the channel.
func (b *Broker) Subscribe() (<-chan []byte, func()) {
	b.mu.Lock()

	ch := make(chan []byte, 128)
	for _, msg := range b.recent {
		ch <- msg
	}
	b.subscribers = append(b.subscribers, ch)
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, sub := range b.subscribers {
			if sub == ch {
				b.subscribers = append(b.subscribers[:i], b.subscribers[i+1:]...)
				close(ch)
				break
			}
		}
		zap.S().Debug("solve feed subscriber left")
	}

	zap.S().Debugf("new solve feed subscriber, replayed %d events", len(b.recent))
	return ch, unsubscribe
}

// PublishSolve broadcasts an accepted solve to all subscribers. A slow
// subscriber with a full channel has the event dropped rather than blocking
// the submission path.
func (b *Broker) PublishSolve(event SolveEvent) {
	msg, err := json.Marshal(event)
	if err != nil {
		zap.S().Errorf("failed to marshal solve event: %v", err)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.recent = append(b.recent, msg)
	if len(b.recent) > maxRecent {
		b.recent = b.recent[len(b.recent)-maxRecent:]
	}

	for _, ch := range b.subscribers {
		select {
		case ch <- msg:
		default:
		}
	}
}
