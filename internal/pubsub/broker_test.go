package pubsub

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBroker_DeliversToSubscriber(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	b.PublishSolve(SolveEvent{Username: "alice", ChallengeName: "web-one", Score: 100})

	select {
	case msg := <-ch:
		var event SolveEvent
		if err := json.Unmarshal(msg, &event); err != nil {
			t.Fatalf("failed to unmarshal event: %v", err)
		}
		if event.Username != "alice" || event.ChallengeName != "web-one" {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("timed out waiting for event")
	}
}

func TestBroker_ReplaysRecentToNewSubscriber(t *testing.T) {
	b := NewBroker()
	b.PublishSolve(SolveEvent{Username: "alice", ChallengeName: "web-one"})
	b.PublishSolve(SolveEvent{Username: "bob", ChallengeName: "pwn-two"})

	ch, unsubscribe := b.Subscribe()
	defer unsubscribe()

	var got []string
	for i := 0; i < 2; i++ {
		select {
		case msg := <-ch:
			var event SolveEvent
			if err := json.Unmarshal(msg, &event); err != nil {
				t.Fatalf("failed to unmarshal event: %v", err)
			}
			got = append(got, event.Username)
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for replayed events")
		}
	}
	if got[0] != "alice" || got[1] != "bob" {
		t.Fatalf("expected replay in publish order, got %v", got)
	}
}

func TestBroker_UnsubscribeClosesChannel(t *testing.T) {
	b := NewBroker()
	ch, unsubscribe := b.Subscribe()
	unsubscribe()

	if _, ok := <-ch; ok {
		t.Fatalf("expected channel to be closed after unsubscribe")
	}

	// Publishing after unsubscribe must not panic on the closed channel.
	b.PublishSolve(SolveEvent{Username: "alice"})
}
