package session

import (
	"sync"
	"time"
)

const (
	EventSignedIn       = "signed_in"
	EventSignedOut      = "signed_out"
	EventProfileUpdated = "profile_updated"
)

type Event struct {
	Type   string    `json:"type"`
	UserID string    `json:"user_id"`
	At     time.Time `json:"at"`
}

// Broker fans session events out to the subscribers of each user.
// A subscriber that is not keeping up misses events; Publish never blocks.
type Broker struct {
	mu     sync.RWMutex
	subs   map[string]map[*subscriber]struct{}
	buffer int
}

type subscriber struct {
	ch   chan Event
	once sync.Once
}

func (s *subscriber) close() {
	s.once.Do(func() { close(s.ch) })
}

func NewBroker(buffer int) *Broker {
	if buffer <= 0 {
		buffer = 8
	}
	return &Broker{
		subs:   make(map[string]map[*subscriber]struct{}),
		buffer: buffer,
	}
}

// Subscribe returns the event channel for userID and a cancel func that
// unsubscribes and closes the channel.
func (b *Broker) Subscribe(userID string) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, b.buffer)}

	b.mu.Lock()
	if b.subs[userID] == nil {
		b.subs[userID] = make(map[*subscriber]struct{})
	}
	b.subs[userID][sub] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if set, ok := b.subs[userID]; ok {
			delete(set, sub)
			if len(set) == 0 {
				delete(b.subs, userID)
			}
		}
		b.mu.Unlock()
		sub.close()
	}
	return sub.ch, cancel
}

func (b *Broker) Publish(event Event) {
	if event.At.IsZero() {
		event.At = time.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for sub := range b.subs[event.UserID] {
		select {
		case sub.ch <- event:
		default:
		}
	}
}

func (b *Broker) Subscribers(userID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[userID])
}
