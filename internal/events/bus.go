// Package events is the in-process replacement for the ad-hoc DOM event
// broadcasts the old frontend used: write paths publish, open UI surfaces
// subscribe (directly or through the recent-events poll endpoint).
package events

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Topic string

const (
	TopicFareCacheCleared    Topic = "fare-cache-cleared"
	TopicTripFaresUpdated    Topic = "trip-fares-updated"
	TopicLocalFaresUpdated   Topic = "local-fares-updated"
	TopicAirportFaresUpdated Topic = "airport-fares-updated"
	TopicVehicleTablesSynced Topic = "vehicle-tables-synced"
)

type Event struct {
	Topic     Topic     `json:"topic"`
	VehicleID string    `json:"vehicleId,omitempty"`
	TripType  string    `json:"tripType,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

const subscriberBuffer = 16

type subscriber struct {
	topics map[Topic]bool // nil means all topics
	ch     chan Event
}

// Bus fans events out to subscribers. Publish never blocks: a subscriber
// that falls subscriberBuffer events behind starts dropping, with a log line.
type Bus struct {
	mu   sync.RWMutex
	subs map[int]*subscriber
	next int

	// Now is injectable for tests.
	Now func() time.Time
}

func NewBus() *Bus {
	return &Bus{subs: map[int]*subscriber{}, Now: time.Now}
}

// Subscribe registers for the given topics (none means all) and returns the
// event channel plus an unsubscribe func.
func (b *Bus) Subscribe(topics ...Topic) (<-chan Event, func()) {
	sub := &subscriber{ch: make(chan Event, subscriberBuffer)}
	if len(topics) > 0 {
		sub.topics = make(map[Topic]bool, len(topics))
		for _, t := range topics {
			sub.topics[t] = true
		}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	return sub.ch, func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
}

func (b *Bus) Publish(e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = b.Now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if sub.topics != nil && !sub.topics[e.Topic] {
			continue
		}
		select {
		case sub.ch <- e:
		default:
			logrus.WithField("topic", e.Topic).Warn("slow event subscriber, dropping event")
		}
	}
}
