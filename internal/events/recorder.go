package events

import (
	"sync"
)

// Recorder keeps a bounded ring of recent events so browser UIs can poll for
// changes made from other open views.
type Recorder struct {
	mu     sync.RWMutex
	ring   []Event
	limit  int
	cancel func()
}

// NewRecorder subscribes to all topics and retains the last limit events.
func NewRecorder(bus *Bus, limit int) *Recorder {
	if limit <= 0 {
		limit = 50
	}
	r := &Recorder{limit: limit}
	ch, cancel := bus.Subscribe()
	r.cancel = cancel
	go func() {
		for e := range ch {
			r.append(e)
		}
	}()
	return r
}

func (r *Recorder) append(e Event) {
	r.mu.Lock()
	r.ring = append(r.ring, e)
	if len(r.ring) > r.limit {
		r.ring = r.ring[len(r.ring)-r.limit:]
	}
	r.mu.Unlock()
}

// Recent returns the retained events, newest last.
func (r *Recorder) Recent() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.ring))
	copy(out, r.ring)
	return out
}

// Close detaches the recorder from the bus.
func (r *Recorder) Close() {
	if r.cancel != nil {
		r.cancel()
	}
}
