// Package connectivity holds the last-known reachability of the records API.
package connectivity

import (
	"sync"
	"time"
)

// Status is a snapshot of the tracker.
type Status struct {
	Online    bool      `json:"online"`
	CheckedAt time.Time `json:"checked_at"`
}

// Tracker is the single state cell shared by the remote client (the only
// writer) and anything displaying online/offline. It starts offline until the
// first call completes. Updates are last-writer-wins.
type Tracker struct {
	mu        sync.RWMutex
	online    bool
	checkedAt time.Time
	subs      map[int]chan bool
	nextSub   int
	now       func() time.Time
}

// NewTracker creates an offline tracker.
func NewTracker() *Tracker {
	return &Tracker{
		subs: make(map[int]chan bool),
		now:  time.Now,
	}
}

// Online reports the last-known reachability.
func (t *Tracker) Online() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.online
}

// Status returns the current value and when it was last written.
func (t *Tracker) Status() Status {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Status{Online: t.online, CheckedAt: t.checkedAt}
}

// Set records the outcome of a call attempt. Subscribers are notified only
// when the value changes.
func (t *Tracker) Set(online bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	changed := t.online != online || t.checkedAt.IsZero()
	t.online = online
	t.checkedAt = t.now()
	if !changed {
		return
	}
	for _, ch := range t.subs {
		// Keep only the latest value for slow subscribers.
		select {
		case <-ch:
		default:
		}
		ch <- online
	}
}

// Subscribe returns a channel receiving every change of the value and a
// function that ends the subscription and closes the channel.
func (t *Tracker) Subscribe() (<-chan bool, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSub
	t.nextSub++
	ch := make(chan bool, 1)
	t.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			delete(t.subs, id)
			close(ch)
		})
	}
	return ch, cancel
}
