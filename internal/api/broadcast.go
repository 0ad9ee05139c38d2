package api

import "sync"

// ExpiryBroadcaster fans a session-expiry signal out to any number of
// subscribers. Emission is synchronous: every subscriber registered at the
// time of the call is notified exactly once, in no particular order. A
// subscriber that is not draining its channel still gets the signal later;
// each subscription channel is buffered by one so Emit never blocks on a
// slow reader.
type ExpiryBroadcaster struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func NewExpiryBroadcaster() *ExpiryBroadcaster {
	return &ExpiryBroadcaster{subs: make(map[int]chan struct{})}
}

// Subscribe registers a listener. The returned cancel func removes the
// subscription and is safe to call more than once.
func (b *ExpiryBroadcaster) Subscribe() (<-chan struct{}, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.next
	b.next++
	ch := make(chan struct{}, 1)
	b.subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
	return ch, cancel
}

// Emit notifies all current subscribers. A subscriber whose buffered slot is
// already full has a signal pending and needs no second one.
func (b *ExpiryBroadcaster) Emit() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
