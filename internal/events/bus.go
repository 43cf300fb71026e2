package events

import "sync"

// Bus is the cross-surface notification channel: a single "cart changed"
// topic with synchronous fan-out to whoever is subscribed at publish time.
// Nothing is buffered or replayed; a listener that subscribes after a
// publish has to fetch proactively on its own activation.
type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]func()
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]func())}
}

// SubscribeCartChanged registers fn and returns the unsubscribe func. The
// callback runs on the publisher's goroutine.
func (b *Bus) SubscribeCartChanged(fn func()) func() {
	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = fn
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// PublishCartChanged invokes every currently-subscribed listener. The
// subscriber set is snapshotted first so a listener may subscribe,
// unsubscribe or publish again without deadlocking.
func (b *Bus) PublishCartChanged() {
	b.mu.Lock()
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
