package client

import "sync"

// EnrollmentUpdated tells sibling views that an enrollment's progress or
// status changed and they should re-fetch.
type EnrollmentUpdated struct {
	EnrollmentID string
}

// Bus is a process-local publish/subscribe channel with typed payloads.
// Handlers run synchronously on the publishing goroutine.
type Bus struct {
	mu   sync.Mutex
	subs map[int]func(EnrollmentUpdated)
	next int
}

func NewBus() *Bus {
	return &Bus{
		subs: make(map[int]func(EnrollmentUpdated)),
	}
}

// Subscribe registers a handler and returns its cancel function. Cancelling
// twice is safe.
func (b *Bus) Subscribe(fn func(EnrollmentUpdated)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.next
	b.next++
	b.subs[id] = fn

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
	}
}

func (b *Bus) Publish(event EnrollmentUpdated) {
	b.mu.Lock()
	handlers := make([]func(EnrollmentUpdated), 0, len(b.subs))
	for _, fn := range b.subs {
		handlers = append(handlers, fn)
	}
	b.mu.Unlock()

	for _, fn := range handlers {
		fn(event)
	}
}
