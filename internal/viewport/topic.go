package viewport

// Change carries the previous and current value of a property.
// HasOld is false on the first change a topic ever publishes.
type Change[T any] struct {
	Old    T
	New    T
	HasOld bool
}

// Topic is a synchronous publish/subscribe point for one kind of event.
// Subscribers are called in registration order on the publisher's goroutine.
// Nothing is deduplicated: publishing the same value twice notifies twice.
type Topic[T any] struct {
	subs []*subscriber[T]
}

type subscriber[T any] struct {
	fn        func(T)
	cancelled bool
}

// Subscribe registers fn and returns a function that removes it.
func (t *Topic[T]) Subscribe(fn func(T)) (cancel func()) {
	s := &subscriber[T]{fn: fn}
	t.subs = append(t.subs, s)
	return func() {
		if s.cancelled {
			return
		}
		s.cancelled = true
		for i, other := range t.subs {
			if other == s {
				t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
				break
			}
		}
	}
}

// Publish delivers v to every current subscriber. Subscribers added during
// delivery see the next event, not this one; cancelled ones are skipped.
func (t *Topic[T]) Publish(v T) {
	subs := t.subs
	for _, s := range subs {
		if s.cancelled {
			continue
		}
		s.fn(v)
	}
}

// Len returns the number of subscribers.
func (t *Topic[T]) Len() int {
	return len(t.subs)
}
