package cart

import "github.com/Vinicius-Leon/leons-cupcake/internal/domain"

// Subscribe registers fn to receive the cart sequence after every mutation.
// The current snapshot is delivered synchronously before Subscribe returns,
// so new observers never render a stale cart. The returned function removes
// the subscription; calling it more than once is harmless.
func (m *Manager) Subscribe(fn func(domain.LineItems)) func() {
	id := m.nextID
	m.nextID++
	m.subs[id] = fn

	fn(m.snapshot())

	return func() {
		delete(m.subs, id)
	}
}

// publish delivers the current snapshot to every subscriber. Callbacks run
// synchronously on the mutating goroutine and receive their own copy of the
// sequence.
func (m *Manager) publish() {
	for _, fn := range m.subs {
		fn(m.snapshot())
	}
}
