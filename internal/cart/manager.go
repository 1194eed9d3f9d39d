// Package cart owns the local shopping cart: the canonical line item
// sequence, its derived totals, persistence to durable storage, and a
// subscription feed for UI observers.
//
// A Manager is designed to be driven from a single goroutine (the UI event
// loop); its operations run synchronously to completion and are not safe for
// concurrent use.
package cart

import (
	"encoding/json"
	"log/slog"

	"github.com/Vinicius-Leon/leons-cupcake/internal/domain"
	"github.com/Vinicius-Leon/leons-cupcake/internal/storage"
)

// Manager owns the canonical cart sequence. Consumers get snapshots or a
// subscription feed, never the internal slice.
type Manager struct {
	store  storage.Store
	logger *slog.Logger
	items  domain.LineItems
	subs   map[int]func(domain.LineItems)
	nextID int
}

// NewManager creates a cart manager, loading any previously persisted cart.
// Entries stored by older app versions under the legacy image field are
// normalized at load time; storage itself is only rewritten on the next
// mutation.
func NewManager(store storage.Store, logger *slog.Logger) *Manager {
	m := &Manager{
		store:  store,
		logger: logger,
		subs:   make(map[int]func(domain.LineItems)),
	}
	m.items = m.load()
	return m
}

// Items returns a snapshot of the current sequence.
func (m *Manager) Items() domain.LineItems {
	return m.snapshot()
}

// TotalQuantity returns the sum of quantities across all entries.
func (m *Manager) TotalQuantity() int {
	return m.items.TotalQuantity()
}

// TotalValue returns the sum of price times quantity, recomputed on every
// call.
func (m *Manager) TotalValue() float64 {
	return m.items.TotalValue()
}

// IsEmpty reports whether the cart has no entries.
func (m *Manager) IsEmpty() bool {
	return len(m.items) == 0
}

// AddItem adds quantity units of the product. If the product is already in
// the cart its quantity is incremented; otherwise a new entry is appended.
// Quantity is assumed positive; range and stock checks happen in the caller
// before money changes hands.
func (m *Manager) AddItem(product domain.Product, quantity int) {
	items := m.items
	if i := items.FindIndex(product.ID); i >= 0 {
		items[i].Quantity += quantity
	} else {
		items = append(items, domain.LineItem{
			ProductID:   product.ID,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Quantity:    quantity,
			ImageURL:    product.ImageURL,
		})
	}
	m.update(items)
}

// RemoveItem removes the entry for the given product. Removing an absent
// product is a no-op.
func (m *Manager) RemoveItem(productID int) {
	i := m.items.FindIndex(productID)
	if i < 0 {
		return
	}
	m.update(append(m.items[:i], m.items[i+1:]...))
}

// RemoveItemAt removes the entry at the given position. Out-of-bounds
// indexes are a no-op.
func (m *Manager) RemoveItemAt(index int) {
	if index < 0 || index >= len(m.items) {
		return
	}
	m.update(append(m.items[:index], m.items[index+1:]...))
}

// SetQuantity overwrites the quantity for the given product. A quantity of
// zero or less removes the entry. Absent products are a no-op.
func (m *Manager) SetQuantity(productID, quantity int) {
	i := m.items.FindIndex(productID)
	if i < 0 {
		return
	}

	if quantity <= 0 {
		m.update(append(m.items[:i], m.items[i+1:]...))
		return
	}

	items := m.items
	items[i].Quantity = quantity
	m.update(items)
}

// Increment raises the product's quantity by one. Absent products are a
// no-op.
func (m *Manager) Increment(productID int) {
	i := m.items.FindIndex(productID)
	if i < 0 {
		return
	}
	items := m.items
	items[i].Quantity++
	m.update(items)
}

// Decrement lowers the product's quantity by one; at quantity 1 the entry is
// removed instead of going to zero. Absent products are a no-op.
func (m *Manager) Decrement(productID int) {
	i := m.items.FindIndex(productID)
	if i < 0 {
		return
	}

	if m.items[i].Quantity > 1 {
		items := m.items
		items[i].Quantity--
		m.update(items)
		return
	}
	m.update(append(m.items[:i], m.items[i+1:]...))
}

// Clear empties the cart.
func (m *Manager) Clear() {
	m.update(domain.LineItems{})
}

// OrderPayload projects the current sequence into the shape the order
// endpoint expects. The total is re-derived at call time, never read from a
// cache.
func (m *Manager) OrderPayload() domain.OrderPayload {
	items := make([]domain.OrderItem, 0, len(m.items))
	for _, item := range m.items {
		items = append(items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}
	return domain.OrderPayload{
		Items:      items,
		TotalValue: m.items.TotalValue(),
	}
}

// update installs the new sequence, persists it, and notifies subscribers.
// Persistence failures are logged; the in-memory sequence stays authoritative
// for the rest of the process.
func (m *Manager) update(items domain.LineItems) {
	m.items = items
	m.persist()
	m.publish()
}

func (m *Manager) persist() {
	raw, err := json.Marshal(m.items)
	if err != nil {
		m.logger.Error("failed to serialize cart", slog.String("error", err.Error()))
		return
	}
	if err := m.store.Set(storage.KeyCart, raw); err != nil {
		m.logger.Error("failed to persist cart", slog.String("error", err.Error()))
	}
}

// load reads the persisted sequence, folding the legacy image field into the
// current one. Missing or corrupted storage yields an empty cart.
func (m *Manager) load() domain.LineItems {
	raw, err := m.store.Get(storage.KeyCart)
	if err != nil {
		return domain.LineItems{}
	}

	var items domain.LineItems
	if err := json.Unmarshal(raw, &items); err != nil {
		m.logger.Error("failed to parse stored cart", slog.String("error", err.Error()))
		return domain.LineItems{}
	}

	for i := range items {
		if items[i].ImageURL == "" && items[i].LegacyImageURL != "" {
			items[i].ImageURL = items[i].LegacyImageURL
		}
		items[i].LegacyImageURL = ""
	}
	return items
}

func (m *Manager) snapshot() domain.LineItems {
	out := make(domain.LineItems, len(m.items))
	copy(out, m.items)
	return out
}
