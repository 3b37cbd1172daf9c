// Package cart holds the client's shopping cart: an ordered collection of
// line items keyed by product id, persisted after every mutation. The cart
// is independent of the session and is only ever cleared by explicit user
// action, never by login or logout.
package cart

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/erosmarket/storefront/internal/client/storage"
	"github.com/erosmarket/storefront/internal/core/domain"
)

// storageKey is the fixed namespace the serialized cart lives under.
const storageKey = "storefront_cart"

// Line is a cart line item. Product is a snapshot taken when the line was
// added; it is never re-validated against live stock.
type Line struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Total is the line subtotal.
func (l Line) Total() float64 {
	return l.Product.Price * float64(l.Quantity)
}

type subscriber struct {
	id int
	fn func()
}

// Store is the client-side cart state container. At most one line exists
// per product id and quantities never drop below 1. Mutations persist
// before notifying; persistence failures are non-fatal.
type Store struct {
	storage storage.Store
	logger  zerolog.Logger

	mu      sync.Mutex
	lines   []Line
	subs    []subscriber
	nextSub int
}

func NewStore(st storage.Store, logger zerolog.Logger) *Store {
	return &Store{storage: st, logger: logger}
}

// Initialize restores persisted line items. Corrupt or absent data resets
// to an empty cart without error; a non-empty restore notifies subscribers.
func (s *Store) Initialize() {
	data, err := s.storage.Get(storageKey)
	if err != nil {
		return
	}

	var restored []Line
	if err := json.Unmarshal(data, &restored); err != nil {
		s.logger.Warn().Msg("discarding corrupt cart record")
		return
	}
	if len(restored) == 0 {
		return
	}

	s.mu.Lock()
	s.lines = restored
	s.mu.Unlock()
	s.notify()
}

// Add merges the product into the cart: an existing line's quantity is
// incremented, otherwise a new line with quantity 1 is appended. Never a
// duplicate line per product id.
func (s *Store) Add(product domain.Product) {
	s.mu.Lock()
	merged := false
	for i := range s.lines {
		if s.lines[i].Product.ID == product.ID {
			s.lines[i].Quantity++
			merged = true
			break
		}
	}
	if !merged {
		s.lines = append(s.lines, Line{Product: product, Quantity: 1})
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Remove deletes the line for productID. Absent lines are a silent no-op.
func (s *Store) Remove(productID string) {
	s.mu.Lock()
	removed := false
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			removed = true
			break
		}
	}
	if !removed {
		s.mu.Unlock()
		return
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// AdjustQuantity changes a line's quantity by delta, clamped to a minimum
// of 1. Dropping to zero is not possible; use Remove instead. Absent lines
// are a no-op.
func (s *Store) AdjustQuantity(productID string, delta int) {
	s.mu.Lock()
	adjusted := false
	for i := range s.lines {
		if s.lines[i].Product.ID == productID {
			s.lines[i].Quantity += delta
			if s.lines[i].Quantity < 1 {
				s.lines[i].Quantity = 1
			}
			adjusted = true
			break
		}
	}
	if !adjusted {
		s.mu.Unlock()
		return
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Clear empties the cart. This is the only path that discards lines.
func (s *Store) Clear() {
	s.mu.Lock()
	s.lines = nil
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Lines returns a copy of the current line items in insertion order.
func (s *Store) Lines() []Line {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// TotalCount is the sum of quantities across lines, recomputed on read.
func (s *Store) TotalCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, l := range s.lines {
		total += l.Quantity
	}
	return total
}

// TotalPrice is the sum of line subtotals, recomputed on read.
func (s *Store) TotalPrice() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0.0
	for _, l := range s.lines {
		total += l.Total()
	}
	return total
}

// Subscribe registers a change callback and returns its unsubscribe handle.
// Callbacks fire synchronously after each mutation, in subscription order.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.lines)
	if err == nil {
		err = s.storage.Set(storageKey, data)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist cart")
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn()
	}
}
