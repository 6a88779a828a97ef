// Package cart accumulates a cashier's selected products before checkout.
// Carts are scoped to the browser session and live only in memory; checkout
// or session expiry destroys them.
package cart

import (
	"sync"
	"time"
)

// Item is one line in a cart: a product reference with a display snapshot
// and an accumulated quantity.
type Item struct {
	ProductID uint   `json:"productId"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	ImageURL  string `json:"imageUrl"`
	Quantity  int    `json:"quantity"`
}

type cart struct {
	items   []Item
	touched time.Time
}

// Store holds all active carts keyed by session ID.
type Store struct {
	mu    sync.Mutex
	carts map[string]*cart
	ttl   time.Duration
}

// NewStore creates a Store whose carts expire after ttl of inactivity.
func NewStore(ttl time.Duration) *Store {
	return &Store{carts: make(map[string]*cart), ttl: ttl}
}

// Add puts item into the session's cart. A product already present gets its
// quantity incremented; a new product is appended with the given quantity
// (or 1 when unset). Insertion order of distinct products is preserved.
//
// Every mutation replaces the item slice wholesale, so a slice previously
// returned by Items never changes underneath its holder.
func (s *Store) Add(sessionID string, item Item) []Item {
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		c = &cart{}
		s.carts[sessionID] = c
	}
	c.touched = time.Now()

	next := make([]Item, len(c.items), len(c.items)+1)
	copy(next, c.items)

	found := false
	for i := range next {
		if next[i].ProductID == item.ProductID {
			next[i].Quantity += item.Quantity
			found = true
			break
		}
	}
	if !found {
		next = append(next, item)
	}

	c.items = next
	return next
}

// Remove deletes the product's line from the session's cart.
func (s *Store) Remove(sessionID string, productID uint) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return []Item{}
	}
	c.touched = time.Now()

	next := make([]Item, 0, len(c.items))
	for _, it := range c.items {
		if it.ProductID != productID {
			next = append(next, it)
		}
	}
	c.items = next
	return next
}

// Items returns the session's current cart contents. The returned slice is
// never mutated by later Store operations.
func (s *Store) Items(sessionID string) []Item {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.carts[sessionID]
	if !ok {
		return []Item{}
	}
	c.touched = time.Now()
	return c.items
}

// Clear destroys the session's cart. Called after checkout.
func (s *Store) Clear(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

// Sweep drops carts idle longer than the store TTL and reports how many
// were removed. The scheduler calls this periodically.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	cutoff := time.Now().Add(-s.ttl)
	for id, c := range s.carts {
		if c.touched.Before(cutoff) {
			delete(s.carts, id)
			n++
		}
	}
	return n
}
