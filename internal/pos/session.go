package pos

import "sync"

// CartStore keeps one cart engine per seller terminal session. The engines
// themselves are single-threaded; the store serializes access so concurrent
// requests from the same terminal cannot interleave cart mutations.
type CartStore struct {
	mu    sync.Mutex
	carts map[string]*CartEngine
}

// NewCartStore creates an empty store.
func NewCartStore() *CartStore {
	return &CartStore{carts: make(map[string]*CartEngine)}
}

// With runs fn against the seller's cart, creating it on first use. The store
// lock is held for the duration of fn.
func (s *CartStore) With(sellerID string, fn func(cart *CartEngine) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sellerID]
	if !ok {
		cart = NewCartEngine()
		s.carts[sellerID] = cart
	}
	return fn(cart)
}

// Drop discards the seller's cart session.
func (s *CartStore) Drop(sellerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sellerID)
}
