package cart

import "sync"

// Store keeps one cart per browser session. Carts live for the lifetime of the
// process only; losing them on restart is acceptable, they are not orders.
type Store struct {
	mu    sync.RWMutex
	carts map[string]*Cart
}

func NewStore() *Store {
	return &Store{
		carts: make(map[string]*Cart),
	}
}

// Get returns the cart for the session, creating an empty one on first use.
func (s *Store) Get(sessionID string) *Cart {
	s.mu.RLock()
	c, ok := s.carts[sessionID]
	s.mu.RUnlock()
	if ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.carts[sessionID]; ok {
		return c
	}
	c = New()
	s.carts[sessionID] = c
	return c
}

// EndSession drops the session's cart entirely.
func (s *Store) EndSession(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionID)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}
