package demosite

import (
	"sync"

	"github.com/google/uuid"
)

// Shipping is the checkout information a shopper entered
type Shipping struct {
	FirstName  string
	LastName   string
	PostalCode string
}

// Complete reports whether every field was entered
func (s Shipping) Complete() bool {
	return s.FirstName != "" && s.LastName != "" && s.PostalCode != ""
}

// Session is the state of one signed-in shopper
type Session struct {
	ID       string
	Username string
	Cart     []string
	Shipping Shipping
}

// SessionStore keeps sessions in memory. Safe for concurrent use.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewSessionStore creates an empty store
func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: make(map[string]*Session)}
}

// Create starts a session for username
func (s *SessionStore) Create(username string) Session {
	session := &Session{ID: uuid.New().String(), Username: username}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session.copy()
}

// Get returns a copy of the session with the given id
func (s *SessionStore) Get(id string) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	return session.copy(), true
}

// Update applies fn to the stored session and returns the result
func (s *SessionStore) Update(id string, fn func(*Session)) (Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[id]
	if !ok {
		return Session{}, false
	}
	fn(session)
	return session.copy(), true
}

// Delete ends a session
func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of live sessions
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Session) copy() Session {
	c := *s
	c.Cart = append([]string(nil), s.Cart...)
	return c
}

// InCart reports whether the product is in the cart
func (s Session) InCart(productID string) bool {
	for _, id := range s.Cart {
		if id == productID {
			return true
		}
	}
	return false
}
