package domain

import "sync"

const historyCap = 10

// Message is one chat turn kept in session history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Session is the per-conversation state: brand binding, capped history, the
// last product the conversation locked onto and free-form user attributes.
// Turns may run concurrently on the same session, so mutation goes through
// the mutex; last-write-wins is acceptable.
type Session struct {
	ID      string
	BrandID string

	mu          sync.Mutex
	history     []Message
	lastProduct string
	attributes  map[string]string
}

func NewSession(id, brandID string) *Session {
	return &Session{ID: id, BrandID: brandID, attributes: map[string]string{}}
}

// AddInteraction appends a turn, keeping only the last 10 messages.
func (s *Session) AddInteraction(role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, Message{Role: role, Content: content})
	if len(s.history) > historyCap {
		s.history = s.history[len(s.history)-historyCap:]
	}
}

// History returns a copy of the message history.
func (s *Session) History() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.history))
	copy(out, s.history)
	return out
}

// SetLastProduct remembers the handle of a direct hit. There is no automatic
// reset: a stale handle persists until overwritten or the session expires.
func (s *Session) SetLastProduct(handle string) {
	s.mu.Lock()
	s.lastProduct = handle
	s.mu.Unlock()
}

// LastProduct returns the remembered handle, empty when none.
func (s *Session) LastProduct() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastProduct
}

// SetAttribute remembers a user fact like "skin_type".
func (s *Session) SetAttribute(key, value string) {
	s.mu.Lock()
	s.attributes[key] = value
	s.mu.Unlock()
}

func (s *Session) Attribute(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.attributes[key]
	return v, ok
}
