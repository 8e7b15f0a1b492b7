package rozklad

import "sync"

// Sessions is the set of chats awaiting a direction choice. It is a
// single-shot gate: Disarm removes the chat and reports whether it was armed,
// so exactly one free-text message after the menu is ever consumed.
type Sessions struct {
	mu    sync.Mutex
	armed map[int64]struct{}
}

func NewSessions() *Sessions {
	return &Sessions{armed: make(map[int64]struct{})}
}

func (s *Sessions) Arm(chatID int64) {
	s.mu.Lock()
	s.armed[chatID] = struct{}{}
	s.mu.Unlock()
}

// Disarm removes the chat from the set and reports prior membership.
func (s *Sessions) Disarm(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.armed[chatID]
	if ok {
		delete(s.armed, chatID)
	}
	return ok
}

func (s *Sessions) Armed(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.armed[chatID]
	return ok
}
