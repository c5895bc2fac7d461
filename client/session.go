package client

import (
	"sync"

	"github.com/edube-platform/edube_api/dto"
)

// Session is the process-wide authenticated state: bearer token, the logged
// in user, and the event bus tying views together. Construct one at startup
// and pass it to the components that need it; Init after login, Clear on
// logout.
type Session struct {
	mu    sync.RWMutex
	token string
	user  *dto.UserInfo

	bus *Bus
}

func NewSession() *Session {
	return &Session{
		bus: NewBus(),
	}
}

func (s *Session) Init(token string, user dto.UserInfo) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = &user
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Authenticated() bool {
	return s.Token() != ""
}

func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.ID
}

func (s *Session) Role() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// User returns a copy of the logged in profile, or nil when logged out.
func (s *Session) User() *dto.UserInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	user := *s.user
	return &user
}

// Bus is shared by every component holding this session.
func (s *Session) Bus() *Bus {
	return s.bus
}
