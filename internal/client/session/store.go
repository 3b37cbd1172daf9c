// Package session holds the client's current authenticated identity: the
// session token plus the display fields that came back from login. State
// survives restarts via durable local storage and dependent views observe
// changes through synchronous subscriptions.
package session

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/erosmarket/storefront/internal/client/storage"
	"github.com/erosmarket/storefront/internal/core/domain"
	"github.com/erosmarket/storefront/internal/core/ports"
)

// storageKey is the fixed namespace the serialized session lives under.
const storageKey = "storefront_user"

// Session is the persisted client identity record.
type Session struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Avatar   string `json:"avatar,omitempty"`
}

type subscriber struct {
	id int
	fn func()
}

// Store is the client-side session state container. Mutations run to
// completion, persist, and then notify subscribers in subscription order.
// Persistence failures are non-fatal: the in-memory state stays
// authoritative for the current process.
type Store struct {
	storage storage.Store
	logger  zerolog.Logger

	mu      sync.Mutex
	current *Session
	subs    []subscriber
	nextSub int
}

func NewStore(st storage.Store, logger zerolog.Logger) *Store {
	return &Store{storage: st, logger: logger}
}

// Initialize restores a persisted session. Absent or corrupt data leaves
// the store unauthenticated without error; a successful restore notifies
// subscribers.
func (s *Store) Initialize() {
	data, err := s.storage.Get(storageKey)
	if err != nil {
		return
	}

	var restored Session
	if err := json.Unmarshal(data, &restored); err != nil || restored.Token == "" {
		// Fail open to logged-out, never crash.
		s.logger.Warn().Msg("discarding corrupt session record")
		return
	}

	s.mu.Lock()
	s.current = &restored
	s.mu.Unlock()
	s.notify()
}

// Login replaces the current identity and token with a fresh login result.
func (s *Store) Login(result ports.LoginResult) {
	s.mu.Lock()
	s.current = &Session{
		Token:    result.Token,
		Username: result.Username,
		Email:    result.Email,
		Role:     result.Role,
		Avatar:   result.Avatar,
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
}

// Logout clears the identity and removes the persisted record, so a fresh
// process cannot resurrect the old session.
func (s *Store) Logout() {
	s.mu.Lock()
	s.current = nil
	if err := s.storage.Delete(storageKey); err != nil {
		s.logger.Warn().Err(err).Msg("failed to remove persisted session")
	}
	s.mu.Unlock()
	s.notify()
}

// UpdateProfile replaces the display fields, keeping the token. A no-op
// when unauthenticated.
func (s *Store) UpdateProfile(username, email, avatar string) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return
	}
	s.current = &Session{
		Token:    s.current.Token,
		Username: username,
		Email:    email,
		Role:     s.current.Role,
		Avatar:   avatar,
	}
	s.persistLocked()
	s.mu.Unlock()
	s.notify()
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

// Current returns a copy of the session, or nil when unauthenticated.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copy := *s.current
	return &copy
}

// Token returns the bearer token, or empty when unauthenticated.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return ""
	}
	return s.current.Token
}

func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

func (s *Store) IsAdmin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil && s.current.Role == domain.RoleAdmin
}

func (s *Store) persistLocked() {
	data, err := json.Marshal(s.current)
	if err == nil {
		err = s.storage.Set(storageKey, data)
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist session")
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
