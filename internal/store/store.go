package store

import (
	"strings"
	"sync"
)

// UserStore is a process-lifetime directory of users, indexed by normalized
// email and by id. It persists nothing: created empty at start, lost on
// restart. Save does not enforce email uniqueness; callers are expected to
// check FindByEmail first, and the check and the save are not atomic across
// concurrent requests.
type UserStore struct {
	mu           sync.RWMutex
	usersByEmail map[string]*User
	usersByID    map[string]*User
}

func NewUserStore() *UserStore {
	return &UserStore{
		usersByEmail: make(map[string]*User),
		usersByID:    make(map[string]*User),
	}
}

// NormalizeEmail lowers and trims an email address. Normalized email is the
// uniqueness key for the directory.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// FindByEmail looks a user up by email, case-insensitively.
func (s *UserStore) FindByEmail(email string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByEmail[NormalizeEmail(email)]
	return u, ok
}

// FindByID looks a user up by exact id.
func (s *UserStore) FindByID(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.usersByID[id]
	return u, ok
}

// Save inserts or overwrites the user under both indices and returns it.
func (s *UserStore) Save(u *User) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usersByEmail[NormalizeEmail(u.Email)] = u
	s.usersByID[u.ID] = u
	return u
}

// Clear empties both indices. Test isolation only; no route reaches it.
func (s *UserStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.usersByEmail = make(map[string]*User)
	s.usersByID = make(map[string]*User)
}
