package auth

import (
	"sync"

	"github.com/handiism/tocadiscos/internal/errors"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a wrong
// password.
var ErrInvalidCredentials = errors.New("invalid username or password")

// Authorizer reports whether the current operator may see restricted data.
type Authorizer interface {
	IsAuthorized() bool
}

// Static is an Authorizer with a fixed answer.
type Static bool

// IsAuthorized returns the fixed answer.
func (s Static) IsAuthorized() bool {
	return bool(s)
}

// Session tracks the operator logged in against a credentials file.
type Session struct {
	path string

	mu    sync.RWMutex
	user  string
	admin bool
}

// NewSession creates a logged out session over the credentials file at path.
func NewSession(path string) *Session {
	return &Session{path: path}
}

// Login checks username and password. A successful login by a non-admin
// account is not an error but leaves the session unauthorized.
func (s *Session) Login(username, password string) error {
	users, err := LoadUsers(s.path)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == username && VerifyPassword(u.Password, password) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.user = u.Username
			s.admin = u.IsAdmin()
			return nil
		}
	}
	return ErrInvalidCredentials
}

// Logout forgets the current operator.
func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = ""
	s.admin = false
}

// User returns the logged in username, or "" when logged out.
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// IsAuthorized reports whether an admin account is logged in.
func (s *Session) IsAuthorized() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != "" && s.admin
}
