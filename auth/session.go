// Package auth holds the sign-in state of the dashboard. The shell only needs
// IsLoading and IsAuthenticated; the token itself is handed to the API client.
package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"admin-dash/data"

	"github.com/charmbracelet/log"
	"github.com/golang-jwt/jwt/v5"
)

var ErrUnauthenticated = errors.New("not authenticated")

type State int

const (
	StateLoading State = iota
	StateAuthenticated
	StateUnauthenticated
)

const AllPermissions = "*"

type Claims struct {
	jwt.RegisteredClaims
	Name        string   `json:"name,omitempty"`
	Permissions []string `json:"permissions,omitempty"`
}

// Session is read by API commands for the bearer token, so it is safe for
// concurrent use.
type Session struct {
	mu     sync.RWMutex
	state  State
	token  string
	claims *Claims
	now    func() time.Time
}

func NewSession() *Session {
	return &Session{state: StateLoading, now: time.Now}
}

// NewDemoSession is signed in with every permission.
func NewDemoSession() *Session {
	return &Session{
		state:  StateAuthenticated,
		token:  "demo",
		claims: &Claims{Name: "demo", Permissions: []string{AllPermissions}},
		now:    time.Now,
	}
}

func (s *Session) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state == StateLoading
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authenticated()
}

func (s *Session) authenticated() bool {
	if s.state != StateAuthenticated {
		return false
	}
	if s.claims != nil && s.claims.ExpiresAt != nil && !s.claims.ExpiresAt.After(s.now()) {
		return false
	}
	return true
}

func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated() {
		return ""
	}
	return s.token
}

func (s *Session) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.claims == nil {
		return ""
	}
	if s.claims.Name != "" {
		return s.claims.Name
	}
	return s.claims.Subject
}

// Restore signs in with a stored token. Signatures are the server's business;
// the claims are only read for expiry, display name and permissions. Tokens
// that are not JWTs are accepted as opaque with every permission.
func (s *Session) Restore(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" {
		s.state = StateUnauthenticated
		return ErrUnauthenticated
	}

	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(token, claims)
	if err != nil {
		log.Debug("Token is not a JWT, treating it as opaque", "err", err)
		claims = &Claims{Permissions: []string{AllPermissions}}
	}

	s.token = token
	s.claims = claims
	s.state = StateAuthenticated

	if !s.authenticated() {
		s.clear()
		return fmt.Errorf("token expired: %w", ErrUnauthenticated)
	}
	return nil
}

func (s *Session) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clear()
}

func (s *Session) clear() {
	s.state = StateUnauthenticated
	s.token = ""
	s.claims = nil
}

// Can reports whether the session grants permission. An empty permission is
// always granted.
func (s *Session) Can(permission string) bool {
	if permission == "" {
		return true
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.authenticated() || s.claims == nil {
		return false
	}
	return slices.Contains(s.claims.Permissions, AllPermissions) ||
		slices.Contains(s.claims.Permissions, permission)
}

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token.
func Login(ctx context.Context, client *data.Client, username string, password string) (string, error) {
	var res LoginResponse
	err := client.Do(ctx, http.MethodPost, "/auth/login", nil, LoginRequest{Username: username, Password: password}, &res)
	if err != nil {
		var apiErr *data.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return "", fmt.Errorf("%w: %s", ErrUnauthenticated, apiErr.Body)
		}
		return "", fmt.Errorf("signing in: %w", err)
	}
	if res.Token == "" {
		return "", fmt.Errorf("signing in: empty token: %w", ErrUnauthenticated)
	}
	return res.Token, nil
}
