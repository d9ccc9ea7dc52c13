// Package session resolves, creates and revokes admin sessions and tells
// subscribers when a session begins or ends.
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/auth"
	"github.com/gaayatricouture/couture/internal/store"
)

// ErrInvalidCredentials is returned when an email and password do not match
// an admin account.
var ErrInvalidCredentials = errors.New("Invalid login credentials")

// Session is an authenticated admin session. Its ID is the token's JTI.
type Session struct {
	ID        string
	UserID    int64
	Email     string
	Token     string
	ExpiresAt time.Time
}

// Provider is the authentication backend used by pages and the JSON API.
type Provider interface {
	// Current returns the session for token, or nil when the token is absent,
	// invalid, expired or revoked.
	Current(ctx context.Context, token string) (*Session, error)

	// SignInWithPassword checks credentials and starts a new session.
	SignInWithPassword(ctx context.Context, email, password string) (*Session, error)

	// SignOut revokes the session behind token.
	SignOut(ctx context.Context, token string) error

	// Subscribe registers fn for session changes. The returned function
	// removes the subscription and is safe to call more than once.
	Subscribe(fn func(Event)) (unsubscribe func())
}

// Service implements Provider with bcrypt passwords and signed JWTs.
type Service struct {
	users  store.UserStore
	tokens store.TokenStore
	secret string
	events *Broadcaster
	logger zerolog.Logger
}

// NewService creates a session service signing tokens with secret.
func NewService(users store.UserStore, tokens store.TokenStore, secret string, logger zerolog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		secret: secret,
		events: NewBroadcaster(),
		logger: logger.With().Str("component", "session").Logger(),
	}
}

var _ Provider = (*Service)(nil)

// Current resolves token to a live session.
func (s *Service) Current(ctx context.Context, token string) (*Session, error) {
	if token == "" {
		return nil, nil
	}

	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		s.logger.Debug().Err(err).Msg("rejecting invalid session token")
		return nil, nil
	}

	if claims.ID != "" {
		revoked, err := s.tokens.IsTokenRevoked(ctx, claims.ID)
		if err != nil {
			return nil, fmt.Errorf("checking session: %w", err)
		}
		if revoked {
			return nil, nil
		}
	}

	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("checking session user: %w", err)
	}
	if user == nil {
		return nil, nil
	}

	return sessionFromClaims(claims, token), nil
}

// SignInWithPassword checks the credentials and issues a new session token.
func (s *Service) SignInWithPassword(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, password) {
		s.logger.Warn().Str("email", email).Msg("login failed")
		return nil, ErrInvalidCredentials
	}

	token, claims, err := auth.GenerateToken(s.secret, user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("signing in: %w", err)
	}

	sess := sessionFromClaims(claims, token)
	s.logger.Info().Str("email", user.Email).Msg("user logged in")
	s.events.Publish(Event{Type: SignedIn, Session: sess})
	return sess, nil
}

// SignOut revokes token. Signing out an invalid or unknown token is a no-op.
func (s *Service) SignOut(ctx context.Context, token string) error {
	claims, err := auth.ValidateToken(s.secret, token)
	if err != nil {
		return nil
	}

	if claims.ID != "" && claims.ExpiresAt != nil {
		if err := s.tokens.RevokeToken(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
			return fmt.Errorf("signing out: %w", err)
		}
	}

	s.logger.Info().Str("email", claims.Email).Msg("user logged out")
	s.events.Publish(Event{Type: SignedOut, Session: sessionFromClaims(claims, token)})
	return nil
}

// Subscribe registers fn for session changes.
func (s *Service) Subscribe(fn func(Event)) func() {
	return s.events.Subscribe(fn)
}

func sessionFromClaims(claims *auth.Claims, token string) *Session {
	sess := &Session{
		ID:     claims.ID,
		UserID: claims.UserID,
		Email:  claims.Email,
		Token:  token,
	}
	if claims.ExpiresAt != nil {
		sess.ExpiresAt = claims.ExpiresAt.Time
	}
	return sess
}
