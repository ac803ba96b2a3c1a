package auth

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/tmarsden/feedbox/pkg/db"
)

// ErrBadCredentials covers every login failure. Callers get no detail on
// whether the username or the password was wrong.
var ErrBadCredentials = errors.New("invalid username or password")

// Identity is the authenticated user surfaced to handlers and the
// dashboard session.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

// Service implements the bearer-token session lifecycle: login creates a
// session, verify validates a presented token against it, logout revokes
// it. Token expiry is discovered on verify; there is no refresh.
type Service struct {
	users    db.UserStore
	sessions db.SessionStore
	secret   string
	ttl      time.Duration
}

// NewService creates an auth service over the given stores.
func NewService(database *db.DB, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &Service{
		users:    database.Users(),
		sessions: database.Sessions(),
		secret:   secret,
		ttl:      ttl,
	}
}

// Login exchanges credentials for a bearer token and the user identity.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Identity, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrUserNotFound) {
			return "", nil, ErrBadCredentials
		}
		return "", nil, err
	}

	ok, err := VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", nil, ErrBadCredentials
	}

	token, sessionID, err := signToken(user.ID, user.Role, s.secret, s.ttl)
	if err != nil {
		return "", nil, err
	}

	err = s.sessions.Create(ctx, &db.Session{
		ID:        sessionID,
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(s.ttl),
	})
	if err != nil {
		return "", nil, err
	}

	log.Info().Str("user", username).Msg("Login succeeded")
	return token, identityOf(user), nil
}

// Verify validates a bearer token and returns the identity it belongs to.
// Every failure mode (bad signature, expiry, revoked or unknown session,
// deleted user) means not authenticated.
func (s *Service) Verify(ctx context.Context, token string) (*Identity, error) {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return nil, err
	}

	sess, err := s.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		return nil, ErrTokenInvalid
	}
	if sess.Revoked || time.Now().After(sess.ExpiresAt) {
		return nil, ErrTokenInvalid
	}

	user, err := s.users.Get(ctx, claims.Subject)
	if err != nil {
		return nil, ErrTokenInvalid
	}

	return identityOf(user), nil
}

// Logout revokes the session behind a token. Revoking an already-invalid
// token is not an error; the end state is the same.
func (s *Service) Logout(ctx context.Context, token string) error {
	claims, err := parseToken(token, s.secret)
	if err != nil {
		return nil
	}

	if err := s.sessions.Revoke(ctx, claims.SessionID); err != nil && !errors.Is(err, db.ErrSessionNotFound) {
		return err
	}

	log.Info().Str("user_id", claims.Subject).Msg("Session revoked")
	return nil
}

func identityOf(u *db.User) *Identity {
	return &Identity{ID: u.ID, Username: u.Username, Role: u.Role}
}
