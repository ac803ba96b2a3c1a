package db

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("session not found")

// Session records one issued bearer token. The session id is embedded in
// the token's claims; revoking the row invalidates the token before its
// natural expiry.
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	Revoked   bool
	CreatedAt time.Time
}

// SessionStore provides session lifecycle operations.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id string) (*Session, error)
	Revoke(ctx context.Context, id string) error
	RevokeAllForUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// Sessions returns a SessionStore for this database.
func (db *DB) Sessions() SessionStore {
	return &sessionStore{db: db}
}

type sessionStore struct {
	db *DB
}

func (s *sessionStore) Create(ctx context.Context, sess *Session) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, expires_at, revoked)
		VALUES (?, ?, ?, 0)
	`, sess.ID, sess.UserID, sess.ExpiresAt.UTC().Format(time.RFC3339))
	return err
}

func (s *sessionStore) Get(ctx context.Context, id string) (*Session, error) {
	sess := &Session{}
	var expiresAt, createdAt string
	var revoked int
	err := s.db.QueryRowContext(ctx, `
		SELECT id, user_id, expires_at, revoked, created_at
		FROM sessions WHERE id = ?
	`, id).Scan(&sess.ID, &sess.UserID, &expiresAt, &revoked, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	sess.Revoked = revoked != 0
	sess.ExpiresAt, _ = time.Parse(time.RFC3339, expiresAt)
	sess.CreatedAt, _ = time.Parse("2006-01-02 15:04:05", createdAt)
	return sess, nil
}

func (s *sessionStore) Revoke(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sessions SET revoked = 1 WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (s *sessionStore) RevokeAllForUser(ctx context.Context, userID string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE sessions SET revoked = 1 WHERE user_id = ?`, userID)
	return err
}

func (s *sessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM sessions WHERE expires_at < ?
	`, time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
