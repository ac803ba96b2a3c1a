package db

import (
	"context"
	"fmt"
)

// NeedsBootstrap returns true if the database has no users yet.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	count, err := db.Users().Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	return count == 0, nil
}

// Bootstrap seeds the initial admin account. The caller supplies the
// already-hashed password so this package stays free of hashing concerns.
func (db *DB) Bootstrap(ctx context.Context, username, passwordHash string) error {
	if username == "" || passwordHash == "" {
		return fmt.Errorf("bootstrap requires a username and password hash")
	}

	return db.Users().Create(ctx, &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         "admin",
	})
}
