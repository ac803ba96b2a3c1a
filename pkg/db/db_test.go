package db

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	database, err := Open(filepath.Join(t.TempDir(), "feedbox.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { database.Close() })

	if err := database.Migrate(context.Background()); err != nil {
		t.Fatal(err)
	}
	return database
}

func TestMigrate_Idempotent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	if err := database.Migrate(ctx); err != nil {
		t.Fatal(err)
	}

	version, err := database.SchemaVersion(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if version != currentSchemaVersion {
		t.Errorf("schema version = %d, want %d", version, currentSchemaVersion)
	}
}

func TestBootstrap_SeedsAdmin(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	needs, err := database.NeedsBootstrap(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !needs {
		t.Fatal("fresh database should need bootstrap")
	}

	if err := database.Bootstrap(ctx, "admin", "$argon2id$fake"); err != nil {
		t.Fatal(err)
	}

	needs, err = database.NeedsBootstrap(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if needs {
		t.Error("bootstrap should be done after seeding")
	}

	u, err := database.Users().GetByUsername(ctx, "admin")
	if err != nil {
		t.Fatal(err)
	}
	if u.Role != "admin" {
		t.Errorf("role = %q, want admin", u.Role)
	}
}

func TestUsers_RoundTrip(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	u := &User{Username: "casey", PasswordHash: "hash1"}
	if err := database.Users().Create(ctx, u); err != nil {
		t.Fatal(err)
	}
	if u.ID == "" {
		t.Fatal("Create must assign an id")
	}

	got, err := database.Users().Get(ctx, u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Username != "casey" || got.Role != "user" {
		t.Errorf("got %+v", got)
	}

	if err := database.Users().UpdatePassword(ctx, u.ID, "hash2"); err != nil {
		t.Fatal(err)
	}
	got, _ = database.Users().Get(ctx, u.ID)
	if got.PasswordHash != "hash2" {
		t.Errorf("password hash = %q, want hash2", got.PasswordHash)
	}

	if _, err := database.Users().GetByUsername(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("err = %v, want ErrUserNotFound", err)
	}
}

func TestSessions_RevokeLifecycle(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	u := &User{Username: "casey", PasswordHash: "x"}
	if err := database.Users().Create(ctx, u); err != nil {
		t.Fatal(err)
	}

	sess := &Session{
		ID:        "sess-1",
		UserID:    u.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	if err := database.Sessions().Create(ctx, sess); err != nil {
		t.Fatal(err)
	}

	got, err := database.Sessions().Get(ctx, "sess-1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Revoked {
		t.Error("new session must not be revoked")
	}

	if err := database.Sessions().Revoke(ctx, "sess-1"); err != nil {
		t.Fatal(err)
	}
	got, _ = database.Sessions().Get(ctx, "sess-1")
	if !got.Revoked {
		t.Error("session must be revoked after Revoke")
	}

	if err := database.Sessions().Revoke(ctx, "missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("err = %v, want ErrSessionNotFound", err)
	}
}

func TestSessions_DeleteExpired(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	u := &User{Username: "casey", PasswordHash: "x"}
	if err := database.Users().Create(ctx, u); err != nil {
		t.Fatal(err)
	}

	stale := &Session{ID: "old", UserID: u.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	live := &Session{ID: "new", UserID: u.ID, ExpiresAt: time.Now().Add(time.Hour)}
	for _, s := range []*Session{stale, live} {
		if err := database.Sessions().Create(ctx, s); err != nil {
			t.Fatal(err)
		}
	}

	n, err := database.Sessions().DeleteExpired(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Errorf("deleted = %d, want 1", n)
	}

	if _, err := database.Sessions().Get(ctx, "new"); err != nil {
		t.Errorf("live session should survive: %v", err)
	}
}

func TestFeedEvents_ListRecent(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := database.FeedEvents().Record(ctx, "api", 1); err != nil {
			t.Fatal(err)
		}
	}
	if err := database.FeedEvents().Record(ctx, "mcp", 2); err != nil {
		t.Fatal(err)
	}

	events, err := database.FeedEvents().ListRecent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 {
		t.Fatalf("len(events) = %d, want 2", len(events))
	}
	// Newest first
	if events[0].Source != "mcp" || events[0].Portions != 2 {
		t.Errorf("events[0] = %+v, want the mcp feed", events[0])
	}
}
