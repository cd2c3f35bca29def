package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/santhosh-patel/snapkeep-core/internal/core/domain"
)

// setupTestRedis starts miniredis and returns a connected client
func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, func() {
		client.Close()
		mr.Close()
	}
}

func testSession(userID string) *domain.Session {
	return &domain.Session{
		ID:        "session-123",
		UserID:    userID,
		Token:     "token-abc",
		ExpiresAt: time.Now().Add(24 * time.Hour),
		CreatedAt: time.Now(),
	}
}

func TestSessionStore_SaveAndGetByToken(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	session := testSession("user-1")
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := store.GetByToken(context.Background(), session.Token)
	if err != nil {
		t.Fatalf("GetByToken() error = %v", err)
	}
	if got.ID != session.ID || got.UserID != session.UserID {
		t.Errorf("GetByToken() = %+v", got)
	}
}

func TestSessionStore_GetByToken_NotFound(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	if _, err := store.GetByToken(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("GetByToken() error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionStore_Save_AlreadyExpired(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	session := testSession("user-1")
	session.ExpiresAt = time.Now().Add(-time.Minute)
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := store.GetByToken(context.Background(), session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("expired session was stored: %v", err)
	}
}

func TestSessionStore_Delete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	session := testSession("user-1")
	if err := store.Save(context.Background(), session); err != nil {
		t.Fatal(err)
	}
	if err := store.Delete(context.Background(), session.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := store.GetByToken(context.Background(), session.Token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("session still resolvable after delete: %v", err)
	}

	// Deleting a missing session is not an error.
	if err := store.Delete(context.Background(), "missing"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}

func TestSessionStore_DeleteByUser(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)

	first := testSession("user-1")
	second := testSession("user-1")
	second.ID = "session-456"
	second.Token = "token-def"
	other := testSession("user-2")
	other.ID = "session-789"
	other.Token = "token-ghi"

	for _, s := range []*domain.Session{first, second, other} {
		if err := store.Save(context.Background(), s); err != nil {
			t.Fatal(err)
		}
	}

	if err := store.DeleteByUser(context.Background(), "user-1"); err != nil {
		t.Fatalf("DeleteByUser() error = %v", err)
	}

	for _, token := range []string{first.Token, second.Token} {
		if _, err := store.GetByToken(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Errorf("user-1 session %q survived: %v", token, err)
		}
	}
	if _, err := store.GetByToken(context.Background(), other.Token); err != nil {
		t.Errorf("user-2 session was deleted: %v", err)
	}
}
