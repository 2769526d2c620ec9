package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis.Run failed: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewStore(client, "session"), mr
}

func TestSaveAndGet(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-a" {
		t.Fatalf("expected token-a, got %s", got)
	}
}

func TestSaveOverwritesPreviousToken(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save(token-a) failed: %v", err)
	}
	if err := store.Save(ctx, "u1", "token-b", time.Hour); err != nil {
		t.Fatalf("Save(token-b) failed: %v", err)
	}

	got, err := store.Get(ctx, "u1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got != "token-b" {
		t.Fatalf("expected the new token to displace the old one, got %s", got)
	}

	match, err := store.Matches(ctx, "u1", "token-a")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if match {
		t.Fatal("expected the displaced token to no longer match")
	}
}

func TestGetMissingSession(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.Get(context.Background(), "absent"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestGetExpiredSession(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", "token-a", time.Minute); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	mr.FastForward(2 * time.Minute)

	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestMatches(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	match, err := store.Matches(ctx, "u1", "token-a")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if !match {
		t.Fatal("expected stored token to match")
	}

	match, err = store.Matches(ctx, "u1", "token-b")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if match {
		t.Fatal("expected different token to not match")
	}

	// Absent entry is a plain no-match, not an error.
	match, err = store.Matches(ctx, "u2", "token-a")
	if err != nil {
		t.Fatalf("Matches on absent session failed: %v", err)
	}
	if match {
		t.Fatal("expected absent session to not match")
	}
}

func TestDeleteIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected session to be gone, got %v", err)
	}

	// Deleting again is not an error.
	if err := store.Delete(ctx, "u1"); err != nil {
		t.Fatalf("second Delete failed: %v", err)
	}
}

func TestKeyNamespacing(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "u1", "token-a", time.Hour); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	if !mr.Exists("session:u1") {
		t.Fatal("expected key session:u1 to exist")
	}
}

func TestRedisDownSurfacesError(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	mr.Close()

	if err := store.Save(ctx, "u1", "token-a", time.Hour); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
	if _, err := store.Get(ctx, "u1"); !errors.Is(err, ErrRedisUnavailable) {
		t.Fatalf("expected ErrRedisUnavailable, got %v", err)
	}
}
