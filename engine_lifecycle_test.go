package facegate

import (
	"context"
	"errors"
	"testing"
)

// Exercises the full account lifecycle through the public API only:
// register, two-step login, token verification, logout, deactivation.
func TestAccountLifecycle(t *testing.T) {
	store := newMockStore()
	engine, _ := newTestEngine(t, loginTestConfig(), store)
	ctx := WithClientIP(context.Background(), "10.0.0.7")

	public, err := engine.Register(ctx, RegisterRequest{
		Username:   "alice",
		Email:      "alice@example.com",
		Password:   "correct-horse-battery",
		FaceVector: enrolledVector(),
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	stepOne, err := engine.LoginStep1(ctx, "alice", "correct-horse-battery")
	if err != nil {
		t.Fatalf("LoginStep1 failed: %v", err)
	}
	if stepOne.Score != 0.5 || stepOne.Token != "" {
		t.Fatalf("unexpected step-1 result: %+v", stepOne)
	}

	full, err := engine.LoginStep2(ctx, "alice", "correct-horse-battery", nearVector())
	if err != nil {
		t.Fatalf("LoginStep2 failed: %v", err)
	}
	if full.Score != 1.0 || full.Token == "" {
		t.Fatalf("unexpected step-2 result: %+v", full)
	}

	subject, err := engine.VerifyToken(ctx, full.Token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if subject != public.ID {
		t.Fatalf("expected subject %s, got %s", public.ID, subject)
	}

	me, err := engine.Identity(ctx, full.Token)
	if err != nil {
		t.Fatalf("Identity failed: %v", err)
	}
	if me.Username != "alice" {
		t.Fatalf("expected alice, got %s", me.Username)
	}

	if err := engine.Logout(ctx, subject); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if _, err := engine.VerifyToken(ctx, full.Token); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected token to be dead after logout, got %v", err)
	}

	// Log back in, then retire the account for good.
	again, err := engine.LoginStep2(ctx, "alice", "correct-horse-battery", enrolledVector())
	if err != nil {
		t.Fatalf("re-login failed: %v", err)
	}
	if err := engine.Deactivate(ctx, again.Token); err != nil {
		t.Fatalf("Deactivate failed: %v", err)
	}
	if _, err := engine.LoginStep1(ctx, "alice", "correct-horse-battery"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected deactivated account login to fail, got %v", err)
	}
}
