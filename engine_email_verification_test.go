package authgate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestConfirmEmailVerificationUnknownUser(t *testing.T) {
	ctx := context.Background()
	engine := newTestEngine(t, newMockStore(), &mockNotifier{})

	_, err := engine.ConfirmEmailVerification(ctx, "ghost@example.com", "123456")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestConfirmEmailVerificationAlreadyVerified(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	engine := newTestEngine(t, st, &mockNotifier{})

	st.put(UserRecord{
		ID:            "u1",
		Name:          "Alice",
		Email:         "alice@example.com",
		EmailVerified: true,
	})

	_, err := engine.ConfirmEmailVerification(ctx, "alice@example.com", "123456")
	if !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("expected ErrAlreadyVerified, got %v", err)
	}
}

func TestConfirmEmailVerificationWrongCode(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	engine := newTestEngine(t, st, &mockNotifier{})

	st.put(UserRecord{
		ID:                  "u1",
		Email:               "alice@example.com",
		VerificationCode:    "123456",
		VerificationExpires: time.Now().Add(time.Hour),
	})

	_, err := engine.ConfirmEmailVerification(ctx, "alice@example.com", "654321")
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}

	// The failed attempt must not consume the code.
	if got := st.get("u1").VerificationCode; got != "123456" {
		t.Fatalf("code consumed by failed attempt, stored = %q", got)
	}
}

func TestConfirmEmailVerificationExpiredCode(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	engine := newTestEngine(t, st, &mockNotifier{})

	st.put(UserRecord{
		ID:                  "u1",
		Email:               "alice@example.com",
		VerificationCode:    "123456",
		VerificationExpires: time.Now().Add(-time.Minute),
	})

	// The right code after expiry still fails, and expiry is only reported
	// for a matching code.
	_, err := engine.ConfirmEmailVerification(ctx, "alice@example.com", "123456")
	if !errors.Is(err, ErrCodeExpired) {
		t.Fatalf("expected ErrCodeExpired, got %v", err)
	}
	_, err = engine.ConfirmEmailVerification(ctx, "alice@example.com", "000000")
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("wrong code on expired record: expected ErrCodeInvalid, got %v", err)
	}
}

func TestConfirmEmailVerificationSuccessClearsCode(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	engine := newTestEngine(t, st, &mockNotifier{})

	st.put(UserRecord{
		ID:                  "u1",
		Name:                "Alice",
		Email:               "alice@example.com",
		VerificationCode:    "123456",
		VerificationExpires: time.Now().Add(time.Hour),
	})

	user, err := engine.ConfirmEmailVerification(ctx, "alice@example.com", "123456")
	if err != nil {
		t.Fatalf("ConfirmEmailVerification failed: %v", err)
	}
	if !user.EmailVerified {
		t.Fatal("expected emailVerified=true")
	}

	stored := st.get("u1")
	if !stored.EmailVerified {
		t.Fatal("store not marked verified")
	}
	if stored.VerificationCode != "" || !stored.VerificationExpires.IsZero() {
		t.Fatalf("verification pair not cleared: %+v", stored)
	}

	// Second confirmation is rejected, not a silent no-op.
	if _, err := engine.ConfirmEmailVerification(ctx, "alice@example.com", "123456"); !errors.Is(err, ErrAlreadyVerified) {
		t.Fatalf("replay: expected ErrAlreadyVerified, got %v", err)
	}
}

func TestConfirmEmailVerificationNoOutstandingCode(t *testing.T) {
	ctx := context.Background()
	st := newMockStore()
	engine := newTestEngine(t, st, &mockNotifier{})

	// Unverified account with no code pair at all.
	st.put(UserRecord{
		ID:    "u1",
		Email: "alice@example.com",
	})

	_, err := engine.ConfirmEmailVerification(ctx, "alice@example.com", "123456")
	if !errors.Is(err, ErrCodeInvalid) {
		t.Fatalf("expected ErrCodeInvalid, got %v", err)
	}
}
