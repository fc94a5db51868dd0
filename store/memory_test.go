package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/authgate/authgate"
)

func TestMemoryStoreSemanticsMatchRedis(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	if err := s.Create(ctx, sampleRecord()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	dup := sampleRecord()
	dup.ID = "u2"
	if err := s.Create(ctx, dup); !errors.Is(err, authgate.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	if _, err := s.GetByEmail(ctx, "ghost@example.com"); !errors.Is(err, authgate.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := s.MarkVerified(ctx, "u1"); err != nil {
		t.Fatalf("MarkVerified failed: %v", err)
	}
	got, err := s.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if !got.EmailVerified || got.VerificationCode != "" || !got.VerificationExpires.IsZero() {
		t.Fatalf("verification pair not cleared: %+v", got)
	}

	expiry := time.Now().Add(15 * time.Minute)
	if err := s.SetResetCode(ctx, "u1", "111111", expiry); err != nil {
		t.Fatalf("SetResetCode failed: %v", err)
	}
	if err := s.UpdatePassword(ctx, "u1", "new-hash"); err != nil {
		t.Fatalf("UpdatePassword failed: %v", err)
	}
	got, err = s.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if got.PasswordHash != "new-hash" || got.ResetCode != "" || !got.ResetExpires.IsZero() {
		t.Fatalf("reset pair not cleared on password update: %+v", got)
	}

	if err := s.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := s.GetByEmail(ctx, "alice@example.com"); !errors.Is(err, authgate.ErrUserNotFound) {
		t.Fatalf("expected index gone, got %v", err)
	}
	if err := s.Delete(ctx, "ghost"); err != nil {
		t.Fatalf("Delete of missing record: %v", err)
	}
}

func TestMemoryStoreReturnsCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryUserStore()

	if err := s.Create(ctx, sampleRecord()); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	got, err := s.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	got.Name = "Mallory"

	again, err := s.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if again.Name != "Alice" {
		t.Fatalf("stored record mutated through returned copy: %q", again.Name)
	}
}
