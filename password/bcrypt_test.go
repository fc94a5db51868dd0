package password

import (
	"strings"
	"testing"
)

func TestNewBcryptCostValidation(t *testing.T) {
	if _, err := NewBcrypt(3); err == nil {
		t.Fatal("expected cost below bcrypt.MinCost to be rejected")
	}
	if _, err := NewBcrypt(32); err == nil {
		t.Fatal("expected cost above bcrypt.MaxCost to be rejected")
	}

	b, err := NewBcrypt(0)
	if err != nil {
		t.Fatalf("NewBcrypt(0) failed: %v", err)
	}
	if b.cost != DefaultCost {
		t.Fatalf("zero cost selected %d, want DefaultCost", b.cost)
	}
}

func TestHashAndVerify(t *testing.T) {
	b, err := NewBcrypt(4)
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	hash, err := b.Hash("correct-horse")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if !strings.HasPrefix(hash, "$2") {
		t.Fatalf("not a bcrypt hash: %q", hash)
	}

	if !b.Verify("correct-horse", hash) {
		t.Fatal("correct password rejected")
	}
	if b.Verify("wrong-horse", hash) {
		t.Fatal("wrong password accepted")
	}
	if b.Verify("correct-horse", "not-a-hash") {
		t.Fatal("malformed hash accepted")
	}
	if b.Verify("correct-horse", "") {
		t.Fatal("empty hash accepted")
	}
}

func TestHashIsSalted(t *testing.T) {
	b, err := NewBcrypt(4)
	if err != nil {
		t.Fatalf("NewBcrypt failed: %v", err)
	}

	first, err := b.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	second, err := b.Hash("same-password")
	if err != nil {
		t.Fatalf("Hash failed: %v", err)
	}
	if first == second {
		t.Fatal("two hashes of the same password are identical; salt missing")
	}
}
