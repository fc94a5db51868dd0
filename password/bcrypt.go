package password

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost factor used when none is configured.
const DefaultCost = 10

// Bcrypt defines a public type used by authgate APIs.
//
// Bcrypt instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Bcrypt struct {
	cost int
}

// NewBcrypt describes the newbcrypt operation and its observable behavior.
//
// A zero cost selects [DefaultCost]. Costs outside the range bcrypt accepts
// are rejected at construction rather than at first use.
func NewBcrypt(cost int) (*Bcrypt, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		return nil, errors.New("bcrypt cost out of range")
	}

	return &Bcrypt{cost: cost}, nil
}

// Hash returns the salted bcrypt hash of password.
// Password bytes are used exactly as provided (no Unicode normalization).
func (b *Bcrypt) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. All failure
// modes, including a malformed hash, read as a mismatch.
func (b *Bcrypt) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
