package authgate

import (
	"context"
	"time"
)

// UserRecord is the full account record exchanged with a [UserStore].
// It carries the credential hash and both one-time-code pairs.
//
// A code field and its expiry are always both unset or both set: an empty
// code string pairs with a zero expiry. EmailVerified flips to true exactly
// once and never reverts; once it is true the verification pair is cleared.
type UserRecord struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string

	EmailVerified       bool
	VerificationCode    string
	VerificationExpires time.Time

	ResetCode    string
	ResetExpires time.Time

	CreatedAt time.Time
}

// SanitizedUser is a user record with the password hash and any outstanding
// codes stripped, safe to transmit to clients.
type SanitizedUser struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	EmailVerified bool      `json:"emailVerified"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Sanitized strips secrets from the record.
func (u UserRecord) Sanitized() SanitizedUser {
	return SanitizedUser{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		EmailVerified: u.EmailVerified,
		CreatedAt:     u.CreatedAt,
	}
}

// UserStore is the interface that callers must implement to integrate
// authgate with their user database. It is a point-lookup record store keyed
// by email and by id; email uniqueness is enforced at the store.
//
// Implementations return [ErrUserNotFound] for missing records and
// [ErrEmailTaken] for duplicate emails. Any other error is treated as a
// dependency failure by the Engine.
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (UserRecord, error)
	GetByID(ctx context.Context, id string) (UserRecord, error)

	// Create persists a new record, failing with ErrEmailTaken when a record
	// with the same email already exists.
	Create(ctx context.Context, record UserRecord) error

	// Delete removes a record. Deleting a missing record is not an error.
	Delete(ctx context.Context, id string) error

	// MarkVerified sets EmailVerified and clears the verification pair in one
	// update.
	MarkVerified(ctx context.Context, id string) error

	// SetResetCode writes the reset pair, overwriting any outstanding pair.
	SetResetCode(ctx context.Context, id, code string, expires time.Time) error

	// UpdatePassword writes a new credential hash and clears the reset pair
	// in one update.
	UpdatePassword(ctx context.Context, id, passwordHash string) error
}

// Notifier delivers one-time codes out of band. Implementations are
// fire-and-forget from the Engine's point of view: a returned error is
// surfaced to the caller as a terminal failure for that request, and no
// retry is attempted.
type Notifier interface {
	SendVerificationCode(ctx context.Context, to, name, code string) error
	SendResetCode(ctx context.Context, to, name, code string) error
}
