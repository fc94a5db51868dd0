package authgate

import "time"

// Config defines a public type used by authgate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Verification VerificationConfig
	Reset        ResetConfig
	Password     PasswordConfig
	Token        TokenConfig
}

/*
====================================
VERIFICATION CONFIG
====================================
*/

// VerificationConfig controls the email-verification code lifecycle.
type VerificationConfig struct {
	CodeTTL time.Duration
}

// ResetConfig controls the password-reset code lifecycle.
type ResetConfig struct {
	CodeTTL time.Duration
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig controls credential hashing and the reset password policy.
type PasswordConfig struct {
	// Cost is the bcrypt cost factor. Zero selects the default (10).
	Cost int
	// MinLength is the minimum accepted length for a reset password, in bytes.
	MinLength int
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig controls session-token issuance. Secret is required: there is
// no development fallback, and [Builder.Build] fails when it is empty.
type TokenConfig struct {
	Secret []byte
	TTL    time.Duration
	Issuer string
}

// DefaultConfig returns the configuration the system was specified with:
// 24h verification codes, 15m reset codes, bcrypt cost 10, 1h tokens.
func DefaultConfig() Config {
	return Config{
		Verification: VerificationConfig{
			CodeTTL: 24 * time.Hour,
		},
		Reset: ResetConfig{
			CodeTTL: 15 * time.Minute,
		},
		Password: PasswordConfig{
			Cost:      10,
			MinLength: 6,
		},
		Token: TokenConfig{
			TTL: time.Hour,
		},
	}
}
