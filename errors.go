package authgate

import "errors"

var (
	// ErrInvalidInput is an exported constant or variable used by the authentication engine.
	ErrInvalidInput = errors.New("missing or invalid input")
	// ErrUserNotFound is an exported constant or variable used by the authentication engine.
	ErrUserNotFound = errors.New("user not found")
	// ErrEmailTaken is an exported constant or variable used by the authentication engine.
	ErrEmailTaken = errors.New("account with this email already exists")
	// ErrInvalidCredentials is an exported constant or variable used by the authentication engine.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountUnverified is an exported constant or variable used by the authentication engine.
	ErrAccountUnverified = errors.New("email address not verified")
	// ErrAlreadyVerified is an exported constant or variable used by the authentication engine.
	ErrAlreadyVerified = errors.New("email already verified")
	// ErrCodeInvalid is an exported constant or variable used by the authentication engine.
	ErrCodeInvalid = errors.New("invalid verification code")
	// ErrCodeExpired is an exported constant or variable used by the authentication engine.
	ErrCodeExpired = errors.New("verification code expired")
	// ErrPasswordPolicy is an exported constant or variable used by the authentication engine.
	ErrPasswordPolicy = errors.New("password policy violation")
	// ErrNotifyFailed is an exported constant or variable used by the authentication engine.
	ErrNotifyFailed = errors.New("notification dispatch failed")
	// ErrStoreUnavailable is an exported constant or variable used by the authentication engine.
	ErrStoreUnavailable = errors.New("user store unavailable")
	// ErrTokenInvalid is an exported constant or variable used by the authentication engine.
	ErrTokenInvalid = errors.New("invalid session token")
	// ErrEngineNotReady is an exported constant or variable used by the authentication engine.
	ErrEngineNotReady = errors.New("engine not initialized")
)
