// Package jwt issues and verifies the compact HMAC-SHA256 session tokens
// used as the sole session credential. Tokens carry the user id and email
// and a fixed absolute lifetime; there is no server-side session table, so a
// token stays valid until it expires naturally.
package jwt
