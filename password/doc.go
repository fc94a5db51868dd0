// Package password hashes and verifies user credentials with bcrypt.
// Hashing is the slow path on purpose; Verify never reports why a comparison
// failed.
package password
