// Package httpapi is the JSON edge of the authentication service: one
// operation per endpoint under /api/auth, request decoding, and the mapping
// from the engine's error taxonomy onto HTTP status codes. Unexpected
// internal failures are reported as a generic 500 without leaking details.
package httpapi
