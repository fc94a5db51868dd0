// Package store provides implementations of authgate.UserStore: a
// Redis-backed store for deployments and an in-memory store for tests and
// development. Both enforce email uniqueness and apply field-level updates,
// keeping a code field and its expiry in lockstep.
package store
