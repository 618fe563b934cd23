// Package session provides Redis-backed persistence for the current
// session (token + user pair) and the registered-users directory.
//
// # Storage layout
//
// Three independent keys, optionally prefixed:
//
//	auth_token       — the raw session token string
//	auth_user        — the current user, JSON-encoded
//	registered_users — JSON array of users created through Register
//
// The token/user pair is written and cleared atomically: a reader never
// observes one key without the other. Directory appends go through an
// optimistic WATCH transaction.
//
// # Architecture boundaries
//
// This package owns Redis operations and nothing else. It does not
// interpret tokens, derive permissions, or decide whether a stored session
// is still valid — the root package does.
//
// # What this package must NOT do
//
//   - Import authkit, token, or channel (no upward imports).
//   - Surface deserialization failures: corrupt state reads as absent.
package session
