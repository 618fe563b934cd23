// Package token issues and validates the self-contained session tokens used
// by authkit. Tokens are HMAC-SHA256 signed JWTs: three dot-separated base64
// segments carrying the subject ID, email, role, and an absolute expiry.
//
// # Architecture boundaries
//
// This package owns token encoding and verification only. It never touches
// Redis, never consults the session store, and holds no per-user state.
//
// # What this package must NOT do
//
//   - Import authkit or session (no upward imports).
//   - Panic on malformed input: Validate is total over all strings.
package token
