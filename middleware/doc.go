// Package middleware exposes an HTTP adapter for stateless session token
// verification on top of the token manager.
//
// [RequireToken] reads the Authorization header, verifies the bearer token,
// and injects the decoded claims into the request context.
//
// # What this package must NOT do
//
//   - Create tokens (delegates to token.Manager).
//   - Access Redis.
//   - Make authorization decisions beyond pass/reject.
package middleware
