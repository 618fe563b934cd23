// Package account defines the user model shared by authkit and its
// sub-packages: roles, provider origins, profile and subscription records,
// and the role-derived permission set.
//
// # Architecture boundaries
//
// This package owns the [User] value and the permission derivation rules.
// It performs no I/O and holds no state. Token encoding lives in token/,
// persistence in session/, orchestration in the root package.
//
// # What this package must NOT do
//
//   - Import authkit, token, session, or channel (no upward imports).
//   - Store or compare credentials.
//   - Allow permissions to be set independently of the role.
package account
