// Package authkit is the client-side authentication and session subsystem
// of the Coursia learning platform: token issuance and validation,
// Redis-persisted sessions that survive process restarts, a simulated
// federated sign-in handshake against two providers, and the orchestrating
// [Service] with register/login/logout/current-user operations and
// role-derived permissions.
//
// # Architecture boundaries
//
// authkit is the public surface. It exposes [Service], [Builder], [Config],
// the error sentinels, and value types. Token encoding lives in token/,
// persistence in session/, the handshake protocol in channel/, and the
// domain model in account/; none of them import this package back.
//
// # What this package must NOT do
//
//   - Render anything: the provider chooser surface is the caller's
//     concern, reached only through [channel.Opener].
//   - Verify credentials against a stored hash — registered users carry
//     none; see [Service.Login].
//   - Expose Redis clients or storage keys in its public API.
package authkit
