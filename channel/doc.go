// Package channel drives one federated sign-in handshake: it opens an
// external authentication surface (the popup analogue), waits for a single
// inbound selection message, watches for the user closing the surface, and
// guarantees that exactly one outcome is produced and every listener and
// poller is torn down afterwards.
//
// # Protocol
//
// A [Handshake] moves through
//
//	Idle → Opening → AwaitingResult → {Resolved, Cancelled, Blocked} → Closed
//
// Two triggers race while awaiting the result: an inbound [Message] carrying
// the chosen identity, and a low-frequency poll observing that the surface
// was closed. Whichever fires first wins; the loser becomes a no-op. The
// guard is a single resolved flag under a mutex, and teardown is idempotent.
//
// # Architecture boundaries
//
// The package owns only transient handshake state. How a surface is created
// is the caller's concern, behind [Opener]; the two built-in providers are
// plain [ProviderSpec] data, not separate code paths.
//
// # What this package must NOT do
//
//   - Import authkit, session, or token (no upward imports).
//   - Perform network calls; chooser URLs are constructed, never fetched.
//   - Leak a goroutine past Run returning.
package channel
