// Package rate provides the Redis-backed request limiter guarding the public
// authentication entry points.
//
// # Window semantics
//
// Fixed-window counters: INCR + conditional EXPIRE on first hit, keyed by
// client identity (<prefix>:<client_key>). A marginal overcount under
// concurrent load from one client is acceptable; the limit is a soft
// condition, not a correctness invariant.
//
// # Failure policy
//
// The limiter fails OPEN: any Redis failure allows the request rather than
// blocking legitimate traffic. Availability over strictness.
//
// # What this package must NOT do
//
//   - Decide which operations are rate limited (the Engine does).
//   - Be imported outside the facegate module.
package rate
