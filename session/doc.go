// Package session tracks which issued tokens are currently valid, one Redis
// key per subject.
//
// # Key layout
//
// Each subject has exactly one entry, <prefix>:<subject_id> = <token>, written
// with the token's TTL. Issuing a new token overwrites the key, which is what
// invalidates the previous token — no append, no set of sessions.
//
// # Architecture boundaries
//
// This package owns the Redis session operations. It does NOT interpret the
// token value it stores or enforce authentication policy — those
// responsibilities belong to the Engine. The store entry, not a decoded
// expiry claim, is the single source of truth for current validity.
//
// # What this package must NOT do
//
//   - Import facegate or token (no upward imports).
//   - Parse or verify token signatures.
package session
