// Package facegate provides a two-factor authentication engine combining a
// password check with a facial feature-vector comparison, issuing JWT session
// tokens backed by Redis session state.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build]. The engine holds no conversation state between the two
// login steps — step 2 re-validates the password, so any worker may serve
// either request.
//
// # Architecture boundaries
//
// facegate is the public surface. It exposes [Engine], [Builder], [Config],
// and value types (AuthResult, PublicIdentity, MetricsSnapshot, etc.).
// Internal coordination — rate limiting and audit dispatch — lives under
// internal/ and is never exported. Credential persistence is injected through
// [CredentialStore]; the credstore subpackage ships a Postgres and an
// in-memory implementation.
//
// # What this package must NOT do
//
//   - Capture camera samples or run a feature extractor. Callers supply
//     128-dimension vectors; the engine only validates shape and distance.
//   - Expose password hashes or stored feature vectors through any result
//     type.
//   - Issue a session token for any authentication score below 1.0.
//
// # Scoring contract
//
// Each factor contributes a configured weight (0.5 password, 0.5 biometric by
// default). A token is minted only when the combined score reaches
// [ScoringConfig.RequiredScore]; partial scores are surfaced to callers for
// UX purposes but never authenticate.
package facegate
