// Package token mints and parses the signed session tokens issued by the
// engine.
//
// # Components
//
//   - [Manager] — stateless signer/verifier over golang-jwt (Ed25519 or
//     HS256).
//   - [Claims] — subject id, username, email plus registered claims.
//
// # Architecture boundaries
//
// This package owns cryptographic token validity only. Whether a token is
// currently *live* is decided by the session store entry — a parsed token is
// necessary but not sufficient for authorization.
package token
