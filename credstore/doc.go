// Package credstore provides [facegate.CredentialStore] implementations.
//
//   - [Postgres] — production store over database/sql with the pgx driver.
//     Feature vectors are stored as little-endian float32 BYTEA.
//   - [Memory] — process-local store for demos and tests.
//
// Schema management is the deployment's responsibility; [Postgres.EnsureTable]
// creates the users table for development setups only.
package credstore
