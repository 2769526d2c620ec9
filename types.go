package facegate

import (
	"context"
	"io"
	"time"

	internalaudit "github.com/facegate/facegate/internal/audit"
)

// FactorKind identifies one independent piece of authentication evidence.
type FactorKind uint8

const (
	// FactorPassword is an exported constant or variable used by the authentication engine.
	FactorPassword FactorKind = iota
	// FactorBiometric is an exported constant or variable used by the authentication engine.
	FactorBiometric
)

// FactorResult is the per-request outcome of a single factor check. It is
// ephemeral and never persisted.
type FactorResult struct {
	Kind   FactorKind
	Passed bool
}

// Identity is the full credential record owned by the [CredentialStore].
// PasswordHash and FaceVector never leave the engine; callers receive
// [PublicIdentity] instead.
type Identity struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FaceVector   []float32
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// PublicIdentity is the caller-visible projection of an [Identity].
func (id *Identity) PublicIdentity() PublicIdentity {
	return PublicIdentity{
		ID:       id.ID,
		Username: id.Username,
		Email:    id.Email,
	}
}

// PublicIdentity carries the identity fields safe to return to clients.
type PublicIdentity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResult is returned by the login operations. Score is the weighted sum
// of passed factors; Token is non-empty only when Score reaches the
// configured required score.
type AuthResult struct {
	Success bool    `json:"success"`
	Score   float64 `json:"score"`
	Token   string  `json:"token,omitempty"`
	Message string  `json:"message"`
}

// RegisterRequest is the input for [Engine.Register]. FaceVector must hold
// exactly the configured number of dimensions (128 by default).
type RegisterRequest struct {
	Username   string
	Email      string
	Password   string
	FaceVector []float32
}

// LoginRequest is the input for [Engine.Login]. A nil FaceVector requests
// the password-only first step; a populated one runs the full two-factor
// check.
type LoginRequest struct {
	Username   string
	Password   string
	FaceVector []float32
}

// CreateIdentityInput is the input for [CredentialStore.Create]. The engine
// assigns ID and hashes the password before the store sees the record.
type CreateIdentityInput struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	FaceVector   []float32
}

// CredentialStore is the interface callers implement (or take from the
// credstore subpackage) to persist identities. Implementations must return
// [ErrIdentityNotFound] for missing records and [ErrDuplicateUsername] for
// username collisions; any other error is treated as a backend failure.
type CredentialStore interface {
	FindByUsername(ctx context.Context, username string) (*Identity, error)
	FindByID(ctx context.Context, id string) (*Identity, error)
	Create(ctx context.Context, input CreateIdentityInput) (*Identity, error)
	UpdateFaceVector(ctx context.Context, id string, vector []float32) (*Identity, error)
	Delete(ctx context.Context, id string) error
}

// AuditEvent is a structured audit record emitted by the engine.
type AuditEvent = internalaudit.Event

// AuditSink receives [AuditEvent] values from the engine’s audit dispatcher.
type AuditSink = internalaudit.Sink

// NoOpSink is an [AuditSink] that silently discards all events.
type NoOpSink = internalaudit.NoOpSink

// ChannelSink is a buffered channel-based [AuditSink].
type ChannelSink = internalaudit.ChannelSink

// JSONWriterSink is an [AuditSink] that writes JSON-encoded events to an
// [io.Writer].
type JSONWriterSink = internalaudit.JSONWriterSink

// NewChannelSink creates a [ChannelSink] with the given buffer capacity.
func NewChannelSink(buffer int) *ChannelSink {
	return internalaudit.NewChannelSink(buffer)
}

// NewJSONWriterSink creates a [JSONWriterSink] that writes to w.
func NewJSONWriterSink(w io.Writer) *JSONWriterSink {
	return internalaudit.NewJSONWriterSink(w)
}
