package credstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx database/sql driver

	"github.com/facegate/facegate"
	"github.com/facegate/facegate/biometric"
)

const pgUniqueViolation = "23505"

// Postgres implements [facegate.CredentialStore] over a users table.
type Postgres struct {
	db *sql.DB
}

// NewPostgres wraps an existing database handle. The caller owns the
// handle's lifecycle.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// Open connects to Postgres via the pgx driver and returns a [Postgres]
// store together with the underlying handle for lifecycle management.
func Open(dsn string) (*Postgres, *sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("open postgres: %w", err)
	}
	return NewPostgres(db), db, nil
}

// EnsureTable creates the users table if it does not exist. Development
// convenience only; production schemas are managed externally.
func (p *Postgres) EnsureTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS users (
			id TEXT PRIMARY KEY,
			username VARCHAR(50) UNIQUE NOT NULL,
			email VARCHAR(255) NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			face_features BYTEA,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		);`

	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("error creating users table: %v", err)
	}
	return nil
}

func (p *Postgres) FindByUsername(ctx context.Context, username string) (*facegate.Identity, error) {
	query := `
		SELECT id, username, email, password_hash, face_features, created_at, updated_at
		FROM users WHERE username = $1`

	return p.scanOne(p.db.QueryRowContext(ctx, query, username))
}

func (p *Postgres) FindByID(ctx context.Context, id string) (*facegate.Identity, error) {
	query := `
		SELECT id, username, email, password_hash, face_features, created_at, updated_at
		FROM users WHERE id = $1`

	return p.scanOne(p.db.QueryRowContext(ctx, query, id))
}

func (p *Postgres) Create(ctx context.Context, input facegate.CreateIdentityInput) (*facegate.Identity, error) {
	query := `
		INSERT INTO users (id, username, email, password_hash, face_features)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, username, email, password_hash, face_features, created_at, updated_at`

	var features []byte
	if input.FaceVector != nil {
		features = biometric.EncodeVector(input.FaceVector)
	}

	identity, err := p.scanOne(p.db.QueryRowContext(ctx, query,
		input.ID, input.Username, input.Email, input.PasswordHash, features))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, facegate.ErrDuplicateUsername
		}
		return nil, err
	}
	return identity, nil
}

func (p *Postgres) UpdateFaceVector(ctx context.Context, id string, vector []float32) (*facegate.Identity, error) {
	query := `
		UPDATE users
		SET face_features = $1, updated_at = CURRENT_TIMESTAMP
		WHERE id = $2
		RETURNING id, username, email, password_hash, face_features, created_at, updated_at`

	return p.scanOne(p.db.QueryRowContext(ctx, query, biometric.EncodeVector(vector), id))
}

func (p *Postgres) Delete(ctx context.Context, id string) error {
	if _, err := p.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id); err != nil {
		return fmt.Errorf("error performing sql request: %v", err)
	}
	return nil
}

func (p *Postgres) scanOne(row *sql.Row) (*facegate.Identity, error) {
	var (
		identity facegate.Identity
		features []byte
	)

	err := row.Scan(
		&identity.ID,
		&identity.Username,
		&identity.Email,
		&identity.PasswordHash,
		&features,
		&identity.CreatedAt,
		&identity.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, facegate.ErrIdentityNotFound
		}
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}

	if len(features) > 0 {
		vector, err := biometric.DecodeVector(features)
		if err != nil {
			return nil, fmt.Errorf("corrupt stored feature vector: %w", err)
		}
		identity.FaceVector = vector
	}

	return &identity, nil
}
