package credstore

import (
	"context"
	"sync"
	"time"

	"github.com/facegate/facegate"
)

// Memory is an in-process [facegate.CredentialStore] for demos and tests.
type Memory struct {
	mu         sync.RWMutex
	byID       map[string]*facegate.Identity
	byUsername map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		byID:       map[string]*facegate.Identity{},
		byUsername: map[string]string{},
	}
}

func (m *Memory) FindByUsername(_ context.Context, username string) (*facegate.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byUsername[username]
	if !ok {
		return nil, facegate.ErrIdentityNotFound
	}
	return cloneIdentity(m.byID[id]), nil
}

func (m *Memory) FindByID(_ context.Context, id string) (*facegate.Identity, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	identity, ok := m.byID[id]
	if !ok {
		return nil, facegate.ErrIdentityNotFound
	}
	return cloneIdentity(identity), nil
}

func (m *Memory) Create(_ context.Context, input facegate.CreateIdentityInput) (*facegate.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byUsername[input.Username]; exists {
		return nil, facegate.ErrDuplicateUsername
	}

	now := time.Now()
	identity := &facegate.Identity{
		ID:           input.ID,
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		FaceVector:   cloneVector(input.FaceVector),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	m.byID[identity.ID] = identity
	m.byUsername[identity.Username] = identity.ID
	return cloneIdentity(identity), nil
}

func (m *Memory) UpdateFaceVector(_ context.Context, id string, vector []float32) (*facegate.Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.byID[id]
	if !ok {
		return nil, facegate.ErrIdentityNotFound
	}

	identity.FaceVector = cloneVector(vector)
	identity.UpdatedAt = time.Now()
	return cloneIdentity(identity), nil
}

func (m *Memory) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	identity, ok := m.byID[id]
	if !ok {
		return nil
	}
	delete(m.byUsername, identity.Username)
	delete(m.byID, id)
	return nil
}

func cloneIdentity(src *facegate.Identity) *facegate.Identity {
	out := *src
	out.FaceVector = cloneVector(src.FaceVector)
	return &out
}

func cloneVector(v []float32) []float32 {
	if v == nil {
		return nil
	}
	out := make([]float32, len(v))
	copy(out, v)
	return out
}
