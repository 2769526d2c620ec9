package facegate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Register describes the register operation and its observable behavior.
//
// Register may return an error when input validation, dependency calls, or security checks fail.
// Register does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (e *Engine) Register(ctx context.Context, req RegisterRequest) (*PublicIdentity, error) {
	if e == nil || e.credentials == nil || e.passwordHash == nil {
		return nil, ErrEngineNotReady
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Username, 0, ErrInvalidInput, func() map[string]string {
			return map[string]string{"reason": "missing_fields"}
		})
		return nil, fmt.Errorf("%w: username, email and password are required", ErrInvalidInput)
	}
	if err := e.comparator.Validate(req.FaceVector); err != nil {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Username, 0, ErrInvalidInput, func() map[string]string {
			return map[string]string{
				"reason":        "bad_face_vector",
				"vector_length": fmt.Sprintf("%d", len(req.FaceVector)),
			}
		})
		return nil, fmt.Errorf("%w: face vector must hold %d elements", ErrInvalidInput, e.config.Biometric.Dimensions)
	}

	if err := e.rateLimiter.Check(ctx, e.rateKey(ctx, req.Username)); err != nil {
		e.metricInc(MetricRegisterRateLimited)
		e.emitAudit(ctx, auditEventRegisterRateLimited, false, "", req.Username, 0, ErrRateLimited, nil)
		return nil, ErrRateLimited
	}

	if _, err := e.credentials.FindByUsername(ctx, req.Username); err == nil {
		e.metricInc(MetricRegisterDuplicate)
		e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", req.Username, 0, ErrAccountExists, nil)
		return nil, ErrAccountExists
	} else if !errors.Is(err, ErrIdentityNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	hash, err := e.passwordHash.Hash(req.Password)
	if err != nil {
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Username, 0, ErrInvalidInput, func() map[string]string {
			return map[string]string{"reason": "password_policy"}
		})
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	created, err := e.credentials.Create(ctx, CreateIdentityInput{
		ID:           uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FaceVector:   req.FaceVector,
	})
	if err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			e.metricInc(MetricRegisterDuplicate)
			e.emitAudit(ctx, auditEventRegisterDuplicate, false, "", req.Username, 0, ErrAccountExists, nil)
			return nil, ErrAccountExists
		}
		e.emitAudit(ctx, auditEventRegisterFailure, false, "", req.Username, 0, ErrStoreUnavailable, nil)
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegisterSuccess, true, created.ID, created.Username, 0, nil, nil)

	public := created.PublicIdentity()
	return &public, nil
}

// rateKey prefers the caller's IP and falls back to the submitted username
// so unauthenticated abuse is still throttled when no IP is attached.
func (e *Engine) rateKey(ctx context.Context, username string) string {
	if ip := clientIPFromContext(ctx); ip != "" {
		return ip
	}
	return username
}
