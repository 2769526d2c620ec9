package facegate

import (
	"context"
	"errors"
	"fmt"
)

// VerifyToken checks both layers of token validity: the signature must
// parse and the session store entry for the subject must exactly equal the
// presented token. The store entry is the source of truth for liveness, so
// logout, deactivation, and token re-issue all invalidate a still
// cryptographically valid token. Returns the subject id.
func (e *Engine) VerifyToken(ctx context.Context, tokenStr string) (string, error) {
	if e == nil || e.tokenManager == nil {
		return "", ErrEngineNotReady
	}

	claims, err := e.tokenManager.Parse(tokenStr)
	if err != nil {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventVerifyFailure, false, "", "", 0, ErrTokenInvalid, func() map[string]string {
			return map[string]string{"reason": "parse_failed"}
		})
		return "", ErrTokenInvalid
	}

	match, err := e.sessionStore.Matches(ctx, claims.UID, tokenStr)
	if err != nil {
		return "", err
	}
	if !match {
		e.metricInc(MetricVerifyFailure)
		e.emitAudit(ctx, auditEventVerifyFailure, false, claims.UID, claims.Username, 0, ErrTokenInvalid, func() map[string]string {
			return map[string]string{"reason": "not_current_session"}
		})
		return "", ErrTokenInvalid
	}

	e.metricInc(MetricVerifySuccess)
	return claims.UID, nil
}

// Logout revokes the subject's session. Idempotent: revoking an absent
// session is not an error.
func (e *Engine) Logout(ctx context.Context, subjectID string) error {
	if e == nil || e.sessionStore == nil {
		return ErrEngineNotReady
	}
	if subjectID == "" {
		return fmt.Errorf("%w: subject id is required", ErrInvalidInput)
	}

	if err := e.sessionStore.Delete(ctx, subjectID); err != nil {
		return err
	}

	e.metricInc(MetricLogout)
	e.metricInc(MetricSessionInvalidated)
	e.emitAudit(ctx, auditEventLogout, true, subjectID, "", 0, nil, nil)
	return nil
}

// Deactivate validates the token, deletes the subject's identity, and
// revokes the session. Both the delete and the revoke are attempted even if
// the delete fails, so a half-deactivated account cannot keep a live
// session.
func (e *Engine) Deactivate(ctx context.Context, tokenStr string) error {
	if e == nil || e.credentials == nil {
		return ErrEngineNotReady
	}

	subjectID, err := e.VerifyToken(ctx, tokenStr)
	if err != nil {
		return err
	}

	var deleteErr error
	if err := e.credentials.Delete(ctx, subjectID); err != nil {
		deleteErr = fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	if err := e.sessionStore.Delete(ctx, subjectID); err != nil && deleteErr == nil {
		deleteErr = err
	}

	if deleteErr != nil {
		e.emitAudit(ctx, auditEventDeactivate, false, subjectID, "", 0, deleteErr, nil)
		return deleteErr
	}

	e.metricInc(MetricDeactivate)
	e.metricInc(MetricSessionInvalidated)
	e.emitAudit(ctx, auditEventDeactivate, true, subjectID, "", 0, nil, nil)
	return nil
}

// Identity resolves a token to the public identity of its subject.
func (e *Engine) Identity(ctx context.Context, tokenStr string) (*PublicIdentity, error) {
	subjectID, err := e.VerifyToken(ctx, tokenStr)
	if err != nil {
		return nil, err
	}

	identity, err := e.credentials.FindByID(ctx, subjectID)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	public := identity.PublicIdentity()
	return &public, nil
}

// UpdateFaceVector re-enrolls the authenticated subject's facial features.
func (e *Engine) UpdateFaceVector(ctx context.Context, tokenStr string, vector []float32) (*PublicIdentity, error) {
	subjectID, err := e.VerifyToken(ctx, tokenStr)
	if err != nil {
		return nil, err
	}

	if err := e.comparator.Validate(vector); err != nil {
		return nil, fmt.Errorf("%w: face vector must hold %d elements", ErrInvalidInput, e.config.Biometric.Dimensions)
	}

	identity, err := e.credentials.UpdateFaceVector(ctx, subjectID, vector)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			return nil, ErrIdentityNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	e.emitAudit(ctx, auditEventFaceEnrolled, true, subjectID, identity.Username, 0, nil, nil)

	public := identity.PublicIdentity()
	return &public, nil
}
