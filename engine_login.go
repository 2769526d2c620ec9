package facegate

import (
	"context"
	"errors"
	"fmt"

	"github.com/facegate/facegate/biometric"
)

const (
	msgInvalidCredentials = "invalid credentials"
	msgStepOnePassed      = "password verified, continue with face verification"
	msgFaceMismatch       = "face verification failed"
	msgLoginSuccess       = "login successful"
)

// LoginStep1 runs the password-only first factor. On success it returns the
// partial score and a prompt to continue with step 2 — never a token.
//
// Unknown usernames and wrong passwords produce the same score-0 result and
// message, so the response does not reveal whether the account exists.
func (e *Engine) LoginStep1(ctx context.Context, username, password string) (*AuthResult, error) {
	return e.loginInternal(ctx, username, password, nil, false)
}

// LoginStep2 runs the full two-factor check. The password is re-validated:
// no conversation state survives from step 1, so a step-2 request must carry
// the complete evidence again. A token is minted only when the combined
// score reaches the required score.
func (e *Engine) LoginStep2(ctx context.Context, username, password string, faceVector []float32) (*AuthResult, error) {
	if faceVector == nil {
		return nil, fmt.Errorf("%w: face vector is required for step 2", ErrInvalidInput)
	}
	return e.loginInternal(ctx, username, password, faceVector, true)
}

// Login is the combined endpoint: a nil FaceVector requests step-1
// semantics, a populated one runs the full check.
func (e *Engine) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	return e.loginInternal(ctx, req.Username, req.Password, req.FaceVector, req.FaceVector != nil)
}

func (e *Engine) loginInternal(ctx context.Context, username, password string, faceVector []float32, withBiometric bool) (*AuthResult, error) {
	if e == nil || e.credentials == nil || e.passwordHash == nil {
		return nil, ErrEngineNotReady
	}

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	// Shape violations are caught before any store traffic.
	if withBiometric {
		if err := e.comparator.Validate(faceVector); err != nil {
			return nil, fmt.Errorf("%w: face vector must hold %d elements", ErrInvalidInput, e.config.Biometric.Dimensions)
		}
	}

	if err := e.rateLimiter.Check(ctx, e.rateKey(ctx, username)); err != nil {
		e.metricInc(MetricLoginRateLimited)
		e.emitAudit(ctx, auditEventLoginRateLimited, false, "", username, 0, ErrRateLimited, nil)
		return nil, ErrRateLimited
	}

	identity, err := e.credentials.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, ErrIdentityNotFound) {
			// Indistinguishable from a wrong password.
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLoginFailure, false, "", username, 0, ErrInvalidCredentials, func() map[string]string {
				return map[string]string{"reason": "unknown_username"}
			})
			return failedResult(0), ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	passwordFactor := e.checkPassword(password, identity.PasswordHash)
	if !passwordFactor.Passed {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity.ID, username, 0, ErrInvalidCredentials, func() map[string]string {
			return map[string]string{"reason": "bad_password"}
		})
		return failedResult(0), ErrInvalidCredentials
	}

	if !withBiometric {
		score := scoreFactors(e.config.Scoring, passwordFactor)
		e.metricInc(MetricLoginStepOne)
		e.emitAudit(ctx, auditEventLoginStepOne, true, identity.ID, username, score, nil, nil)
		return &AuthResult{
			Success: true,
			Score:   score,
			Message: msgStepOnePassed,
		}, nil
	}

	biometricFactor, distance := e.checkFace(faceVector, identity.FaceVector)
	score := scoreFactors(e.config.Scoring, passwordFactor, biometricFactor)

	if !isAuthenticated(e.config.Scoring, score) {
		e.metricInc(MetricFaceMismatch)
		e.emitAudit(ctx, auditEventFaceMismatch, false, identity.ID, username, score, ErrFaceMismatch, func() map[string]string {
			return map[string]string{"distance": fmt.Sprintf("%.4f", distance)}
		})
		res := failedResult(score)
		res.Message = msgFaceMismatch
		return res, ErrFaceMismatch
	}

	tokenStr, err := e.tokenManager.Create(identity.ID, identity.Username, identity.Email)
	if err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity.ID, username, score, err, nil)
		return nil, err
	}

	// Overwriting the session key displaces any previously issued token.
	if err := e.sessionStore.Save(ctx, identity.ID, tokenStr, e.tokenManager.TTL()); err != nil {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLoginFailure, false, identity.ID, username, score, err, nil)
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.metricInc(MetricSessionCreated)
	e.emitAudit(ctx, auditEventLoginSuccess, true, identity.ID, username, score, nil, nil)

	return &AuthResult{
		Success: true,
		Score:   score,
		Token:   tokenStr,
		Message: msgLoginSuccess,
	}, nil
}

// checkPassword never propagates an error out of the factor check: a
// malformed stored hash fails closed as a not-passed factor.
func (e *Engine) checkPassword(plaintext, hash string) FactorResult {
	ok, err := e.passwordHash.Verify(plaintext, hash)
	if err != nil {
		ok = false
	}
	return FactorResult{Kind: FactorPassword, Passed: ok}
}

// checkFace scores an absent or mismatched stored vector as a not-passed
// factor, never as neutral. The submitted vector was shape-checked at the
// boundary.
func (e *Engine) checkFace(submitted, stored biometric.Vector) (FactorResult, float64) {
	result := FactorResult{Kind: FactorBiometric}
	if stored == nil {
		return result, 0
	}

	match, distance, err := e.comparator.Compare(submitted, stored)
	if err != nil {
		return result, 0
	}
	result.Passed = match
	return result, distance
}

func failedResult(score float64) *AuthResult {
	return &AuthResult{
		Success: false,
		Score:   score,
		Message: msgInvalidCredentials,
	}
}
