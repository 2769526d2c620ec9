package facegate

import (
	"errors"
	"time"
)

// Config defines a public type used by facegate APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	Token     TokenConfig
	Session   SessionConfig
	Password  PasswordConfig
	Biometric BiometricConfig
	Scoring   ScoringConfig
	RateLimit RateLimitConfig
	Audit     AuditConfig
	Metrics   MetricsConfig
}

/*
====================================
TOKEN CONFIG
====================================
*/

// TokenConfig defines a public type used by facegate APIs.
//
// TokenConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type TokenConfig struct {
	// TTL is the single source of truth for token lifetime and session TTL.
	TTL           time.Duration
	SigningMethod string // "ed25519" (default), "hs256" optional
	PrivateKey    []byte
	PublicKey     []byte
	Issuer        string
	Leeway        time.Duration
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by facegate APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
}

/*
====================================
PASSWORD CONFIG
====================================
*/

// PasswordConfig defines a public type used by facegate APIs.
//
// PasswordConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type PasswordConfig struct {
	Memory      uint32 // in KB
	Time        uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

/*
====================================
BIOMETRIC CONFIG
====================================
*/

// BiometricConfig defines a public type used by facegate APIs.
//
// BiometricConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type BiometricConfig struct {
	Dimensions int
	// MatchThreshold is the Euclidean distance below which two vectors are
	// considered the same face. Tunable; the 0.45 default has no derivation.
	MatchThreshold float64
}

/*
====================================
SCORING CONFIG
====================================
*/

// ScoringConfig defines a public type used by facegate APIs.
//
// ScoringConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ScoringConfig struct {
	PasswordWeight  float64
	BiometricWeight float64
	RequiredScore   float64
}

/*
====================================
RATE LIMIT CONFIG
====================================
*/

// RateLimitConfig defines a public type used by facegate APIs.
//
// RateLimitConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type RateLimitConfig struct {
	Enabled     bool
	MaxRequests int
	Window      time.Duration
	RedisPrefix string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by facegate APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by facegate APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the baseline configuration: 24h token TTL, 128-dim
// vectors with a 0.45 match threshold, equal 0.5 factor weights, and a
// 100-requests-per-15-minutes rate limit.
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		Token: TokenConfig{
			TTL:           24 * time.Hour,
			SigningMethod: "ed25519",
			Leeway:        30 * time.Second,
		},
		Session: SessionConfig{
			RedisPrefix: "session",
		},
		Password: PasswordConfig{
			Memory:      64 * 1024,
			Time:        3,
			Parallelism: 2,
			SaltLength:  16,
			KeyLength:   32,
		},
		Biometric: BiometricConfig{
			Dimensions:     128,
			MatchThreshold: 0.45,
		},
		Scoring: ScoringConfig{
			PasswordWeight:  0.5,
			BiometricWeight: 0.5,
			RequiredScore:   1.0,
		},
		RateLimit: RateLimitConfig{
			Enabled:     true,
			MaxRequests: 100,
			Window:      15 * time.Minute,
			RedisPrefix: "rateLimit",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation, dependency calls, or security checks fail.
func (c Config) Validate() error {
	if c.Token.TTL <= 0 {
		return errors.New("token TTL must be positive")
	}
	if c.Token.TTL > 7*24*time.Hour {
		return errors.New("token TTL must not exceed 7 days")
	}
	switch c.Token.SigningMethod {
	case "ed25519", "hs256":
	default:
		return errors.New("unsupported token signing method")
	}
	if c.Session.RedisPrefix == "" {
		return errors.New("session redis prefix must not be empty")
	}
	if c.Biometric.Dimensions <= 0 {
		return errors.New("biometric dimensions must be positive")
	}
	if c.Biometric.MatchThreshold <= 0 {
		return errors.New("biometric match threshold must be positive")
	}
	if c.Scoring.PasswordWeight < 0 || c.Scoring.BiometricWeight < 0 {
		return errors.New("factor weights must not be negative")
	}
	if c.Scoring.RequiredScore > c.Scoring.PasswordWeight+c.Scoring.BiometricWeight {
		return errors.New("required score is unreachable with configured weights")
	}
	if c.RateLimit.Enabled {
		if c.RateLimit.MaxRequests <= 0 {
			return errors.New("rate limit max requests must be positive")
		}
		if c.RateLimit.Window <= 0 {
			return errors.New("rate limit window must be positive")
		}
		if c.RateLimit.RedisPrefix == "" {
			return errors.New("rate limit redis prefix must not be empty")
		}
	}
	if c.Audit.Enabled && c.Audit.BufferSize <= 0 {
		return errors.New("audit buffer size must be positive")
	}
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.Token.PrivateKey = cloneBytes(cfg.Token.PrivateKey)
	out.Token.PublicKey = cloneBytes(cfg.Token.PublicKey)
	return out
}
