package facegate

import "testing"

func equalWeights() ScoringConfig {
	return ScoringConfig{
		PasswordWeight:  0.5,
		BiometricWeight: 0.5,
		RequiredScore:   1.0,
	}
}

func TestScoreFactors(t *testing.T) {
	cfg := equalWeights()

	cases := []struct {
		name    string
		factors []FactorResult
		want    float64
	}{
		{"no factors", nil, 0},
		{"password only", []FactorResult{{FactorPassword, true}}, 0.5},
		{"biometric only", []FactorResult{{FactorBiometric, true}}, 0.5},
		{"both passed", []FactorResult{{FactorPassword, true}, {FactorBiometric, true}}, 1.0},
		{"both failed", []FactorResult{{FactorPassword, false}, {FactorBiometric, false}}, 0},
		{"password passed biometric failed", []FactorResult{{FactorPassword, true}, {FactorBiometric, false}}, 0.5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoreFactors(cfg, tc.factors...); got != tc.want {
				t.Fatalf("expected %f, got %f", tc.want, got)
			}
		})
	}
}

func TestIsAuthenticatedAllOrNothing(t *testing.T) {
	cfg := equalWeights()

	if isAuthenticated(cfg, 0) {
		t.Fatal("expected score 0 to not authenticate")
	}
	if isAuthenticated(cfg, 0.5) {
		t.Fatal("expected partial score to not authenticate")
	}
	if !isAuthenticated(cfg, 1.0) {
		t.Fatal("expected full score to authenticate")
	}
}

func TestScoreFactorsCustomWeights(t *testing.T) {
	cfg := ScoringConfig{
		PasswordWeight:  0.3,
		BiometricWeight: 0.7,
		RequiredScore:   1.0,
	}

	score := scoreFactors(cfg, FactorResult{FactorPassword, true}, FactorResult{FactorBiometric, true})
	if score != 1.0 {
		t.Fatalf("expected combined weight 1.0, got %f", score)
	}

	score = scoreFactors(cfg, FactorResult{FactorBiometric, true})
	if score != 0.7 {
		t.Fatalf("expected biometric weight 0.7, got %f", score)
	}
	if isAuthenticated(cfg, score) {
		t.Fatal("expected 0.7 to fall short of the required score")
	}
}
