package facegate

// scoreFactors combines independent factor results into a single
// authentication score. Failed or absent factors contribute zero; no factor
// can contribute more than its configured weight. Total and deterministic —
// no error cases.
func scoreFactors(cfg ScoringConfig, factors ...FactorResult) float64 {
	score := 0.0
	for _, f := range factors {
		if !f.Passed {
			continue
		}
		switch f.Kind {
		case FactorPassword:
			score += cfg.PasswordWeight
		case FactorBiometric:
			score += cfg.BiometricWeight
		}
	}
	return score
}

// isAuthenticated reports whether the score meets the all-or-nothing bar.
// Partial credit never authenticates, even though intermediate scores are
// returned to clients.
func isAuthenticated(cfg ScoringConfig, score float64) bool {
	return score >= cfg.RequiredScore
}
