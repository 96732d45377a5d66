package analysis

// ConsistencyResult describes how uniform the reps were across a session.
type ConsistencyResult struct {
	ConsistencyScore float64            `json:"consistency_score"`
	Interpretation   string             `json:"interpretation"`
	CheckVariances   map[string]float64 `json:"check_variances,omitempty"`
}

// Consistency measures rep-to-rep variability per check. Checks whose severity
// never changed across the session contribute no variance.
func Consistency(session Session) ConsistencyResult {
	if len(session.Reps) < 2 {
		return ConsistencyResult{
			ConsistencyScore: 1.0,
			Interpretation:   "Insufficient data",
		}
	}

	checkVariances := map[string]float64{}
	variancesSum := 0.0
	for _, checkName := range CheckNames {
		weights := make([]float64, 0, len(session.Reps))
		varies := false
		for _, rep := range session.Reps {
			w := float64(rep.CheckSeverity(checkName).Weight())
			if len(weights) > 0 && w != weights[0] {
				varies = true
			}
			weights = append(weights, w)
		}
		if !varies {
			continue
		}
		stdDev := sampleStdDev(weights)
		checkVariances[checkName] = stdDev
		variancesSum += stdDev
	}

	avgVariance := 0.0
	if len(checkVariances) > 0 {
		avgVariance = variancesSum / float64(len(checkVariances))
	}

	// variance above 2.5 pins the score at zero
	score := 1 - avgVariance/2.5
	if score < 0 {
		score = 0
	}

	var interpretation string
	switch {
	case score > 0.8:
		interpretation = "Excellent"
	case score > 0.6:
		interpretation = "Good"
	case score > 0.4:
		interpretation = "Fair"
	default:
		interpretation = "Needs improvement"
	}

	rounded := map[string]float64{}
	for checkName, v := range checkVariances {
		rounded[checkName] = round2(v)
	}

	return ConsistencyResult{
		ConsistencyScore: round2(score),
		Interpretation:   interpretation,
		CheckVariances:   rounded,
	}
}
