package analysis

// ComparisonMetric relates a current session value to the historical average.
type ComparisonMetric struct {
	Current       int     `json:"current"`
	HistoricalAvg float64 `json:"historical_avg"`
	VsAvg         float64 `json:"vs_avg"`
}

// HistoricalComparison relates the current session to prior ones.
type HistoricalComparison struct {
	Comparison     string            `json:"comparison,omitempty"`
	RepCount       *ComparisonMetric `json:"rep_count,omitempty"`
	CriticalIssues *ComparisonMetric `json:"critical_issues,omitempty"`
}

// CompareToHistory relates the current session's rep count and high severity
// count to the average of prior sessions. The history is expected newest
// first, so element zero (the current session) is excluded from the average.
func CompareToHistory(current Session, history []Session) HistoricalComparison {
	if len(history) < 2 {
		return HistoricalComparison{Comparison: "insufficient_data"}
	}

	priorSessions := history[1:]

	repCountsSum := 0
	flagsSum := 0
	for _, session := range priorSessions {
		repCountsSum += session.RepCount
		flagsSum += countHighSeverity(session)
	}
	avgReps := float64(repCountsSum) / float64(len(priorSessions))
	avgFlags := float64(flagsSum) / float64(len(priorSessions))

	currentFlags := countHighSeverity(current)

	return HistoricalComparison{
		RepCount: &ComparisonMetric{
			Current:       current.RepCount,
			HistoricalAvg: round1(avgReps),
			VsAvg:         round1(float64(current.RepCount) - avgReps),
		},
		CriticalIssues: &ComparisonMetric{
			Current:       currentFlags,
			HistoricalAvg: round1(avgFlags),
			VsAvg:         round1(float64(currentFlags) - avgFlags),
		},
	}
}

// countHighSeverity counts high severity results across all checks present
// on a session's reps, not just the canonical ones.
func countHighSeverity(session Session) int {
	count := 0
	for _, rep := range session.Reps {
		for _, check := range rep.Checks {
			if check.Severity == SeverityHigh {
				count++
			}
		}
	}
	return count
}
