package analysis

// CheckCounts summarizes one check across all reps of a session.
type CheckCounts struct {
	OK             int     `json:"ok"`
	Watch          int     `json:"watch"`
	Flag           int     `json:"flag"`
	FlagPercentage float64 `json:"flag_percentage"`
}

// SessionSummary is the ok/watch/flag breakdown of a single session.
type SessionSummary struct {
	RepCount      int                    `json:"rep_count"`
	ChecksSummary map[string]CheckCounts `json:"checks_summary"`
}

// SummarizeSession aggregates per-rep check severities into ok/watch/flag
// counts for each canonical check. A rep missing a check counts as ok.
func SummarizeSession(session Session) SessionSummary {
	repCount := len(session.Reps)
	summary := SessionSummary{
		RepCount:      repCount,
		ChecksSummary: make(map[string]CheckCounts),
	}
	if repCount == 0 {
		return summary
	}

	for _, checkName := range CheckNames {
		var counts CheckCounts
		for _, rep := range session.Reps {
			switch rep.CheckSeverity(checkName) {
			case SeverityHigh:
				counts.Flag++
			case SeverityModerate:
				counts.Watch++
			default:
				counts.OK++
			}
		}
		counts.FlagPercentage = round1(float64(counts.Flag) / float64(repCount) * 100)
		summary.ChecksSummary[checkName] = counts
	}

	return summary
}
