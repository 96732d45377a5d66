package analysis

import (
	"sort"
	"time"
)

const trendWindow = 5

// CheckTrend describes the direction of a single check's failure rate
// between the first and last session in the trend window.
type CheckTrend struct {
	Trend  string  `json:"trend"`
	Change float64 `json:"change"`
}

// TrendResult covers cross-session form direction.
type TrendResult struct {
	Trend              string                `json:"trend,omitempty"`
	CheckFailureTrends map[string]CheckTrend `json:"check_failure_trends,omitempty"`
	RepCountTrend      string                `json:"rep_count_trend,omitempty"`
	Interpretation     string                `json:"interpretation"`
}

// Trends detects per-check failure-rate direction and rep count direction
// over the oldest five sessions of the provided history.
func Trends(history []Session) TrendResult {
	if len(history) < 2 {
		return TrendResult{
			Trend:          "insufficient_data",
			Interpretation: "Need more sessions to detect trends",
		}
	}

	sorted := make([]Session, len(history))
	copy(sorted, history)
	now := time.Now()
	sort.SliceStable(sorted, func(i, j int) bool {
		ti, tj := sorted[i].Timestamp, sorted[j].Timestamp
		if ti.IsZero() {
			ti = now
		}
		if tj.IsZero() {
			tj = now
		}
		return ti.Before(tj)
	})

	window := sorted
	if len(window) > trendWindow {
		window = window[:trendWindow]
	}

	checkFailureTrends := map[string]CheckTrend{}
	for _, checkName := range CheckNames {
		failureRates := make([]float64, 0, len(window))
		for _, session := range window {
			failureRates = append(failureRates, highSeverityRate(session, checkName))
		}
		if len(failureRates) < 2 {
			continue
		}

		first, last := failureRates[0], failureRates[len(failureRates)-1]
		trend := "stable"
		if last < first {
			trend = "improving"
		} else if last > first {
			trend = "degrading"
		}
		checkFailureTrends[checkName] = CheckTrend{
			Trend:  trend,
			Change: round1(last - first),
		}
	}

	repCounts := make([]int, 0, len(window))
	for _, session := range window {
		repCounts = append(repCounts, session.RepCount)
	}
	repCountTrend := "stable"
	if len(repCounts) > 1 {
		first, last := repCounts[0], repCounts[len(repCounts)-1]
		if last > first {
			repCountTrend = "increasing"
		} else if last < first {
			repCountTrend = "decreasing"
		}
	}

	return TrendResult{
		CheckFailureTrends: checkFailureTrends,
		RepCountTrend:      repCountTrend,
		Interpretation:     interpretTrends(checkFailureTrends, repCountTrend),
	}
}

// highSeverityRate is the percentage of a session's reps where the check
// scored high. A session without reps counts as zero.
func highSeverityRate(session Session, checkName string) float64 {
	if len(session.Reps) == 0 {
		return 0
	}
	failures := 0
	for _, rep := range session.Reps {
		check, ok := rep.Checks[checkName]
		if ok && check.Severity == SeverityHigh {
			failures++
		}
	}
	return float64(failures) / float64(len(session.Reps)) * 100
}

func interpretTrends(checkTrends map[string]CheckTrend, repCountTrend string) string {
	improving, degrading := 0, 0
	for _, ct := range checkTrends {
		switch ct.Trend {
		case "improving":
			improving++
		case "degrading":
			degrading++
		}
	}

	switch {
	case improving > degrading && repCountTrend == "increasing":
		return "Great progress! Form is improving and stamina is increasing."
	case degrading > improving && repCountTrend == "decreasing":
		return "Form is degrading. Consider shorter sets or more rest."
	case improving > degrading:
		return "Form is improving! Keep up the momentum."
	case degrading > improving:
		return "Some form areas are declining. May indicate fatigue."
	default:
		return "Form is stable. Maintain current technique."
	}
}
