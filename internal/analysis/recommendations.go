package analysis

import (
	"fmt"
	"strings"
)

const maxRecommendations = 5

// Recommendations turns weak areas and trends into actionable advice.
// At most five entries come back, the last one always being the
// visual comparison tip.
func Recommendations(weakAreas []WeakArea, trends TrendResult) []string {
	recommendations := make([]string, 0, maxRecommendations)

	if len(weakAreas) > 0 {
		topWeak := weakAreas[0]
		label := checkLabel(topWeak.Check)
		switch topWeak.WorstSeverity {
		case SeverityHigh:
			recommendations = append(recommendations,
				fmt.Sprintf("Priority: Fix %s - this is causing major form breaks.", label))
		case SeverityModerate:
			recommendations = append(recommendations,
				fmt.Sprintf("Work on %s - several reps showed issues here.", label))
		}
	}

	for _, checkName := range CheckNames {
		checkTrend, ok := trends.CheckFailureTrends[checkName]
		if !ok {
			continue
		}
		if checkTrend.Trend == "degrading" && checkTrend.Change > 10 {
			recommendations = append(recommendations,
				fmt.Sprintf("Stop degrading %s. Take breaks between sets.", checkLabel(checkName)))
		}
	}

	switch trends.RepCountTrend {
	case "decreasing":
		recommendations = append(recommendations,
			"Aiming for more reps? Focus on form quality over quantity first.")
	case "increasing":
		recommendations = append(recommendations,
			"Excellent! You're building stamina. Maintain form quality.")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations,
			"Keep consistent with form checks between sets.")
	}

	recommendations = append(recommendations,
		"Record your sets to compare form visually over time.")

	if len(recommendations) > maxRecommendations {
		recommendations = recommendations[:maxRecommendations]
	}
	return recommendations
}

// checkLabel turns a snake_case check name into a readable title,
// e.g. "knee_tracking" becomes "Knee Tracking".
func checkLabel(checkName string) string {
	words := strings.Split(checkName, "_")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
