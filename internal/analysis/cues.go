package analysis

var coachingCues = map[string]map[Severity]string{
	"depth": {
		SeverityHigh:     "Squat deeper - aim for hip crease below knee level.",
		SeverityModerate: "Increase depth slightly for better muscle engagement.",
		SeverityLow:      "Great depth control!",
	},
	"knee_tracking": {
		SeverityHigh:     "Knees are caving inward (valgus). Push them out over your toes.",
		SeverityModerate: "Watch for slight knee inward drift - keep them stable.",
		SeverityLow:      "Excellent knee tracking!",
	},
	"torso_angle": {
		SeverityHigh:     "Your torso is leaning too far forward. Brace your core, stay upright.",
		SeverityModerate: "Slight forward lean detected. Keep your chest proud.",
		SeverityLow:      "Perfect torso position!",
	},
	"heel_lift": {
		SeverityHigh:     "Heels are lifting - shift weight to mid-foot. Consider heel-elevated shoes.",
		SeverityModerate: "Minor heel lift visible. Focus on weight distribution.",
		SeverityLow:      "Excellent heel stability!",
	},
	"asymmetry": {
		SeverityHigh:     "Major imbalance between left and right. Correct asymmetry before increasing load.",
		SeverityModerate: "Slight side-to-side imbalance. Work on symmetry.",
		SeverityLow:      "Perfect symmetry!",
	},
}

// CueFor returns the coaching cue for a check at the given severity.
func CueFor(checkName string, severity Severity) string {
	if bySeverity, ok := coachingCues[checkName]; ok {
		if cue, ok := bySeverity[severity]; ok {
			return cue
		}
	}
	return "Keep working on this area."
}
