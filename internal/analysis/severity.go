package analysis

// Severity is the ordinal form-quality rating of a single check on a single
// rep. Anything outside the three known values is scored like SeverityLow.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityModerate Severity = "moderate"
	SeverityHigh     Severity = "high"
)

func (s Severity) String() string {
	return string(s)
}

func (s Severity) IsValid() bool {
	switch s {
	case SeverityLow, SeverityModerate, SeverityHigh:
		return true
	default:
		return false
	}
}

// Weight maps severity to its fixed ordinal score.
func (s Severity) Weight() int {
	switch s {
	case SeverityModerate:
		return 1
	case SeverityHigh:
		return 2
	default:
		return 0
	}
}

// CheckNames is the canonical ordered set of tracked form checks. All
// per-check aggregates iterate this set, even when a check is absent from
// some reps.
var CheckNames = []string{
	"depth",
	"knee_tracking",
	"torso_angle",
	"heel_lift",
	"asymmetry",
}
