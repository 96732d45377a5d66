package analysis

import "sort"

const maxWeakAreas = 5

// WeakArea is one form check ranked by mean severity across a session's reps,
// with the worst rep's evidence and a coaching cue attached.
type WeakArea struct {
	Check         string              `json:"check"`
	SeverityScore float64             `json:"severity_score"`
	WorstSeverity Severity            `json:"worst_severity"`
	Evidence      map[string]*float64 `json:"evidence"`
	Cue           string              `json:"cue"`
}

// WeakAreas ranks the canonical checks by mean severity score, descending.
// Checks where every rep scored low are left out. Ties keep the canonical
// check order. At most five entries are returned.
func WeakAreas(session Session) []WeakArea {
	if len(session.Reps) == 0 {
		return []WeakArea{}
	}

	type checkScore struct {
		name  string
		score float64
	}
	scores := make([]checkScore, 0, len(CheckNames))
	for _, checkName := range CheckNames {
		total := 0
		for _, rep := range session.Reps {
			total += rep.CheckSeverity(checkName).Weight()
		}
		scores = append(scores, checkScore{
			name:  checkName,
			score: float64(total) / float64(len(session.Reps)),
		})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].score > scores[j].score
	})

	weakAreas := make([]WeakArea, 0, maxWeakAreas)
	for _, cs := range scores {
		if cs.score <= 0 {
			continue
		}

		// evidence comes from the worst rep for this check,
		// first occurrence wins on ties
		worstSeverity := SeverityLow
		var worstEvidence map[string]*float64
		for _, rep := range session.Reps {
			check, ok := rep.Checks[cs.name]
			if !ok {
				continue
			}
			if check.Severity.Weight() > worstSeverity.Weight() {
				worstSeverity = check.Severity
				worstEvidence = check.Evidence
			}
		}
		if worstEvidence == nil {
			worstEvidence = map[string]*float64{}
		}

		weakAreas = append(weakAreas, WeakArea{
			Check:         cs.name,
			SeverityScore: round2(cs.score),
			WorstSeverity: worstSeverity,
			Evidence:      worstEvidence,
			Cue:           CueFor(cs.name, worstSeverity),
		})

		if len(weakAreas) == maxWeakAreas {
			break
		}
	}

	return weakAreas
}
