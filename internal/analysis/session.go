package analysis

import (
	"time"
)

// CheckResult is the recorded outcome of a single form check on a single rep.
type CheckResult struct {
	Severity Severity            `json:"severity"`
	Evidence map[string]*float64 `json:"evidence,omitempty"`
}

// Rep is one repetition of an exercise.
type Rep struct {
	RepIndex   int                    `json:"rep_index"`
	Confidence map[string]any         `json:"confidence,omitempty"`
	Checks     map[string]CheckResult `json:"checks"`
}

// CheckSeverity returns the severity of a given check; a missing check counts as low.
func (r Rep) CheckSeverity(checkName string) Severity {
	check, ok := r.Checks[checkName]
	if !ok || check.Severity == "" {
		return SeverityLow
	}
	return check.Severity
}

// Session is one completed set.
type Session struct {
	SessionID string    `json:"session_id"`
	UserID    string    `json:"user_id"`
	Timestamp time.Time `json:"timestamp"`
	RepCount  int       `json:"rep_count"`
	Reps      []Rep     `json:"reps"`
}

// SessionFromRecord decodes a store record of either shape (nested document
// or flat warehouse row) into the canonical Session.
func SessionFromRecord(rec Record) Session {
	s := Session{
		SessionID: rec.stringField("", "session_id"),
		UserID:    rec.stringField("", "user_id"),
		Timestamp: rec.timeField(time.Time{}, "timestamp"),
		RepCount:  rec.intField(0, "rep_count"),
	}

	for _, rawRep := range rec.sliceField("reps") {
		repRec, ok := asRecord(rawRep)
		if !ok {
			continue
		}
		s.Reps = append(s.Reps, repFromRecord(repRec))
	}

	return s
}

func repFromRecord(rec Record) Rep {
	rep := Rep{
		RepIndex: rec.intField(0, "rep_index"),
		Checks:   make(map[string]CheckResult),
	}

	if conf := rec.recordField("confidence"); conf != nil {
		rep.Confidence = conf
	}

	checks := rec.recordField("checks")
	for _, checkName := range CheckNames {
		checkRec := checks.recordField(checkName)
		if checkRec == nil {
			continue
		}
		rep.Checks[checkName] = CheckResult{
			Severity: Severity(checkRec.stringField(SeverityLow.String(), "severity")),
			Evidence: evidenceFromRecord(checkRec.recordField("evidence")),
		}
	}

	return rep
}

func evidenceFromRecord(rec Record) map[string]*float64 {
	if rec == nil {
		return nil
	}
	evidence := make(map[string]*float64, len(rec))
	for metric, raw := range rec {
		switch v := raw.(type) {
		case nil:
			evidence[metric] = nil
		case float64:
			value := v
			evidence[metric] = &value
		case int:
			value := float64(v)
			evidence[metric] = &value
		}
	}
	return evidence
}
