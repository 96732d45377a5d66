package analysis_test

import (
	"testing"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_Field(t *testing.T) {
	rec := analysis.Record{
		"session_id": "sess-1",
		"checks": map[string]any{
			"depth": map[string]any{
				"severity": "high",
			},
		},
	}

	assert.Equal(t, "sess-1", rec.Field("", "session_id"))
	assert.Equal(t, "high", rec.Field("", "checks", "depth", "severity"))
	assert.Equal(t, "fallback", rec.Field("fallback", "checks", "depth", "missing"))
	assert.Equal(t, "fallback", rec.Field("fallback", "checks", "depth", "severity", "too-deep"))
}

func TestRecord_Field_UppercaseKeys(t *testing.T) {
	rec := analysis.Record{
		"SESSION_ID": "sess-2",
		"REP_COUNT":  7,
		"CHECKS": map[string]any{
			"depth": map[string]any{
				"SEVERITY": "moderate",
			},
		},
	}

	// lookups by canonical lowercase name resolve uppercase columns too
	assert.Equal(t, "sess-2", rec.Field("", "session_id"))
	assert.Equal(t, 7, rec.Field(0, "rep_count"))
	assert.Equal(t, "moderate", rec.Field("", "checks", "depth", "severity"))
}

func TestRecord_Field_NilValueFallsBackToDefault(t *testing.T) {
	rec := analysis.Record{
		"timestamp": nil,
	}
	assert.Equal(t, "def", rec.Field("def", "timestamp"))
}

func TestSessionFromRecord_DocumentShape(t *testing.T) {
	ts := time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC)
	rec := analysis.Record{
		"session_id": "sess-doc",
		"user_id":    "user-1",
		"timestamp":  ts.Format(time.RFC3339),
		"rep_count":  float64(2), // json numbers decode as float64
		"reps": []any{
			map[string]any{
				"rep_index": float64(0),
				"checks": map[string]any{
					"depth": map[string]any{
						"severity": "high",
						"evidence": map[string]any{
							"hip_angle": 95.5,
							"missing":   nil,
						},
					},
				},
			},
			map[string]any{
				"rep_index": float64(1),
				"checks": map[string]any{
					"depth": map[string]any{"severity": "low"},
				},
			},
		},
	}

	session := analysis.SessionFromRecord(rec)
	assert.Equal(t, "sess-doc", session.SessionID)
	assert.Equal(t, "user-1", session.UserID)
	assert.True(t, ts.Equal(session.Timestamp))
	assert.Equal(t, 2, session.RepCount)
	require.Len(t, session.Reps, 2)

	assert.Equal(t, analysis.SeverityHigh, session.Reps[0].CheckSeverity("depth"))
	require.Contains(t, session.Reps[0].Checks["depth"].Evidence, "hip_angle")
	require.NotNil(t, session.Reps[0].Checks["depth"].Evidence["hip_angle"])
	assert.InDelta(t, 95.5, *session.Reps[0].Checks["depth"].Evidence["hip_angle"], 0.001)
	assert.Nil(t, session.Reps[0].Checks["depth"].Evidence["missing"])

	assert.Equal(t, analysis.SeverityLow, session.Reps[1].CheckSeverity("depth"))
	// absent check scores low
	assert.Equal(t, analysis.SeverityLow, session.Reps[1].CheckSeverity("knee_tracking"))
}

func TestSessionFromRecord_WarehouseShape(t *testing.T) {
	ts := time.Date(2025, 3, 11, 18, 0, 0, 0, time.UTC)
	rec := analysis.Record{
		"SESSION_ID": "sess-wh",
		"USER_ID":    "user-2",
		"TIMESTAMP":  ts,
		"REP_COUNT":  3,
		// the warehouse reader sets these two lowercase after loading rep rows
		"reps": []any{
			analysis.Record{
				"SESSION_ID": "sess-wh",
				"REP_INDEX":  0,
				"CHECKS": map[string]any{
					"heel_lift": map[string]any{
						"severity": "moderate",
					},
				},
			},
		},
		"rep_count": 1,
	}

	session := analysis.SessionFromRecord(rec)
	assert.Equal(t, "sess-wh", session.SessionID)
	assert.Equal(t, "user-2", session.UserID)
	assert.True(t, ts.Equal(session.Timestamp))
	// the recomputed lowercase rep_count wins over the uppercase column
	assert.Equal(t, 1, session.RepCount)
	require.Len(t, session.Reps, 1)
	assert.Equal(t, analysis.SeverityModerate, session.Reps[0].CheckSeverity("heel_lift"))
}
