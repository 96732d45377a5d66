package analysis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/analysis"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(
		m,
		goleak.IgnoreTopFunction("github.com/go-redis/redis/v8/internal/pool.(*ConnPool).reaper"),
	)
}

func recordForSession(sessionID string, ts time.Time, highReps, lowReps int) analysis.Record {
	reps := make([]any, 0, highReps+lowReps)
	for i := 0; i < highReps+lowReps; i++ {
		severity := "low"
		if i < highReps {
			severity = "high"
		}
		reps = append(reps, map[string]any{
			"rep_index": float64(i),
			"checks": map[string]any{
				"depth": map[string]any{
					"severity": severity,
					"evidence": map[string]any{"hip_angle": 95.5},
				},
			},
		})
	}
	return analysis.Record{
		"session_id": sessionID,
		"user_id":    "user-1",
		"timestamp":  ts.Format(time.RFC3339),
		"rep_count":  float64(len(reps)),
		"reps":       reps,
	}
}

func TestAnalyzeSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	now := time.Date(2025, 5, 10, 9, 30, 0, 0, time.UTC)
	currentRec := recordForSession("sess-current", now, 2, 8)
	olderRec := recordForSession("sess-older", now.AddDate(0, 0, -3), 3, 2)

	store := NewMocksessionsStore(ctrl)
	store.EXPECT().
		FindOne(gomock.Any(), "sess-current", "user-1").
		Return(currentRec, nil)
	store.EXPECT().
		FindRecent(gomock.Any(), "user-1", 10).
		Return([]analysis.Record{currentRec, olderRec}, nil)

	analyzer := analysis.NewAnalyzer(store)
	result, err := analyzer.AnalyzeSession(context.Background(), "sess-current", "user-1")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "sess-current", result.SessionID)
	assert.True(t, now.Equal(result.Timestamp))
	assert.Equal(t, 10, result.RepCount)

	assert.Equal(t, 10, result.CurrentSession.RepCount)
	depthSummary := result.CurrentSession.ChecksSummary["depth"]
	assert.Equal(t, 2, depthSummary.Flag)
	assert.Equal(t, 8, depthSummary.OK)

	// failure rate moved from 60% (older) to 20% (current)
	depthTrend := result.Trends.CheckFailureTrends["depth"]
	assert.Equal(t, "improving", depthTrend.Trend)
	assert.InDelta(t, -40.0, depthTrend.Change, 0.001)
	assert.Equal(t, "increasing", result.Trends.RepCountTrend)

	require.NotEmpty(t, result.WeakAreas)
	assert.Equal(t, "depth", result.WeakAreas[0].Check)
	assert.Equal(t, analysis.SeverityHigh, result.WeakAreas[0].WorstSeverity)

	require.NotNil(t, result.Comparison.RepCount)
	assert.Equal(t, 10, result.Comparison.RepCount.Current)
	assert.InDelta(t, 5.0, result.Comparison.RepCount.HistoricalAvg, 0.001)

	require.NotEmpty(t, result.Recommendations)
	assert.Equal(t,
		"Record your sets to compare form visually over time.",
		result.Recommendations[len(result.Recommendations)-1])
}

func TestAnalyzeSession_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMocksessionsStore(ctrl)
	store.EXPECT().
		FindOne(gomock.Any(), "missing", "user-1").
		Return(nil, analysis.ErrSessionNotFound)

	analyzer := analysis.NewAnalyzer(store)
	result, err := analyzer.AnalyzeSession(context.Background(), "missing", "user-1")
	assert.Nil(t, result)
	assert.ErrorIs(t, err, analysis.ErrSessionNotFound)

	var analysisErr *analysis.AnalysisError
	assert.False(t, errors.As(err, &analysisErr))
}

func TestAnalyzeSession_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	storeErr := errors.New("connection reset")
	store := NewMocksessionsStore(ctrl)
	store.EXPECT().
		FindOne(gomock.Any(), "sess-1", "user-1").
		Return(nil, storeErr)

	analyzer := analysis.NewAnalyzer(store)
	result, err := analyzer.AnalyzeSession(context.Background(), "sess-1", "user-1")
	assert.Nil(t, result)

	var analysisErr *analysis.AnalysisError
	require.ErrorAs(t, err, &analysisErr)
	assert.ErrorIs(t, err, storeErr)
}

func TestAnalyzeSession_HistoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := NewMocksessionsStore(ctrl)
	store.EXPECT().
		FindOne(gomock.Any(), "sess-1", "user-1").
		Return(recordForSession("sess-1", time.Now(), 0, 3), nil)
	store.EXPECT().
		FindRecent(gomock.Any(), "user-1", 10).
		Return(nil, errors.New("timeout"))

	analyzer := analysis.NewAnalyzer(store)
	_, err := analyzer.AnalyzeSession(context.Background(), "sess-1", "user-1")

	var analysisErr *analysis.AnalysisError
	assert.ErrorAs(t, err, &analysisErr)
}

func TestAnalyzeSession_TimestampFallback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	rec := recordForSession("sess-1", time.Time{}, 0, 2)
	delete(rec, "timestamp")

	store := NewMocksessionsStore(ctrl)
	store.EXPECT().
		FindOne(gomock.Any(), "sess-1", "user-1").
		Return(rec, nil)
	store.EXPECT().
		FindRecent(gomock.Any(), "user-1", 10).
		Return([]analysis.Record{rec}, nil)

	before := time.Now().UTC()
	analyzer := analysis.NewAnalyzer(store)
	result, err := analyzer.AnalyzeSession(context.Background(), "sess-1", "user-1")
	require.NoError(t, err)

	assert.False(t, result.Timestamp.IsZero())
	assert.False(t, result.Timestamp.Before(before))
}
