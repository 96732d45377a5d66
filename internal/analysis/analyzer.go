package analysis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"
)

// ErrSessionNotFound is returned when no session matches the given
// session and user IDs.
var ErrSessionNotFound = errors.New("session not found")

// historyLimit caps how many recent sessions feed trends and comparison.
const historyLimit = 10

// AnalysisError wraps any failure that happens while the analysis itself
// runs, as opposed to failures locating the session.
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("analysis failed: %s", e.Err)
}

func (e *AnalysisError) Unwrap() error {
	return e.Err
}

//go:generate mockgen -source=$GOFILE -destination=analyzer_mocks_test.go -package=analysis_test

type sessionsStore interface {
	FindOne(ctx context.Context, sessionID, userID string) (Record, error)
	FindRecent(ctx context.Context, userID string, limit int) ([]Record, error)
}

// Result is the full analysis payload for one session.
type Result struct {
	SessionID       string               `json:"session_id"`
	Timestamp       time.Time            `json:"timestamp"`
	RepCount        int                  `json:"rep_count"`
	CurrentSession  SessionSummary       `json:"current_session"`
	Trends          TrendResult          `json:"trends"`
	WeakAreas       []WeakArea           `json:"weak_areas"`
	Consistency     ConsistencyResult    `json:"consistency"`
	Comparison      HistoricalComparison `json:"comparison"`
	Recommendations []string             `json:"recommendations"`
}

// Analyzer runs the per-session analysis against a sessions store.
type Analyzer struct {
	store sessionsStore
}

func NewAnalyzer(store sessionsStore) *Analyzer {
	return &Analyzer{store: store}
}

// AnalyzeSession loads the session and the user's recent history, then
// produces the full analysis. Store lookups failing to find the session
// surface as ErrSessionNotFound, everything else as *AnalysisError.
func (a *Analyzer) AnalyzeSession(ctx context.Context, sessionID, userID string) (result *Result, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "analyzer.analyzeSession")
	defer func() {
		if r := recover(); r != nil {
			err = &AnalysisError{Err: fmt.Errorf("panic: %v", r)}
		}
		tracing.EndSpanWithErrCheck(span, err)
	}()

	currentRecord, err := a.store.FindOne(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		return nil, &AnalysisError{Err: err}
	}

	historyRecords, err := a.store.FindRecent(ctx, userID, historyLimit)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}

	current := SessionFromRecord(currentRecord)
	history := make([]Session, 0, len(historyRecords))
	for _, rec := range historyRecords {
		history = append(history, SessionFromRecord(rec))
	}

	trends := Trends(history)
	weakAreas := WeakAreas(current)

	timestamp := current.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now().UTC()
	}

	return &Result{
		SessionID:       sessionID,
		Timestamp:       timestamp,
		RepCount:        current.RepCount,
		CurrentSession:  SummarizeSession(current),
		Trends:          trends,
		WeakAreas:       weakAreas,
		Consistency:     Consistency(current),
		Comparison:      CompareToHistory(current, history),
		Recommendations: Recommendations(weakAreas, trends),
	}, nil
}
