package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/analysis"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.opentelemetry.io/otel/attribute"
)

// WarehouseRepo reads sessions from analytics warehouse tables, where
// sessions and per-rep checks live in separate flat tables with uppercase
// column naming. Records produced here keep the uppercase field names, the
// analysis layer resolves them case-insensitively.
type WarehouseRepo struct {
	db *pgxpool.Pool
}

func NewWarehouseRepo(db *pgxpool.Pool) *WarehouseRepo {
	return &WarehouseRepo{
		db: db,
	}
}

type AvgSessionScore struct {
	SessionID string  `json:"session_id"`
	AvgScore  float64 `json:"avg_score"`
}

type FeedbackCount struct {
	Feedback string `json:"feedback"`
	Count    int    `json:"count"`
}

type DayScore struct {
	Day      time.Time `json:"day"`
	AvgScore float64   `json:"avg_score"`
}

func (r *WarehouseRepo) FindOne(ctx context.Context, sessionID, userID string) (_ analysis.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.warehouse.findOne")
	span.SetAttributes(attribute.String("sessionID", sessionID))
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT session_id, user_id, created_at, rep_count
			FROM warehouse_sessions
			WHERE session_id = $1 AND user_id = $2;`,
		sessionID, userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, analysis.ErrSessionNotFound
	}

	record, err := scanSessionRecord(rows)
	if err != nil {
		return nil, err
	}
	rows.Close()

	if err := r.attachReps(ctx, record); err != nil {
		return nil, err
	}
	return record, nil
}

func (r *WarehouseRepo) FindRecent(ctx context.Context, userID string, limit int) (_ []analysis.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.warehouse.findRecent")
	span.SetAttributes(attribute.Int("limit", limit))
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT session_id, user_id, created_at, rep_count
			FROM warehouse_sessions
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2;`,
		userID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	records := make([]analysis.Record, 0, limit)
	for rows.Next() {
		record, err := scanSessionRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	rows.Close()

	for _, record := range records {
		if err := r.attachReps(ctx, record); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// attachReps loads the session's rep rows ordered by rep index and recomputes
// the rep count from what was actually found.
func (r *WarehouseRepo) attachReps(ctx context.Context, sessionRecord analysis.Record) error {
	sessionID, _ := sessionRecord["SESSION_ID"].(string)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT session_id, rep_index, confidence, checks
			FROM warehouse_rep_checks
			WHERE session_id = $1
			ORDER BY rep_index ASC;`,
		sessionID,
	)
	if err != nil {
		return err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return err
	}

	reps := make([]any, 0)
	for rows.Next() {
		var repSessionID string
		var repIndex int
		var confidenceBytes, checksBytes []byte
		if err := rows.Scan(&repSessionID, &repIndex, &confidenceBytes, &checksBytes); err != nil {
			return err
		}

		rep := analysis.Record{
			"SESSION_ID": repSessionID,
			"REP_INDEX":  repIndex,
		}
		if len(confidenceBytes) > 0 {
			var confidence map[string]any
			if err := json.Unmarshal(confidenceBytes, &confidence); err != nil {
				return fmt.Errorf("unmarshal confidence for rep %d: %w", repIndex, err)
			}
			rep["CONFIDENCE"] = confidence
		}
		if len(checksBytes) > 0 {
			var checks map[string]any
			if err := json.Unmarshal(checksBytes, &checks); err != nil {
				return fmt.Errorf("unmarshal checks for rep %d: %w", repIndex, err)
			}
			rep["CHECKS"] = checks
		}

		reps = append(reps, rep)
	}

	sessionRecord["reps"] = reps
	sessionRecord["rep_count"] = len(reps)
	return nil
}

// AvgScorePerSession returns the ten best sessions by average rep score.
func (r *WarehouseRepo) AvgScorePerSession(ctx context.Context) (_ []AvgSessionScore, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.warehouse.avgScorePerSession")
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT session_id, AVG(score) AS avg_score
			FROM warehouse_session_reps
			GROUP BY session_id
			ORDER BY avg_score DESC
			LIMIT 10;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	scores := make([]AvgSessionScore, 0)
	for rows.Next() {
		var s AvgSessionScore
		if err := rows.Scan(&s.SessionID, &s.AvgScore); err != nil {
			return nil, err
		}
		scores = append(scores, s)
	}
	return scores, nil
}

func (r *WarehouseRepo) FeedbackDistribution(ctx context.Context) (_ []FeedbackCount, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.warehouse.feedbackDistribution")
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT feedback, COUNT(*) AS count
			FROM warehouse_session_reps
			GROUP BY feedback
			ORDER BY count DESC;`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	counts := make([]FeedbackCount, 0)
	for rows.Next() {
		var fc FeedbackCount
		if err := rows.Scan(&fc.Feedback, &fc.Count); err != nil {
			return nil, err
		}
		counts = append(counts, fc)
	}
	return counts, nil
}

// ScoreTrend returns the user's average rep score per day, oldest first.
func (r *WarehouseRepo) ScoreTrend(ctx context.Context, userID string) (_ []DayScore, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.warehouse.scoreTrend")
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT DATE(created_at) AS day, AVG(score) AS avg_score
			FROM warehouse_session_reps
			WHERE user_id = $1
			GROUP BY day
			ORDER BY day;`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	trend := make([]DayScore, 0)
	for rows.Next() {
		var ds DayScore
		if err := rows.Scan(&ds.Day, &ds.AvgScore); err != nil {
			return nil, err
		}
		trend = append(trend, ds)
	}
	return trend, nil
}

type sessionRowScanner interface {
	Scan(dest ...any) error
}

func scanSessionRecord(row sessionRowScanner) (analysis.Record, error) {
	var sessionID, userID string
	var createdAt time.Time
	var repCount int
	if err := row.Scan(&sessionID, &userID, &createdAt, &repCount); err != nil {
		return nil, err
	}
	return analysis.Record{
		"SESSION_ID": sessionID,
		"USER_ID":    userID,
		"TIMESTAMP":  createdAt,
		"REP_COUNT":  repCount,
	}, nil
}
