package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/analysis"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"
	"github.com/warren-xu/exercise-form-analyzer/pkg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

// Repo stores sessions as JSONB documents, one row per session.
type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{
		db: db,
	}
}

func (r *Repo) Add(ctx context.Context, session *Session) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.add")
	defer tracing.EndSpanWithErrCheck(span, err)

	dataJson, err := json.Marshal(session)
	if err != nil {
		return nil, fmt.Errorf("marshal session: %w", err)
	}

	rows, err := r.db.Query(
		ctx,
		`INSERT INTO session
				(session_id, user_id, created_at, rep_count, data)
				VALUES ($1, $2, $3, $4, $5)
			RETURNING id;`,
		session.SessionID, session.UserID, session.Timestamp, session.RepCount, dataJson,
	)
	if err != nil {
		if pkg.IsUniqueViolationError(err) {
			return nil, ErrSessionExists
		}
		return nil, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, err
	}

	if !rows.Next() {
		return nil, errors.New("unexpected error [no rows next]")
	}

	var id int
	if err := rows.Scan(&id); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	session.ID = id
	return session, nil
}

func (r *Repo) Get(ctx context.Context, sessionID, userID string) (_ *Session, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.get")
	span.SetAttributes(attribute.String("sessionID", sessionID))
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, data
			FROM session
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

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, err
	}

	if len(sessions) != 1 {
		return nil, ErrSessionNotFound
	}

	return &sessions[0], nil
}

func (r *Repo) Delete(ctx context.Context, sessionID, userID string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.delete")
	defer tracing.EndSpanWithErrCheck(span, err)

	tag, err := r.db.Exec(
		ctx,
		`DELETE FROM session WHERE session_id = $1 AND user_id = $2`,
		sessionID, userID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// FindOne loads one session document for analysis.
func (r *Repo) FindOne(ctx context.Context, sessionID, userID string) (_ analysis.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.findOne")
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`SELECT data FROM session WHERE session_id = $1 AND user_id = $2;`,
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

	var dataBytes []byte
	if err := rows.Scan(&dataBytes); err != nil {
		return nil, fmt.Errorf("rows scan: %w", err)
	}

	var record analysis.Record
	if err := json.Unmarshal(dataBytes, &record); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", sessionID, err)
	}
	return record, nil
}

// FindRecent returns the user's newest session documents, newest first.
func (r *Repo) FindRecent(ctx context.Context, userID string, limit int) (_ []analysis.Record, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.findRecent")
	span.SetAttributes(attribute.Int("limit", limit))
	defer tracing.EndSpanWithErrCheck(span, err)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT data FROM session
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
		var dataBytes []byte
		if err := rows.Scan(&dataBytes); err != nil {
			return nil, fmt.Errorf("rows scan: %w", err)
		}
		var record analysis.Record
		if err := json.Unmarshal(dataBytes, &record); err != nil {
			return nil, fmt.Errorf("unmarshal session: %w", err)
		}
		records = append(records, record)
	}

	return records, nil
}

func (r *Repo) ListPage(ctx context.Context, userID string, page, size int) (_ []Session, total int, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.page")
	span.SetAttributes(attribute.Int("page", page))
	span.SetAttributes(attribute.Int("size", size))
	defer tracing.EndSpanWithErrCheck(span, err)

	limit := size
	offset := (page - 1) * size
	countAll, err := r.SessionsCount(ctx, userID)
	if err != nil {
		return nil, -1, err
	}

	if countAll-offset < limit && countAll > limit {
		offset = countAll - limit
	}

	log.Tracef("getting sessions for %s, total count %d, limit %d, offset %d", userID, countAll, limit, offset)

	rows, err := r.db.Query(
		ctx,
		`
			SELECT id, data FROM session
			WHERE user_id = $1
			ORDER BY created_at DESC
			LIMIT $2
			OFFSET $3;`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return nil, -1, err
	}

	sessions, err := r.rows2sessions(rows)
	if err != nil {
		return nil, -1, err
	}
	return sessions, countAll, nil
}

func (r *Repo) SessionsCount(ctx context.Context, userID string) (int, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "repo.sessions.count")
	defer span.End()

	rows, err := r.db.Query(ctx, `SELECT COUNT(*) FROM session WHERE user_id = $1`, userID)
	if err != nil {
		return -1, err
	}
	defer rows.Close()

	if err := rows.Err(); err != nil {
		return -1, err
	}

	if rows.Next() {
		var count int
		if err := rows.Scan(&count); err == nil {
			return count, nil
		}
	}

	return -1, errors.New("unexpected error, failed to get sessions count")
}

func (r *Repo) rows2sessions(rows pgx.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		var id int
		var dataBytes []byte
		if err := rows.Scan(&id, &dataBytes); err != nil {
			return nil, err
		}

		var s Session
		if err := json.Unmarshal(dataBytes, &s); err != nil {
			return nil, fmt.Errorf("unmarshal session %d: %w", id, err)
		}
		s.ID = id
		if s.Timestamp.IsZero() {
			s.Timestamp = time.Now().UTC()
		}

		sessions = append(sessions, s)
	}

	if sessions == nil {
		sessions = make([]Session, 0)
	}

	return sessions, nil
}
