package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/metrics"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"
	"github.com/warren-xu/exercise-form-analyzer/pkg"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=sessions_test

type sessionsRepo interface {
	Add(ctx context.Context, session *Session) (*Session, error)
	Get(ctx context.Context, sessionID, userID string) (*Session, error)
	Delete(ctx context.Context, sessionID, userID string) error
	ListPage(ctx context.Context, userID string, page, size int) (_ []Session, total int, err error)
}

type statsRepo interface {
	AvgScorePerSession(ctx context.Context) ([]AvgSessionScore, error)
	FeedbackDistribution(ctx context.Context) ([]FeedbackCount, error)
	ScoreTrend(ctx context.Context, userID string) ([]DayScore, error)
}

type DeleteSessionResponse struct {
	DeletedID string `json:"deletedId"`
}

type SessionsListResponse struct {
	Sessions []Session `json:"sessions"`
	Total    int       `json:"total"`
}

type Handler struct {
	repo    sessionsRepo
	stats   statsRepo
	metrics *metrics.Manager
}

// NewHandler creates the sessions HTTP handler. The stats repo is nil when
// the configured store backend has no warehouse tables.
func NewHandler(repo sessionsRepo, stats statsRepo, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		repo:    repo,
		stats:   stats,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleAdd(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.new")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var session Session
	if err := json.NewDecoder(r.Body).Decode(&session); err != nil {
		log.Errorf("new session, unmarshal json params: %s", err)
		http.Error(w, "add session failed", http.StatusBadRequest)
		return
	}

	if session.UserID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}
	if session.SessionID == "" {
		session.SessionID = uuid.NewString()
	}
	if session.Timestamp.IsZero() {
		session.Timestamp = time.Now().UTC()
	}
	if session.RepCount == 0 {
		session.RepCount = len(session.Reps)
	}

	addedSession, err := handler.repo.Add(ctx, &session)
	if err != nil {
		if errors.Is(err, ErrSessionExists) {
			http.Error(w, "session already exists", http.StatusConflict)
			return
		}
		log.Errorf("failed to add new session [%s] for user [%s]: %s", session.SessionID, session.UserID, err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterSessionsStored.Inc()
	log.Debugf("new session added: [%s] for user [%s]: %d reps", addedSession.SessionID, addedSession.UserID, addedSession.RepCount)

	addedSessionJson, err := json.Marshal(addedSession)
	if err != nil {
		log.Errorf("failed to marshal new session: %s", err)
		http.Error(w, "error, failed to add new session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, addedSessionJson, http.StatusCreated)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.get")
	defer span.End()

	sessionID, userID, ok := sessionAndUserIDs(w, r)
	if !ok {
		return
	}

	session, err := handler.repo.Get(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to get session %s: %s", sessionID, err)
		http.Error(w, "failed to get session", http.StatusInternalServerError)
		return
	}

	sessionJson, err := json.Marshal(session)
	if err != nil {
		log.Errorf("failed to marshal session: %s", err)
		http.Error(w, "failed to marshal session", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, sessionJson, http.StatusOK)
}

func (handler *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.delete")
	defer span.End()

	sessionID, userID, ok := sessionAndUserIDs(w, r)
	if !ok {
		return
	}

	if err := handler.repo.Delete(ctx, sessionID, userID); err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("failed to delete session %s: %s", sessionID, err)
		http.Error(w, "session not deleted", http.StatusInternalServerError)
		return
	}

	deleteRespJson, err := json.Marshal(DeleteSessionResponse{
		DeletedID: sessionID,
	})
	if err != nil {
		log.Errorf("failed to marshal delete response: %s", err)
		http.Error(w, "failed to marshal delete response", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponseOK(w, string(deleteRespJson))
}

func (handler *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.list")
	defer span.End()

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	vars := mux.Vars(r)
	page, err := strconv.Atoi(vars["page"])
	if err != nil {
		log.Errorf("handle list sessions, from <page> param: %s", err)
		http.Error(w, "parse form error, parameter <page>", http.StatusBadRequest)
		return
	}
	size, err := strconv.Atoi(vars["size"])
	if err != nil {
		log.Errorf("handle list sessions, from <size> param: %s", err)
		http.Error(w, "parse form error, parameter <size>", http.StatusBadRequest)
		return
	}

	if page < 1 {
		http.Error(w, "invalid page (has to be non-zero value)", http.StatusBadRequest)
		return
	}
	if size < 1 {
		http.Error(w, "invalid size (has to be non-zero value)", http.StatusBadRequest)
		return
	}

	sessions, total, err := handler.repo.ListPage(ctx, userID, page, size)
	if err != nil {
		log.Errorf("list sessions error: %s", err)
		http.Error(w, "failed to get sessions", http.StatusInternalServerError)
		return
	}

	listRespJson, err := json.Marshal(SessionsListResponse{
		Sessions: sessions,
		Total:    total,
	})
	if err != nil {
		log.Errorf("marshal sessions error: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, listRespJson, http.StatusOK)
}

func (handler *Handler) HandleAvgScorePerSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.avgScorePerSession")
	defer span.End()

	if handler.stats == nil {
		http.Error(w, "stats not available for configured store backend", http.StatusNotFound)
		return
	}

	scores, err := handler.stats.AvgScorePerSession(ctx)
	if err != nil {
		log.Errorf("avg score per session: %s", err)
		http.Error(w, "failed to get session scores", http.StatusInternalServerError)
		return
	}

	handler.writeStatsJson(w, scores)
}

func (handler *Handler) HandleFeedbackDistribution(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.feedbackDistribution")
	defer span.End()

	if handler.stats == nil {
		http.Error(w, "stats not available for configured store backend", http.StatusNotFound)
		return
	}

	distribution, err := handler.stats.FeedbackDistribution(ctx)
	if err != nil {
		log.Errorf("feedback distribution: %s", err)
		http.Error(w, "failed to get feedback distribution", http.StatusInternalServerError)
		return
	}

	handler.writeStatsJson(w, distribution)
}

func (handler *Handler) HandleScoreTrend(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.sessions.scoreTrend")
	defer span.End()

	if handler.stats == nil {
		http.Error(w, "stats not available for configured store backend", http.StatusNotFound)
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	trend, err := handler.stats.ScoreTrend(ctx, userID)
	if err != nil {
		log.Errorf("score trend for %s: %s", userID, err)
		http.Error(w, "failed to get score trend", http.StatusInternalServerError)
		return
	}

	handler.writeStatsJson(w, trend)
}

func (handler *Handler) writeStatsJson(w http.ResponseWriter, payload any) {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		log.Errorf("marshal stats response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, payloadJson, http.StatusOK)
}

func sessionAndUserIDs(w http.ResponseWriter, r *http.Request) (sessionID, userID string, ok bool) {
	vars := mux.Vars(r)
	sessionID = vars["sessionID"]
	if sessionID == "" {
		http.Error(w, "error, session id empty", http.StatusBadRequest)
		return "", "", false
	}
	userID = r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return "", "", false
	}
	return sessionID, userID, true
}
