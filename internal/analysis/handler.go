package analysis

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/metrics"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"
	"github.com/warren-xu/exercise-form-analyzer/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type Handler struct {
	analyzer *Analyzer
	metrics  *metrics.Manager
}

func NewHandler(analyzer *Analyzer, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		analyzer: analyzer,
		metrics:  metricsManager,
	}
}

func (handler *Handler) HandleAnalyzeSession(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.analysis.session")
	defer span.End()

	vars := mux.Vars(r)
	sessionID := vars["sessionID"]
	if sessionID == "" {
		http.Error(w, "error, session id empty", http.StatusBadRequest)
		return
	}
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		http.Error(w, "error, user id empty", http.StatusBadRequest)
		return
	}

	result, err := handler.analyzer.AnalyzeSession(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			http.Error(w, "session not found", http.StatusNotFound)
			return
		}
		log.Errorf("analyze session %s for user %s: %s", sessionID, userID, err)
		http.Error(w, "analysis failed", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterAnalysesRun.Inc()

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal analysis result: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}
