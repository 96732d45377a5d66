package coach

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/metrics"
	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"
	"github.com/warren-xu/exercise-form-analyzer/pkg"

	log "github.com/sirupsen/logrus"
)

const ttsMaxTextLength = 5000

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=coach_test

type coachApi interface {
	SetCoachResponse(ctx context.Context, req SetSummaryRequest) (*AssistantOutput, error)
}

type ttsClient interface {
	Speak(ctx context.Context, text string) ([]byte, error)
}

type RepCueResponse struct {
	Cue string `json:"cue"`
}

type TTSRequest struct {
	Text string `json:"text"`
}

type Handler struct {
	api     coachApi
	tts     ttsClient
	metrics *metrics.Manager
}

func NewHandler(api coachApi, tts ttsClient, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		api:     api,
		tts:     tts,
		metrics: metricsManager,
	}
}

func (handler *Handler) HandleCoachSet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.set")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req SetSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("coach set, unmarshal json params: %s", err)
		http.Error(w, "coach set failed", http.StatusBadRequest)
		return
	}

	output, err := handler.api.SetCoachResponse(ctx, req)
	if err != nil {
		log.Errorf("coach set response for session %s: %s", req.SessionID, err)
		http.Error(w, "failed to get coach response", http.StatusBadGateway)
		return
	}

	handler.metrics.CounterCoachResponses.Inc()

	outputJson, err := json.Marshal(output)
	if err != nil {
		log.Errorf("failed to marshal coach response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, outputJson, http.StatusOK)
}

// HandleCoachRep gives a short local cue for a single rep, no assistant call.
func (handler *Handler) HandleCoachRep(w http.ResponseWriter, r *http.Request) {
	_, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.rep")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var rep RepSummary
	if err := json.NewDecoder(r.Body).Decode(&rep); err != nil {
		log.Errorf("coach rep, unmarshal json params: %s", err)
		http.Error(w, "coach rep failed", http.StatusBadRequest)
		return
	}

	cue := "Rep looks good. Keep consistency."
	for checkName, check := range rep.Checks {
		if check.Severity != "high" {
			continue
		}
		evidence, err := json.Marshal(check.Evidence)
		if err != nil {
			evidence = []byte("{}")
		}
		evidenceStr := string(evidence)
		if len(evidenceStr) > 80 {
			evidenceStr = evidenceStr[:80]
		}
		cue = fmt.Sprintf("Watch: %s - %s...", strings.ReplaceAll(checkName, "_", " "), evidenceStr)
		break
	}

	cueJson, err := json.Marshal(RepCueResponse{Cue: cue})
	if err != nil {
		log.Errorf("failed to marshal rep cue: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, cueJson, http.StatusOK)
}

func (handler *Handler) HandleTTS(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.coach.tts")
	defer span.End()

	if r.Header.Get("Content-Type") != "application/json" {
		http.Error(w, "invalid content type", http.StatusBadRequest)
		return
	}

	var req TTSRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Errorf("tts, unmarshal json params: %s", err)
		http.Error(w, "tts failed", http.StatusBadRequest)
		return
	}

	if len(req.Text) < 1 || len(req.Text) > ttsMaxTextLength {
		http.Error(w, "error, text length out of bounds", http.StatusBadRequest)
		return
	}

	audioBytes, err := handler.tts.Speak(ctx, req.Text)
	if err != nil {
		log.Errorf("tts speak: %s", err)
		http.Error(w, "failed to generate speech", http.StatusBadGateway)
		return
	}

	if audioBytes == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.MP3, audioBytes, http.StatusOK)
}
