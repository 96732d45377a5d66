package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const coachSystemPrompt = `You are a concise gym coach assistant. You receive structured squat form analysis (depth, knee tracking, torso angle, heel lift, asymmetry) and respond with:
1. A 1-2 sentence summary of the main takeaway.
2. 2-4 prioritized, actionable cues (short phrases).
3. If tracking confidence was low, add a short confidence_note suggesting the user keep feet and knees visible in frame.

Respond in JSON only, with keys: summary, cues (array of strings), safety_note, confidence_note (optional string). No markdown, no code fence.`

// assistant replies sometimes wrap the JSON in prose, grab the outermost object
var jsonObjectRegex = regexp.MustCompile(`\{[\s\S]*\}`)

type SetSummaryRequest struct {
	SessionID       string           `json:"session_id"`
	RepCount        int              `json:"rep_count"`
	Reps            []RepSummary     `json:"reps"`
	SetLevelSummary *SetLevelSummary `json:"set_level_summary,omitempty"`
}

type RepSummary struct {
	SessionID  string              `json:"session_id"`
	RepIndex   int                 `json:"rep_index"`
	Confidence map[string]any      `json:"confidence"`
	Checks     map[string]RepCheck `json:"checks"`
}

type RepCheck struct {
	Severity string              `json:"severity"`
	Evidence map[string]*float64 `json:"evidence"`
}

type SetLevelSummary struct {
	WorstIssues     []string `json:"worst_issues,omitempty"`
	Trends          []string `json:"trends,omitempty"`
	ConsistencyNote string   `json:"consistency_note,omitempty"`
}

type AssistantOutput struct {
	Summary        string   `json:"summary"`
	Cues           []string `json:"cues"`
	SafetyNote     string   `json:"safety_note"`
	ConfidenceNote string   `json:"confidence_note,omitempty"`
}

type assistantRequest struct {
	SystemPrompt string `json:"system_prompt"`
	Content      string `json:"content"`
	LLMProvider  string `json:"llm_provider"`
	ModelName    string `json:"model_name"`
	Stream       bool   `json:"stream"`
}

type assistantResponse struct {
	Content string `json:"content"`
}

// Api talks to the assistant backend that produces coaching feedback.
// Responses are cached in redis per session, the same set summary should
// not burn assistant tokens twice.
type Api struct {
	baseEndpoint string
	apiKey       string
	llmProvider  string
	modelName    string
	httpClient   *http.Client
	redisClient  *redis.Client
}

func NewApi(
	baseEndpoint, apiKey, llmProvider, modelName string,
	httpClient *http.Client,
	redisClient *redis.Client,
) *Api {
	return &Api{
		baseEndpoint: baseEndpoint,
		apiKey:       apiKey,
		llmProvider:  llmProvider,
		modelName:    modelName,
		httpClient:   httpClient,
		redisClient:  redisClient,
	}
}

func (api *Api) SetCoachResponse(ctx context.Context, req SetSummaryRequest) (*AssistantOutput, error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.setCoachResponse")
	defer span.End()
	span.SetAttributes(attribute.String("session.id", req.SessionID))

	if api.apiKey == "" {
		return &AssistantOutput{
			Summary:        "Coach API key is not configured. Set COACH_API_KEY to enable AI coaching.",
			Cues:           []string{"Configure COACH_API_KEY in the backend to get personalized cues."},
			SafetyNote:     "This is a form feedback tool only; reduce load if you feel pain or instability.",
			ConfidenceNote: "Keep feet and knees visible in frame for best tracking.",
		}, nil
	}

	cacheKey := fmt.Sprintf("coach-set::%s", req.SessionID)
	cmd := api.redisClient.Get(ctx, cacheKey)
	if cachedBytes := cmd.Val(); cachedBytes != "" {
		span.SetAttributes(attribute.Bool("coach.from-cache", true))
		var output AssistantOutput
		if err := json.Unmarshal([]byte(cachedBytes), &output); err == nil {
			log.Tracef("found coach response for [%s] in redis cache", req.SessionID)
			return &output, nil
		}
		log.Errorf("failed to unmarshal cached coach response for %s", req.SessionID)
		// fall through and ask the assistant again
	} else {
		span.SetAttributes(attribute.Bool("coach.from-cache", false))
	}

	content, err := buildSetCoachMessage(req)
	if err != nil {
		span.SetStatus(codes.Error, fmt.Sprintf("build coach message: %s", err))
		return nil, fmt.Errorf("build coach message: %w", err)
	}

	raw, err := api.askAssistant(ctx, content)
	if err != nil {
		log.Errorf("coach assistant call for session %s: %s", req.SessionID, err)
		return fallbackOutput("Could not get coach response from assistant.", err.Error()), nil
	}

	output := parseAssistantOutput(raw)

	if outputBytes, err := json.Marshal(output); err == nil {
		if err := api.redisClient.Set(ctx, cacheKey, outputBytes, 0).Err(); err != nil {
			log.Errorf("failed to cache coach response for %s: %s", req.SessionID, err)
		}
	}

	return output, nil
}

func (api *Api) askAssistant(ctx context.Context, content string) (string, error) {
	reqBody, err := json.Marshal(assistantRequest{
		SystemPrompt: coachSystemPrompt,
		Content:      content,
		LLMProvider:  api.llmProvider,
		ModelName:    api.modelName,
		Stream:       false,
	})
	if err != nil {
		return "", fmt.Errorf("marshal assistant request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, api.baseEndpoint+"/messages", bytes.NewReader(reqBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+api.apiKey)

	resp, err := api.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("assistant request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read assistant response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("assistant response status %d: %s", resp.StatusCode, respBytes)
	}

	var assistantResp assistantResponse
	if err := json.Unmarshal(respBytes, &assistantResp); err != nil {
		return "", fmt.Errorf("unmarshal assistant response: %w", err)
	}

	return assistantResp.Content, nil
}

func buildSetCoachMessage(req SetSummaryRequest) (string, error) {
	setSummary := req.SetLevelSummary
	if setSummary == nil {
		setSummary = &SetLevelSummary{}
	}
	payload, err := json.Marshal(map[string]any{
		"rep_count":         req.RepCount,
		"reps":              req.Reps,
		"set_level_summary": setSummary,
	})
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(
		"Squat set summary: %d reps.\nPer-rep and set-level analysis (JSON):\n%s",
		req.RepCount, payload,
	), nil
}

func parseAssistantOutput(raw string) *AssistantOutput {
	trimmed := strings.TrimSpace(raw)
	if jsonMatch := jsonObjectRegex.FindString(trimmed); jsonMatch != "" {
		var output AssistantOutput
		if err := json.Unmarshal([]byte(jsonMatch), &output); err == nil {
			if output.Summary == "" {
				output.Summary = "Form analysis complete."
			}
			if output.Cues == nil {
				output.Cues = []string{}
			}
			if output.SafetyNote == "" {
				output.SafetyNote = "Listen to your body; reduce load if needed."
			}
			return &output
		}
	}

	summary := trimmed
	if summary == "" {
		summary = "Form analysis complete."
	}
	return &AssistantOutput{
		Summary:    summary,
		Cues:       []string{},
		SafetyNote: "Listen to your body; reduce load if needed.",
	}
}

func fallbackOutput(reason, detail string) *AssistantOutput {
	return &AssistantOutput{
		Summary: reason,
		Cues: []string{
			"Check COACH_API_KEY in the service environment.",
			"Check the assistant endpoint if the error persists.",
		},
		SafetyNote:     "Form feedback is still available from the status cards.",
		ConfidenceNote: detail,
	}
}
