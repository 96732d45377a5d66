package coach

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/warren-xu/exercise-form-analyzer/internal/telemetry/tracing"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
)

const (
	ttsDefaultVoiceID = "EXAVITQu4vr4xnSDxMaL"
	ttsModelID        = "eleven_flash_v2"
)

// TTSClient converts coaching text to speech through an ElevenLabs
// compatible API. A client without an API key is valid and always
// returns nil audio.
type TTSClient struct {
	baseEndpoint string
	apiKey       string
	voiceID      string
	httpClient   *http.Client
}

func NewTTSClient(baseEndpoint, apiKey, voiceID string, httpClient *http.Client) *TTSClient {
	if voiceID == "" {
		voiceID = ttsDefaultVoiceID
	}
	return &TTSClient{
		baseEndpoint: baseEndpoint,
		apiKey:       apiKey,
		voiceID:      voiceID,
		httpClient:   httpClient,
	}
}

type ttsRequest struct {
	Text          string           `json:"text"`
	VoiceSettings ttsVoiceSettings `json:"voice_settings"`
	ModelID       string           `json:"model_id"`
}

type ttsVoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
}

// Speak returns MP3 audio bytes for the given text, or nil when the
// client is not configured or the text is blank.
func (c *TTSClient) Speak(ctx context.Context, text string) (_ []byte, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "coach.tts.speak")
	defer tracing.EndSpanWithErrCheck(span, err)
	span.SetAttributes(attribute.Int("text.length", len(text)))

	if c.apiKey == "" {
		return nil, nil
	}
	if strings.TrimSpace(text) == "" {
		return nil, nil
	}

	reqBody, err := json.Marshal(ttsRequest{
		Text: text,
		VoiceSettings: ttsVoiceSettings{
			Stability:       0.5,
			SimilarityBoost: 0.75,
		},
		ModelID: ttsModelID,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal tts request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", c.baseEndpoint, c.voiceID)
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("xi-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("tts request: %w", err)
	}
	defer resp.Body.Close()

	audioBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read tts response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		errText := string(audioBytes)
		if len(errText) > 500 {
			errText = errText[:500]
		}
		log.Errorf("tts response status %d: %s", resp.StatusCode, errText)
		return nil, fmt.Errorf("tts response status %d", resp.StatusCode)
	}

	return audioBytes, nil
}
