package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"callguard/pkg/config"

	"go.uber.org/zap"
)

// SpeechService synthesizes warning text into audio through the ElevenLabs
// text-to-speech API. The detection core never calls it; the API layer does,
// and degrades to text-only responses when synthesis fails.
type SpeechService struct {
	config     *config.ElevenLabsConfig
	httpClient *http.Client
	logger     *zap.Logger
	baseURL    string
}

func NewSpeechService(cfg *config.ElevenLabsConfig, logger *zap.Logger) *SpeechService {
	return &SpeechService{
		config:     cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		logger:     logger,
		// ElevenLabs REST API
		// Documentation: https://elevenlabs.io/docs/api-reference/text-to-speech
		baseURL: "https://api.elevenlabs.io/v1",
	}
}

// Synthesize returns MP3 audio bytes for the given text.
func (s *SpeechService) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.config.APIKey == "" || s.config.VoiceID == "" {
		return nil, fmt.Errorf("speech synthesis is not configured")
	}

	requestBody := map[string]interface{}{
		"text":     text,
		"model_id": s.config.ModelID,
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/text-to-speech/%s", s.baseURL, s.config.VoiceID)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.config.APIKey)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call text-to-speech API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		s.logger.Error("Text-to-speech request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)),
		)
		return nil, fmt.Errorf("text-to-speech failed with status %d", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio stream: %w", err)
	}

	s.logger.Info("Speech synthesized", zap.Int("audio_bytes", len(audio)))
	return audio, nil
}
