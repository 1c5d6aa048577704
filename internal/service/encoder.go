package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"callguard/pkg/config"

	"go.uber.org/zap"
)

// Encoder turns text into a fixed-length embedding. Implementations must be
// deterministic: identical input and model version yield identical vectors.
// Empty input is accepted and produces some vector; rejecting empty
// conversations is the caller's job.
type Encoder interface {
	Encode(ctx context.Context, text string) ([]float32, error)
	Dimensions() int
}

// HTTPEncoder calls a sentence-transformer embedding service over its /embed
// endpoint (text-embeddings-inference wire format).
type HTTPEncoder struct {
	config     *config.EncoderConfig
	httpClient *http.Client
	logger     *zap.Logger
}

func NewHTTPEncoder(cfg *config.EncoderConfig, logger *zap.Logger) *HTTPEncoder {
	return &HTTPEncoder{
		config:     cfg,
		httpClient: &http.Client{},
		logger:     logger,
	}
}

func (e *HTTPEncoder) Dimensions() int {
	return e.config.Dimensions
}

// Encode requests an embedding for text. The call is bounded by the configured
// timeout; timeouts surface as ErrTimeout, everything else as ErrEncoding.
func (e *HTTPEncoder) Encode(ctx context.Context, text string) ([]float32, error) {
	ctx, cancel := context.WithTimeout(ctx, e.config.Timeout)
	defer cancel()

	requestBody := map[string]interface{}{
		"inputs": text,
	}
	jsonData, err := json.Marshal(requestBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal request: %v", ErrEncoding, err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", e.config.BaseURL+"/embed", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrEncoding, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: encoder call exceeded %s", ErrTimeout, e.config.Timeout)
		}
		return nil, fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		e.logger.Error("Embedding request failed",
			zap.Int("status", resp.StatusCode),
			zap.String("response", string(bodyBytes)),
		)
		return nil, fmt.Errorf("%w: embed endpoint returned status %d", ErrEncoding, resp.StatusCode)
	}

	// Response is a batch: one vector per input.
	var vectors [][]float32
	if err := json.NewDecoder(resp.Body).Decode(&vectors); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrEncoding, err)
	}
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: embed endpoint returned no vectors", ErrEncoding)
	}

	embedding := vectors[0]
	if len(embedding) != e.config.Dimensions {
		return nil, fmt.Errorf("%w: expected %d dimensions, got %d",
			ErrEncoding, e.config.Dimensions, len(embedding))
	}

	return embedding, nil
}
