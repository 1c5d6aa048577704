package handlers

import (
	"context"
	"time"

	"callguard/internal/dto"
	"callguard/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// WebhookHandler receives transcript pushes from the speech-transcription
// collaborator, acknowledges immediately and analyzes in the background, so
// the transcriber is never blocked on the pipeline.
type WebhookHandler struct {
	detection *service.DetectionService
	logger    *zap.Logger
	timeout   time.Duration
}

func NewWebhookHandler(detection *service.DetectionService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		detection: detection,
		logger:    logger,
		timeout:   30 * time.Second,
	}
}

type webhookPayload struct {
	Transcript string `json:"transcript"`
}

// ReceiveTranscript godoc
// @Summary Receive a live transcript for background analysis
// @Description Acknowledge the transcript immediately and run fraud analysis in the background
// @Tags webhook
// @Accept json
// @Produce json
// @Success 200 {object} dto.WebhookResponse
// @Router /webhook [post]
func (h *WebhookHandler) ReceiveTranscript(c *fiber.Ctx) error {
	var payload webhookPayload
	// Malformed payloads are still acknowledged, matching the relay contract:
	// the transcriber fires and forgets.
	_ = c.BodyParser(&payload)

	jobID := uuid.New().String()
	h.logger.Info("Received transcript webhook", zap.String("job_id", jobID))

	transcript := payload.Transcript
	go h.processTranscript(jobID, transcript)

	return c.JSON(dto.WebhookResponse{
		Status:  "received",
		Message: "Transcript processing started in background",
		JobID:   jobID,
	})
}

func (h *WebhookHandler) processTranscript(jobID, transcript string) {
	ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
	defer cancel()

	result, err := h.detection.Analyze(ctx, transcript)
	if err != nil {
		h.logger.Warn("Background transcript analysis failed",
			zap.String("job_id", jobID),
			zap.Error(err),
		)
		return
	}

	h.logger.Info("Background transcript analyzed",
		zap.String("job_id", jobID),
		zap.Bool("scam_detected", result.ScamDetected),
		zap.Int("risk_score", result.RiskScore),
		zap.String("pattern", result.Pattern),
	)
}
