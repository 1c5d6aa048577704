package handlers

import (
	"encoding/base64"
	"errors"

	"callguard/internal/dto"
	"callguard/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AnalysisHandler struct {
	detection *service.DetectionService
	speech    *service.SpeechService
	logger    *zap.Logger
}

func NewAnalysisHandler(detection *service.DetectionService, speech *service.SpeechService, logger *zap.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		detection: detection,
		speech:    speech,
		logger:    logger,
	}
}

// Analyze godoc
// @Summary Analyze a conversation for fraud
// @Description Run the conversation text through the scam-case similarity pipeline and return the risk verdict
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Conversation transcript"
// @Success 200 {object} dto.AnalyzeResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/analyze [post]
func (h *AnalysisHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	result, err := h.detection.Analyze(c.Context(), req.Conversation)
	if err != nil {
		return h.analysisError(c, err)
	}

	return c.JSON(dto.AnalyzeResponse{
		ScamDetected:   result.ScamDetected,
		RiskScore:      result.RiskScore,
		Pattern:        result.Pattern,
		MatchedPhrases: result.MatchedKeywords,
		ResponseText:   result.Explanation,
		ContextUsed:    result.ContextUsed,
	})
}

// PostCallAnalysis godoc
// @Summary Post-call analysis with spoken warning
// @Description Compose the warning for a finished call and synthesize it to audio
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.PostCallAnalysisRequest true "Conversation transcript with optional live-detection verdict"
// @Success 200 {object} dto.PostCallAnalysisResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/post-call-analysis [post]
func (h *AnalysisHandler) PostCallAnalysis(c *fiber.Ctx) error {
	var req dto.PostCallAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	explanation, contextUsed, err := h.detection.Explain(c.Context(), req.Conversation)
	if err != nil {
		return h.analysisError(c, err)
	}

	resp := dto.PostCallAnalysisResponse{
		Explanation: explanation,
		ContextUsed: contextUsed,
		Pattern:     req.Pattern,
		Confidence:  req.Confidence,
	}

	// Synthesis failure degrades to a text-only analysis.
	audio, err := h.speech.Synthesize(c.Context(), explanation)
	if err != nil {
		h.logger.Warn("Speech synthesis failed", zap.Error(err))
	} else {
		resp.AudioBase64 = base64.StdEncoding.EncodeToString(audio)
		resp.Success = true
	}

	return c.JSON(resp)
}

// AnalyzeStream godoc
// @Summary Analyze a conversation and return spoken warning audio
// @Description Audio-first variant of analyze for real-time playback
// @Tags analysis
// @Accept json
// @Produce json
// @Param request body dto.AnalyzeRequest true "Conversation transcript"
// @Success 200 {object} dto.AnalyzeStreamResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/analyze-stream [post]
func (h *AnalysisHandler) AnalyzeStream(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	explanation, _, err := h.detection.Explain(c.Context(), req.Conversation)
	if err != nil {
		return h.analysisError(c, err)
	}

	audio, err := h.speech.Synthesize(c.Context(), explanation)
	if err != nil {
		h.logger.Warn("Speech synthesis failed", zap.Error(err))
		return c.JSON(dto.AnalyzeStreamResponse{
			Error:   "Failed to generate audio",
			Text:    explanation,
			Success: false,
		})
	}

	return c.JSON(dto.AnalyzeStreamResponse{
		AudioBase64: base64.StdEncoding.EncodeToString(audio),
		Text:        explanation,
		Success:     true,
	})
}

// analysisError maps the pipeline failure taxonomy onto HTTP statuses. Input
// errors name the missing field; infrastructure errors stay generic for the
// client and keep the detail in the logs.
func (h *AnalysisHandler) analysisError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No conversation text provided",
		})
	case errors.Is(err, service.ErrTimeout):
		h.logger.Error("Analysis timed out", zap.Error(err))
		return c.Status(fiber.StatusGatewayTimeout).JSON(fiber.Map{
			"error": "Analysis timed out, please retry",
		})
	default:
		h.logger.Error("Analysis failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to analyze conversation",
		})
	}
}
