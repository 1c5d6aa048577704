package handlers

import (
	"errors"

	"callguard/internal/dto"
	"callguard/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type CaseHandler struct {
	detection *service.DetectionService
	logger    *zap.Logger
}

func NewCaseHandler(detection *service.DetectionService, logger *zap.Logger) *CaseHandler {
	return &CaseHandler{
		detection: detection,
		logger:    logger,
	}
}

// AddCase godoc
// @Summary Add a scam case to the knowledge base
// @Description Store a known scam narrative; re-adding an id overwrites the record and re-derives its embedding
// @Tags cases
// @Accept json
// @Produce json
// @Param request body dto.AddCaseRequest true "Scam case"
// @Success 201 {object} dto.AddCaseResponse
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/cases [post]
func (h *CaseHandler) AddCase(c *fiber.Ctx) error {
	var req dto.AddCaseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if req.ID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Case id is required",
		})
	}
	if req.Category == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Case category is required",
		})
	}

	if err := h.detection.AddCase(c.Context(), req.ID, req.Category, req.Description, req.Summary); err != nil {
		if errors.Is(err, service.ErrEmptyInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Case id is required",
			})
		}
		h.logger.Error("Failed to add scam case", zap.String("id", req.ID), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to add scam case",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.AddCaseResponse{
		ID:      req.ID,
		Success: true,
	})
}
