package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/middleware"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/pkg/response"
)

type GenerationHandler struct {
	service *service.GenerationService
}

func NewGenerationHandler(svc *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: svc}
}

// Start handles POST /api/generations/start
// @Summary      Start generation
// @Description  Queue a server-side run that creates the campaign and waits for every stage
// @Tags         Generations
// @Accept       json
// @Produce      json
// @Param        request body model.CampaignInput true "Campaign brief"
// @Success      202 {object} model.StartGenerationResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/generations/start [post]
func (h *GenerationHandler) Start(c *fiber.Ctx) error {
	var req model.CampaignInput
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	result, err := h.service.Start(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return respondError(c, err)
	}

	return response.Accepted(c, result)
}

// Status handles GET /api/generations/status/:jobId
// @Summary      Get generation job status
// @Description  Get the current step, progress and campaign of a generation job
// @Tags         Generations
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.Job
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/generations/status/{jobId} [get]
func (h *GenerationHandler) Status(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	job, err := h.service.GetStatus(c.UserContext(), middleware.GetPrincipal(c), jobID)
	if err != nil {
		return respondError(c, err)
	}

	return response.OK(c, job)
}

// Cancel handles POST /api/generations/cancel/:jobId
// @Summary      Cancel generation job
// @Description  Cancel a queued or running generation job
// @Tags         Generations
// @Produce      json
// @Param        jobId path string true "Job ID"
// @Success      200 {object} model.Job
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      409 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/generations/cancel/{jobId} [post]
func (h *GenerationHandler) Cancel(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if jobID == "" {
		return response.ValidationError(c, "Job ID is required", nil)
	}

	job, err := h.service.Cancel(c.UserContext(), middleware.GetPrincipal(c), jobID)
	if err != nil {
		return respondError(c, err)
	}

	return response.OK(c, job)
}
