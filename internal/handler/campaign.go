package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/middleware"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/pkg/response"
)

type CampaignHandler struct {
	service  *service.CampaignService
	awaitMax time.Duration
}

func NewCampaignHandler(svc *service.CampaignService, awaitMax time.Duration) *CampaignHandler {
	return &CampaignHandler{
		service:  svc,
		awaitMax: awaitMax,
	}
}

// List handles GET /api/campaigns
// @Summary      List campaigns
// @Description  List the caller's campaigns
// @Tags         Campaigns
// @Produce      json
// @Param        sort query string false "name, -name, created_at, -created_at, asc or desc"
// @Success      200 {array}  model.Campaign
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns [get]
func (h *CampaignHandler) List(c *fiber.Ctx) error {
	campaigns, err := h.service.List(c.UserContext(), middleware.GetPrincipal(c), c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, campaigns)
}

// Get handles GET /api/campaigns/:id
// @Summary      Get campaign
// @Tags         Campaigns
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200 {object} model.Campaign
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id} [get]
func (h *CampaignHandler) Get(c *fiber.Ctx) error {
	campaign, err := h.service.GetCampaign(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, campaign)
}

// Create handles POST /api/campaigns
// @Summary      Create campaign
// @Description  Store a campaign brief with an empty asset set and notify the generation pipeline
// @Tags         Campaigns
// @Accept       json
// @Produce      json
// @Param        request body model.CampaignInput true "Campaign brief"
// @Success      201 {object} service.CreateCampaignResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns [post]
func (h *CampaignHandler) Create(c *fiber.Ctx) error {
	var req model.CampaignInput
	if err := c.BodyParser(&req); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}

	result, err := h.service.Create(c.UserContext(), middleware.GetPrincipal(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return response.Created(c, result)
}

// Update handles PUT /api/campaigns/:id
// @Summary      Update campaign
// @Description  Merge attribute and status fields into a campaign
// @Tags         Campaigns
// @Accept       json
// @Produce      json
// @Param        id      path string            true "Campaign ID"
// @Param        request body map[string]string true "Fields to merge"
// @Success      200 {object} model.Campaign
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id} [put]
func (h *CampaignHandler) Update(c *fiber.Ctx) error {
	var patch model.Fields
	if err := c.BodyParser(&patch); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if len(patch) == 0 {
		return response.ValidationError(c, "No fields to update", nil)
	}

	campaign, err := h.service.UpdateCampaign(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), patch)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, campaign)
}

// Delete handles DELETE /api/campaigns/:id
// @Summary      Delete campaign
// @Description  Delete a campaign and its asset set
// @Tags         Campaigns
// @Param        id path string true "Campaign ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id} [delete]
func (h *CampaignHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.service.Delete(c.UserContext(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return response.NoContent(c)
}

// Await handles GET /api/campaigns/:id/await
// @Summary      Wait for a status field
// @Description  Long-poll until a status field reads the expected value, "error" or the timeout passes
// @Tags         Campaigns
// @Produce      json
// @Param        id      path  string true  "Campaign ID"
// @Param        field   query string true  "Status field, e.g. images_status"
// @Param        value   query string false "Expected value (default completed)"
// @Param        timeout query string false "Go duration, capped by the server"
// @Success      200 {object} model.Campaign
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      422 {object} response.ErrorResponse
// @Failure      503 {object} response.ErrorResponse
// @Failure      504 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/await [get]
func (h *CampaignHandler) Await(c *fiber.Ctx) error {
	field := c.Query("field")
	if field == "" {
		return response.ValidationError(c, "field is required", nil)
	}
	value := model.StageStatus(c.Query("value", string(model.StageStatusCompleted)))

	timeout := h.awaitMax
	if raw := c.Query("timeout"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return response.ValidationError(c, "Invalid timeout", map[string]string{"timeout": "duration"})
		}
		if d < timeout {
			timeout = d
		}
	}

	campaign, err := h.service.Await(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), field, value, timeout)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, campaign)
}
