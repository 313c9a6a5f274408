package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/middleware"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/pkg/response"
)

type AssetHandler struct {
	service *service.AssetService
}

func NewAssetHandler(svc *service.AssetService) *AssetHandler {
	return &AssetHandler{service: svc}
}

// List handles GET /api/assets
// @Summary      List asset sets
// @Tags         Assets
// @Produce      json
// @Param        sort query string false "name, -name, created_at, -created_at, asc or desc"
// @Success      200 {array}  model.AssetSet
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/assets [get]
func (h *AssetHandler) List(c *fiber.Ctx) error {
	assets, err := h.service.List(c.UserContext(), middleware.GetPrincipal(c), c.Query("sort"))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, assets)
}

// Get handles GET /api/assets/:id
// @Summary      Get asset set
// @Tags         Assets
// @Produce      json
// @Param        id path string true "Asset set ID"
// @Success      200 {object} model.AssetSet
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/assets/{id} [get]
func (h *AssetHandler) Get(c *fiber.Ctx) error {
	asset, err := h.service.Get(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, asset)
}

// ByCampaign handles GET /api/campaigns/:id/asset
// @Summary      Get the asset set of a campaign
// @Tags         Assets
// @Produce      json
// @Param        id path string true "Campaign ID"
// @Success      200 {object} model.AssetSet
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/campaigns/{id}/asset [get]
func (h *AssetHandler) ByCampaign(c *fiber.Ctx) error {
	asset, err := h.service.GetByCampaign(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, asset)
}

// Update handles PUT /api/assets/:id
// @Summary      Update asset set
// @Description  Merge nested content, e.g. {"captions":{"facebook":"..."}}
// @Tags         Assets
// @Accept       json
// @Produce      json
// @Param        id      path string true "Asset set ID"
// @Param        request body object true "Nested content to merge"
// @Success      200 {object} model.AssetSet
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/assets/{id} [put]
func (h *AssetHandler) Update(c *fiber.Ctx) error {
	var body map[string]any
	if err := c.BodyParser(&body); err != nil {
		return response.ValidationError(c, "Invalid request body", nil)
	}
	if len(body) == 0 {
		return response.ValidationError(c, "No fields to update", nil)
	}

	asset, err := h.service.Update(c.UserContext(), middleware.GetPrincipal(c), c.Params("id"), body)
	if err != nil {
		return respondError(c, err)
	}
	return response.OK(c, asset)
}

// Delete handles DELETE /api/assets/:id
// @Summary      Delete asset set
// @Tags         Assets
// @Param        id path string true "Asset set ID"
// @Success      204
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/assets/{id} [delete]
func (h *AssetHandler) Delete(c *fiber.Ctx) error {
	if _, err := h.service.Delete(c.UserContext(), middleware.GetPrincipal(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return response.NoContent(c)
}
