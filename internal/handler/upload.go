package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/middleware"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/pkg/response"
)

type UploadHandler struct {
	service *service.UploadService
}

func NewUploadHandler(svc *service.UploadService) *UploadHandler {
	return &UploadHandler{service: svc}
}

// Creative handles POST /api/assets/:id/creative
// @Summary      Upload creative
// @Description  Upload an image, banner or video file into one slot of an asset set
// @Tags         Assets
// @Accept       multipart/form-data
// @Produce      json
// @Param        id   path     string true "Asset set ID"
// @Param        slot formData string true "Slot, e.g. images.url, ads.billboard.billBoard1, video_ad.video_url"
// @Param        file formData file   true "PNG, JPEG, WEBP, GIF (max 10MB) or MP4, WEBM, MOV (max 100MB)"
// @Success      201 {object} model.CreativeUploadResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      401 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse
// @Failure      429 {object} response.ErrorResponse
// @Failure      500 {object} response.ErrorResponse
// @Security     BearerAuth
// @Router       /api/assets/{id}/creative [post]
func (h *UploadHandler) Creative(c *fiber.Ctx) error {
	slot := model.CreativeSlot(c.FormValue("slot"))
	if slot == "" {
		return response.ValidationError(c, "slot is required", nil)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.ValidationError(c, "File is required", nil)
	}

	contentType := file.Header.Get("Content-Type")
	if _, err := service.ValidateCreative(slot, contentType, file.Size); err != nil {
		return response.ValidationError(c, "Invalid creative", map[string]interface{}{
			"slot":        slot,
			"contentType": contentType,
			"fileSize":    file.Size,
		})
	}

	f, err := file.Open()
	if err != nil {
		return response.ServiceError(c, "Failed to open file")
	}
	defer f.Close()

	result, err := h.service.UploadCreative(c.UserContext(), middleware.GetPrincipal(c), service.CreativeUpload{
		AssetID:     c.Params("id"),
		Slot:        slot,
		ContentType: contentType,
		Size:        file.Size,
		Body:        f,
	})
	if err != nil {
		return respondError(c, err)
	}

	return response.Created(c, result)
}
