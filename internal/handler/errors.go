package handler

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/genaimarketing/api/internal/generation"
	"github.com/genaimarketing/api/internal/model"
	"github.com/genaimarketing/api/internal/service"
	"github.com/genaimarketing/api/internal/store"
	"github.com/genaimarketing/api/pkg/response"
)

// formatValidationErrors maps validator and model errors to field -> rule
func formatValidationErrors(err error) interface{} {
	if validationErrors, ok := err.(validator.ValidationErrors); ok {
		errors := make(map[string]string)
		for _, e := range validationErrors {
			errors[e.Field()] = e.Tag()
		}
		return errors
	}
	var verr *model.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return nil
}

// respondError writes the error envelope matching err
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, model.ErrValidation):
		return response.ValidationError(c, "Validation failed", formatValidationErrors(err))
	case errors.Is(err, store.ErrNotFound):
		return response.NotFound(c, "Record not found")
	case errors.Is(err, service.ErrJobNotFound):
		return response.NotFound(c, "Job not found")
	case errors.Is(err, service.ErrJobFinished):
		return response.Conflict(c, "Job already finished")
	case errors.Is(err, generation.ErrStageFailed):
		return response.StageFailed(c, err.Error())
	case errors.Is(err, generation.ErrStageTimedOut):
		return response.StageTimeout(c, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		return response.StoreUnavailable(c, "Record store unavailable")
	case errors.Is(err, context.Canceled):
		return response.Error(c, fiber.StatusRequestTimeout, response.CodeServiceError, "Request canceled", nil)
	}
	return response.ServiceError(c, err.Error())
}
