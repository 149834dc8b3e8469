package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/engagement"

	"github.com/gofiber/fiber/v2"
)

type (
	EngagementHandler interface {
		ToggleLike(c *fiber.Ctx) error
		ToggleFavorite(c *fiber.Ctx) error
		RecordView(c *fiber.Ctx) error
		GetRecipeStats(c *fiber.Ctx) error
	}

	engagementHandler struct {
		engagementService engagement.EngagementService
	}
)

func NewEngagementHandler(engagementService engagement.EngagementService) EngagementHandler {
	return &engagementHandler{engagementService: engagementService}
}

func (h *engagementHandler) ToggleLike(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	res, err := h.engagementService.ToggleLike(c.Context(), recipeID, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedToggleLike, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleLike)
}

func (h *engagementHandler) ToggleFavorite(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	res, err := h.engagementService.ToggleFavorite(c.Context(), recipeID, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedToggleFavorite, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessToggleFavorite)
}

func (h *engagementHandler) RecordView(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	res, err := h.engagementService.RecordView(c.Context(), recipeID, c.IP(), actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedRecordView, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessRecordView)
}

func (h *engagementHandler) GetRecipeStats(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	res, err := h.engagementService.RecipeStats(c.Context(), recipeID, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetStats, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetStats)
}
