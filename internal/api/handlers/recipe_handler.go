package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/recipe"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	RecipeHandler interface {
		CreateRecipe(c *fiber.Ctx) error
		GetRecipes(c *fiber.Ctx) error
		GetPopularRecipes(c *fiber.Ctx) error
		GetRecipeDetail(c *fiber.Ctx) error
		UpdateRecipe(c *fiber.Ctx) error
		DeleteRecipe(c *fiber.Ctx) error
		UploadRecipeImage(c *fiber.Ctx) error

		SubmitRecipe(c *fiber.Ctx) error
		RecipeChecks(c *fiber.Ctx) error
		ApproveRecipe(c *fiber.Ctx) error
		RejectRecipe(c *fiber.Ctx) error
		UnpublishRecipe(c *fiber.Ctx) error
	}

	recipeHandler struct {
		recipeService recipe.RecipeService
		validator     *validator.Validate
	}
)

func NewRecipeHandler(recipeService recipe.RecipeService, validator *validator.Validate) RecipeHandler {
	return &recipeHandler{
		recipeService: recipeService,
		validator:     validator,
	}
}

// actorFromContext reads the identity the auth middleware attached. With
// the optional middleware both locals may be absent, which means an
// anonymous caller.
func actorFromContext(c *fiber.Ctx) domain.Actor {
	actor := domain.Actor{}
	if userID, ok := c.Locals("user_id").(string); ok {
		actor.UserID = userID
	}
	if role, ok := c.Locals("role").(string); ok {
		actor.Role = role
	}
	return actor
}

func (h *recipeHandler) CreateRecipe(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	req := new(domain.CreateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateRecipe, err)
	}

	res, err := h.recipeService.CreateRecipe(c.Context(), *req, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedCreateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateRecipe)
}

func (h *recipeHandler) GetRecipes(c *fiber.Ctx) error {
	actor := actorFromContext(c)

	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	recipes, count, err := h.recipeService.GetRecipes(c.Context(), actor, page, limit)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{
		"recipes": recipes,
		"pagination": fiber.Map{
			"page":        page,
			"limit":       limit,
			"total":       count,
			"total_pages": (count + int64(limit) - 1) / int64(limit),
		},
	}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetPopularRecipes(c *fiber.Ctx) error {
	limit, err := strconv.Atoi(c.Query("limit", "20"))
	if err != nil || limit < 1 {
		limit = 20
	}

	recipes, err := h.recipeService.GetPopularRecipes(c.Context(), limit)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetRecipes, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"recipes": recipes}, fiber.StatusOK, domain.MessageSuccessGetRecipes)
}

func (h *recipeHandler) GetRecipeDetail(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	res, err := h.recipeService.GetRecipeDetail(c.Context(), recipeID, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetRecipeDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetRecipeDetail)
}

func (h *recipeHandler) UpdateRecipe(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")
	req := new(domain.UpdateRecipeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateRecipe, err)
	}

	res, err := h.recipeService.UpdateRecipe(c.Context(), recipeID, *req, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedUpdateRecipe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateRecipe)
}

func (h *recipeHandler) DeleteRecipe(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	if err := h.recipeService.DeleteRecipe(c.Context(), recipeID, actor); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedDeleteRecipe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteRecipe)
}

func (h *recipeHandler) UploadRecipeImage(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	file, err := c.FormFile("image")
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	url, err := h.recipeService.UploadRecipeImage(c.Context(), recipeID, file, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedUploadImage, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"image_url": url}, fiber.StatusOK, domain.MessageSuccessUploadImage)
}

func (h *recipeHandler) transition(c *fiber.Ctx, event, reason string) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	res, err := h.recipeService.Transition(c.Context(), recipeID, event, reason, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedTransition, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessTransition)
}

func (h *recipeHandler) SubmitRecipe(c *fiber.Ctx) error {
	return h.transition(c, domain.EventSubmit, "")
}

// RecipeChecks reports the outcome of the automated content checks that
// run while a recipe is in processing.
func (h *recipeHandler) RecipeChecks(c *fiber.Ctx) error {
	req := struct {
		Passed bool   `json:"passed"`
		Reason string `json:"reason"`
	}{}
	if err := c.BodyParser(&req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	event := domain.EventChecksPassed
	if !req.Passed {
		event = domain.EventChecksFailed
	}
	return h.transition(c, event, req.Reason)
}

func (h *recipeHandler) ApproveRecipe(c *fiber.Ctx) error {
	return h.transition(c, domain.EventApprove, "")
}

func (h *recipeHandler) RejectRecipe(c *fiber.Ctx) error {
	req := new(domain.RejectRecipeRequest)
	// the reason is optional; an absent body means an empty reason
	if len(c.Body()) > 0 {
		if err := c.BodyParser(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
		}
		if err := h.validator.Struct(req); err != nil {
			return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedTransition, err)
		}
	}
	return h.transition(c, domain.EventReject, req.Reason)
}

func (h *recipeHandler) UnpublishRecipe(c *fiber.Ctx) error {
	return h.transition(c, domain.EventUnpublish, "")
}
