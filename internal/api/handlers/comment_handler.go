package handlers

import (
	"recipehub/domain"
	"recipehub/internal/api/presenters"
	"recipehub/pkg/comment"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	CommentHandler interface {
		PostComment(c *fiber.Ctx) error
		GetThread(c *fiber.Ctx) error
		EditComment(c *fiber.Ctx) error
		DeleteComment(c *fiber.Ctx) error
	}

	commentHandler struct {
		commentService comment.CommentService
		validator      *validator.Validate
	}
)

func NewCommentHandler(commentService comment.CommentService, validator *validator.Validate) CommentHandler {
	return &commentHandler{
		commentService: commentService,
		validator:      validator,
	}
}

func (h *commentHandler) PostComment(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")
	req := new(domain.PostCommentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedPostComment, err)
	}

	res, err := h.commentService.PostComment(c.Context(), recipeID, *req, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedPostComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessPostComment)
}

func (h *commentHandler) GetThread(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	recipeID := c.Params("id")

	thread, err := h.commentService.ListThread(c.Context(), recipeID, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetThread, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"comments": thread}, fiber.StatusOK, domain.MessageSuccessGetThread)
}

func (h *commentHandler) EditComment(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	commentID := c.Params("id")
	req := new(domain.EditCommentRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}
	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedEditComment, err)
	}

	res, err := h.commentService.EditComment(c.Context(), commentID, *req, actor)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedEditComment, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessEditComment)
}

func (h *commentHandler) DeleteComment(c *fiber.Ctx) error {
	actor := actorFromContext(c)
	commentID := c.Params("id")

	if err := h.commentService.DeleteComment(c.Context(), commentID, actor); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedDeleteComment, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
