package comment

import (
	"context"
	"errors"
	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/recipe"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CommentService interface {
		PostComment(ctx context.Context, recipeID string, req domain.PostCommentRequest, actor domain.Actor) (domain.Comment, error)
		EditComment(ctx context.Context, commentID string, req domain.EditCommentRequest, actor domain.Actor) (domain.Comment, error)
		DeleteComment(ctx context.Context, commentID string, actor domain.Actor) error
		ListThread(ctx context.Context, recipeID string, actor domain.Actor) ([]domain.CommentNode, error)
	}

	commentService struct {
		commentRepository CommentRepository
		recipeRepository  recipe.RecipeRepository
	}
)

func NewCommentService(commentRepository CommentRepository, recipeRepository recipe.RecipeRepository) CommentService {
	return &commentService{
		commentRepository: commentRepository,
		recipeRepository:  recipeRepository,
	}
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" || len(content) > domain.MaxCommentLength {
		return "", domain.ErrInvalidContent
	}
	return content, nil
}

func (s *commentService) PostComment(ctx context.Context, recipeID string, req domain.PostCommentRequest, actor domain.Actor) (domain.Comment, error) {
	if actor.IsAnonymous() {
		return domain.Comment{}, domain.ErrUnauthenticated
	}

	content, err := validateContent(req.Content)
	if err != nil {
		return domain.Comment{}, err
	}

	authorID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return domain.Comment{}, domain.ErrParseUUID
	}

	// Commenting requires the recipe to be visible to the actor; an
	// unpublished recipe must look like it does not exist.
	rec, err := s.recipeRepository.GetVisibleRecipeByID(ctx, recipeID, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrRecipeNotFound
		}
		return domain.Comment{}, domain.StorageError(err)
	}

	var parentID *uuid.UUID
	if req.ParentID != "" {
		parent, err := s.commentRepository.GetCommentByID(ctx, req.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.Comment{}, domain.ErrCommentNotFound
			}
			return domain.Comment{}, domain.StorageError(err)
		}
		if parent.RecipeID != rec.ID {
			return domain.Comment{}, domain.ErrCrossRecipeParent
		}
		parentID = &parent.ID
	}

	comment := entities.Comment{
		ID:       uuid.New(),
		RecipeID: rec.ID,
		UserID:   authorID,
		ParentID: parentID,
		Content:  content,
	}

	if err := s.commentRepository.CreateComment(ctx, &comment); err != nil {
		return domain.Comment{}, domain.StorageError(err)
	}
	return toComment(&comment), nil
}

func (s *commentService) EditComment(ctx context.Context, commentID string, req domain.EditCommentRequest, actor domain.Actor) (domain.Comment, error) {
	if actor.IsAnonymous() {
		return domain.Comment{}, domain.ErrUnauthenticated
	}

	content, err := validateContent(req.Content)
	if err != nil {
		return domain.Comment{}, err
	}

	comment, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrCommentNotFound
		}
		return domain.Comment{}, domain.StorageError(err)
	}
	if comment.IsDeleted {
		return domain.Comment{}, domain.ErrCommentNotFound
	}
	if !actor.CanModerate(comment.UserID.String()) {
		return domain.Comment{}, domain.ErrForbidden
	}

	if err := s.commentRepository.UpdateCommentContent(ctx, commentID, content); err != nil {
		// a concurrent delete between the read and the guarded update
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Comment{}, domain.ErrCommentNotFound
		}
		return domain.Comment{}, domain.StorageError(err)
	}

	updated, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		return domain.Comment{}, domain.StorageError(err)
	}
	return toComment(updated), nil
}

func (s *commentService) DeleteComment(ctx context.Context, commentID string, actor domain.Actor) error {
	if actor.IsAnonymous() {
		return domain.ErrUnauthenticated
	}

	comment, err := s.commentRepository.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCommentNotFound
		}
		return domain.StorageError(err)
	}
	if comment.IsDeleted {
		return domain.ErrCommentNotFound
	}
	if !actor.CanModerate(comment.UserID.String()) {
		return domain.ErrForbidden
	}

	if err := s.commentRepository.SoftDeleteComment(ctx, commentID); err != nil {
		return domain.StorageError(err)
	}
	return nil
}

// ListThread returns the recipe's nested comment thread, tombstones
// included, ordered oldest-first at every level.
func (s *commentService) ListThread(ctx context.Context, recipeID string, actor domain.Actor) ([]domain.CommentNode, error) {
	rec, err := s.recipeRepository.GetVisibleRecipeByID(ctx, recipeID, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.StorageError(err)
	}

	comments, err := s.commentRepository.GetRecipeComments(ctx, rec.ID.String())
	if err != nil {
		return nil, domain.StorageError(err)
	}

	return buildThread(comments), nil
}

// buildThread assembles the nested thread bottom-up: children are grouped
// by parent id first, then each node is materialized depth-first so reply
// slices are complete before they are attached.
func buildThread(comments []*entities.Comment) []domain.CommentNode {
	children := make(map[uuid.UUID][]*entities.Comment)
	var roots []*entities.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
		} else {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}

	var materialize func(c *entities.Comment) domain.CommentNode
	materialize = func(c *entities.Comment) domain.CommentNode {
		node := domain.CommentNode{
			Comment:    toComment(c),
			ReplyCount: len(children[c.ID]),
			Replies:    []domain.CommentNode{},
		}
		for _, child := range children[c.ID] {
			node.Replies = append(node.Replies, materialize(child))
		}
		return node
	}

	thread := make([]domain.CommentNode, 0, len(roots))
	for _, root := range roots {
		thread = append(thread, materialize(root))
	}
	return thread
}

func toComment(c *entities.Comment) domain.Comment {
	comment := domain.Comment{
		ID:        c.ID.String(),
		RecipeID:  c.RecipeID.String(),
		UserID:    c.UserID.String(),
		Content:   c.Content,
		Deleted:   c.IsDeleted,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.ParentID != nil {
		comment.ParentID = c.ParentID.String()
	}
	// Tombstones keep their place in the tree but never their content.
	if c.IsDeleted {
		comment.Content = ""
	}
	return comment
}
