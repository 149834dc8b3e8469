package comment

import (
	"context"
	"recipehub/entities"
	"time"

	"gorm.io/gorm"
)

type (
	CommentRepository interface {
		CreateComment(ctx context.Context, comment *entities.Comment) error
		GetCommentByID(ctx context.Context, id string) (*entities.Comment, error)
		UpdateCommentContent(ctx context.Context, id, content string) error
		SoftDeleteComment(ctx context.Context, id string) error
		GetRecipeComments(ctx context.Context, recipeID string) ([]*entities.Comment, error)
	}

	commentRepository struct {
		db *gorm.DB
	}
)

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) CreateComment(ctx context.Context, comment *entities.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) GetCommentByID(ctx context.Context, id string) (*entities.Comment, error) {
	var comment entities.Comment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&comment).Error; err != nil {
		return nil, err
	}
	return &comment, nil
}

// UpdateCommentContent only lands on live comments; a zero row count
// means the comment was tombstoned or removed since it was read.
func (r *commentRepository) UpdateCommentContent(ctx context.Context, id, content string) error {
	res := r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ? AND is_deleted = ?", id, false).
		Updates(map[string]interface{}{
			"content":    content,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// SoftDeleteComment tombstones the comment. The row stays so child replies
// keep a valid parent.
func (r *commentRepository) SoftDeleteComment(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entities.Comment{}).
		Where("id = ?", id).
		Update("is_deleted", true).Error
}

// GetRecipeComments returns every comment of the recipe, tombstones
// included, ordered oldest-first with the id breaking timestamp ties.
// Tree assembly happens in the service.
func (r *commentRepository) GetRecipeComments(ctx context.Context, recipeID string) ([]*entities.Comment, error) {
	var comments []*entities.Comment
	if err := r.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("created_at asc, id asc").
		Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}
