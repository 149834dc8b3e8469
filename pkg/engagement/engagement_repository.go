package engagement

import (
	"context"
	"recipehub/domain"
	"recipehub/entities"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	EngagementRepository interface {
		ToggleLike(ctx context.Context, recipeID, userID uuid.UUID) (bool, int64, error)
		ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, int64, error)
		RecordView(ctx context.Context, view *entities.RecipeView, window time.Duration) (bool, error)
		GetRecipeStats(ctx context.Context, recipeID string) (domain.RecipeStats, error)
	}

	engagementRepository struct {
		db *gorm.DB
	}
)

func NewEngagementRepository(db *gorm.DB) EngagementRepository {
	return &engagementRepository{db: db}
}

// ToggleLike removes the user's like if present, inserts it otherwise, and
// recounts — all in one transaction so concurrent toggles by other users
// cannot produce a stale total. The total is always derived from the rows,
// never kept as a running counter.
func (r *engagementRepository) ToggleLike(ctx context.Context, recipeID, userID uuid.UUID) (bool, int64, error) {
	var liked bool
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Delete(&entities.RecipeLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			like := entities.RecipeLike{
				ID:        uuid.New(),
				RecipeID:  recipeID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&like).Error; err != nil {
				return err
			}
			liked = true
		}
		return tx.Model(&entities.RecipeLike{}).
			Where("recipe_id = ?", recipeID).
			Count(&total).Error
	})
	return liked, total, err
}

func (r *engagementRepository) ToggleFavorite(ctx context.Context, recipeID, userID uuid.UUID) (bool, int64, error) {
	var favorited bool
	var total int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("recipe_id = ? AND user_id = ?", recipeID, userID).
			Delete(&entities.RecipeFavorite{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			favorite := entities.RecipeFavorite{
				ID:        uuid.New(),
				RecipeID:  recipeID,
				UserID:    userID,
				CreatedAt: time.Now(),
			}
			if err := tx.Create(&favorite).Error; err != nil {
				return err
			}
			favorited = true
		}
		return tx.Model(&entities.RecipeFavorite{}).
			Where("recipe_id = ?", recipeID).
			Count(&total).Error
	})
	return favorited, total, err
}

// RecordView appends the view row unconditionally and decides inside the
// same transaction whether it counts toward popularity: it does not when
// the same viewer identity (user id, or client ip for anonymous viewers)
// already has a counted view for this recipe within the cool-down window.
func (r *engagementRepository) RecordView(ctx context.Context, view *entities.RecipeView, window time.Duration) (bool, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cutoff := time.Now().Add(-window)
		q := tx.Model(&entities.RecipeView{}).
			Where("recipe_id = ? AND counted = ? AND created_at > ?", view.RecipeID, true, cutoff)
		if view.UserID != nil {
			q = q.Where("user_id = ?", *view.UserID)
		} else {
			q = q.Where("user_id IS NULL AND client_ip = ?", view.ClientIP)
		}

		var recent int64
		if err := q.Count(&recent).Error; err != nil {
			return err
		}

		view.Counted = recent == 0
		return tx.Create(view).Error
	})
	return view.Counted, err
}

func (r *engagementRepository) GetRecipeStats(ctx context.Context, recipeID string) (domain.RecipeStats, error) {
	var stats domain.RecipeStats

	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeLike{}).
		Where("recipe_id = ?", recipeID).
		Count(&stats.Likes).Error; err != nil {
		return domain.RecipeStats{}, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeFavorite{}).
		Where("recipe_id = ?", recipeID).
		Count(&stats.Favorites).Error; err != nil {
		return domain.RecipeStats{}, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeView{}).
		Where("recipe_id = ?", recipeID).
		Count(&stats.Views).Error; err != nil {
		return domain.RecipeStats{}, err
	}
	if err := r.db.WithContext(ctx).
		Model(&entities.RecipeView{}).
		Where("recipe_id = ? AND counted = ?", recipeID, true).
		Count(&stats.CountedViews).Error; err != nil {
		return domain.RecipeStats{}, err
	}

	return stats, nil
}
