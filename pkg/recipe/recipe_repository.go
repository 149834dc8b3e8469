package recipe

import (
	"context"
	"recipehub/domain"
	"recipehub/entities"

	"gorm.io/gorm"
)

type (
	RecipeRepository interface {
		CreateRecipe(ctx context.Context, recipe *entities.Recipe) error
		GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error)
		GetVisibleRecipeByID(ctx context.Context, id string, actor domain.Actor) (*entities.Recipe, error)
		GetRecipes(ctx context.Context, actor domain.Actor, page, limit int) ([]*entities.Recipe, int64, error)
		GetPopularRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error)
		UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error
		DeleteRecipe(ctx context.Context, id string) error
		TransitionStatus(ctx context.Context, id, from, to, reviewNote string) (bool, error)
	}

	recipeRepository struct {
		db *gorm.DB
	}
)

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) CreateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Create(recipe).Error
}

func (r *recipeRepository) GetRecipeByID(ctx context.Context, id string) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Preload("User").
		Where("id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// visibleScope is the hard filter every non-privileged read goes through:
// unpublished recipes exist only for their owner and admins.
func visibleScope(actor domain.Actor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if actor.IsAdmin() {
			return db
		}
		if actor.IsAnonymous() {
			return db.Where("recipes.status = ?", entities.RecipeStatusPublished)
		}
		return db.Where("recipes.status = ? OR recipes.user_id = ?", entities.RecipeStatusPublished, actor.UserID)
	}
}

func (r *recipeRepository) GetVisibleRecipeByID(ctx context.Context, id string, actor domain.Actor) (*entities.Recipe, error) {
	var recipe entities.Recipe
	if err := r.db.WithContext(ctx).
		Scopes(visibleScope(actor)).
		Where("recipes.id = ?", id).
		First(&recipe).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) GetRecipes(ctx context.Context, actor domain.Actor, page, limit int) ([]*entities.Recipe, int64, error) {
	var recipes []*entities.Recipe
	var count int64
	offset := (page - 1) * limit

	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Scopes(visibleScope(actor)).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Scopes(visibleScope(actor)).
		Offset(offset).
		Limit(limit).
		Order("created_at desc").
		Find(&recipes).Error; err != nil {
		return nil, 0, err
	}

	return recipes, count, nil
}

func (r *recipeRepository) GetPopularRecipes(ctx context.Context, limit int) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	if err := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Select("recipes.*, " +
			"(SELECT COUNT(*) FROM recipe_views v WHERE v.recipe_id = recipes.id AND v.counted) + " +
			"(SELECT COUNT(*) FROM recipe_likes l WHERE l.recipe_id = recipes.id) AS popularity").
		Where("recipes.status = ?", entities.RecipeStatusPublished).
		Order("popularity desc").
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

func (r *recipeRepository) UpdateRecipe(ctx context.Context, recipe *entities.Recipe) error {
	return r.db.WithContext(ctx).Save(recipe).Error
}

// DeleteRecipe removes the recipe and all engagement rows hanging off it in
// one transaction, so no orphaned comments or counters survive.
func (r *recipeRepository) DeleteRecipe(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeLike{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeFavorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&entities.RecipeView{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&entities.Recipe{}).Error
	})
}

// TransitionStatus is a check-and-set: the update only lands if the stored
// status still equals the status the transition was validated against. A
// false return means a concurrent transition won.
func (r *recipeRepository) TransitionStatus(ctx context.Context, id, from, to, reviewNote string) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&entities.Recipe{}).
		Where("id = ? AND status = ?", id, from).
		Updates(map[string]interface{}{
			"status":      to,
			"review_note": reviewNote,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
