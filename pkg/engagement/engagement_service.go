package engagement

import (
	"context"
	"errors"
	"recipehub/domain"
	"recipehub/entities"
	"recipehub/pkg/recipe"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const DefaultViewCooldown = time.Hour

type (
	EngagementService interface {
		ToggleLike(ctx context.Context, recipeID string, actor domain.Actor) (domain.ToggleLikeResponse, error)
		ToggleFavorite(ctx context.Context, recipeID string, actor domain.Actor) (domain.ToggleFavoriteResponse, error)
		RecordView(ctx context.Context, recipeID, clientIP string, actor domain.Actor) (domain.RecordViewResponse, error)
		RecipeStats(ctx context.Context, recipeID string, actor domain.Actor) (domain.RecipeStats, error)
	}

	engagementService struct {
		engagementRepository EngagementRepository
		recipeRepository     recipe.RecipeRepository
		viewCooldown         time.Duration
	}
)

func NewEngagementService(engagementRepository EngagementRepository, recipeRepository recipe.RecipeRepository, viewCooldown time.Duration) EngagementService {
	if viewCooldown <= 0 {
		viewCooldown = DefaultViewCooldown
	}
	return &engagementService{
		engagementRepository: engagementRepository,
		recipeRepository:     recipeRepository,
		viewCooldown:         viewCooldown,
	}
}

// visibleRecipe resolves the recipe under the visibility filter, so
// engagement on an unpublished recipe looks like engagement on a missing
// one to anybody but the owner and admins.
func (s *engagementService) visibleRecipe(ctx context.Context, recipeID string, actor domain.Actor) (*entities.Recipe, error) {
	rec, err := s.recipeRepository.GetVisibleRecipeByID(ctx, recipeID, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrRecipeNotFound
		}
		return nil, domain.StorageError(err)
	}
	return rec, nil
}

func (s *engagementService) ToggleLike(ctx context.Context, recipeID string, actor domain.Actor) (domain.ToggleLikeResponse, error) {
	if actor.IsAnonymous() {
		return domain.ToggleLikeResponse{}, domain.ErrUnauthenticated
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return domain.ToggleLikeResponse{}, domain.ErrParseUUID
	}

	rec, err := s.visibleRecipe(ctx, recipeID, actor)
	if err != nil {
		return domain.ToggleLikeResponse{}, err
	}

	liked, total, err := s.engagementRepository.ToggleLike(ctx, rec.ID, userID)
	if domain.IsSerializationConflict(err) {
		liked, total, err = s.engagementRepository.ToggleLike(ctx, rec.ID, userID)
	}
	if err != nil {
		return domain.ToggleLikeResponse{}, domain.StorageError(err)
	}

	return domain.ToggleLikeResponse{Liked: liked, TotalLikes: total}, nil
}

func (s *engagementService) ToggleFavorite(ctx context.Context, recipeID string, actor domain.Actor) (domain.ToggleFavoriteResponse, error) {
	if actor.IsAnonymous() {
		return domain.ToggleFavoriteResponse{}, domain.ErrUnauthenticated
	}
	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, domain.ErrParseUUID
	}

	rec, err := s.visibleRecipe(ctx, recipeID, actor)
	if err != nil {
		return domain.ToggleFavoriteResponse{}, err
	}

	favorited, total, err := s.engagementRepository.ToggleFavorite(ctx, rec.ID, userID)
	if domain.IsSerializationConflict(err) {
		favorited, total, err = s.engagementRepository.ToggleFavorite(ctx, rec.ID, userID)
	}
	if err != nil {
		return domain.ToggleFavoriteResponse{}, domain.StorageError(err)
	}

	return domain.ToggleFavoriteResponse{Favorited: favorited, TotalFavorites: total}, nil
}

// RecordView is the one engagement operation open to anonymous callers.
func (s *engagementService) RecordView(ctx context.Context, recipeID, clientIP string, actor domain.Actor) (domain.RecordViewResponse, error) {
	rec, err := s.visibleRecipe(ctx, recipeID, actor)
	if err != nil {
		return domain.RecordViewResponse{}, err
	}

	view := entities.RecipeView{
		ID:        uuid.New(),
		RecipeID:  rec.ID,
		ClientIP:  clientIP,
		CreatedAt: time.Now(),
	}
	if !actor.IsAnonymous() {
		userID, err := uuid.Parse(actor.UserID)
		if err != nil {
			return domain.RecordViewResponse{}, domain.ErrParseUUID
		}
		view.UserID = &userID
	}

	counted, err := s.engagementRepository.RecordView(ctx, &view, s.viewCooldown)
	if domain.IsSerializationConflict(err) {
		counted, err = s.engagementRepository.RecordView(ctx, &view, s.viewCooldown)
	}
	if err != nil {
		return domain.RecordViewResponse{}, domain.StorageError(err)
	}

	return domain.RecordViewResponse{CountedTowardPopularity: counted}, nil
}

func (s *engagementService) RecipeStats(ctx context.Context, recipeID string, actor domain.Actor) (domain.RecipeStats, error) {
	rec, err := s.visibleRecipe(ctx, recipeID, actor)
	if err != nil {
		return domain.RecipeStats{}, err
	}

	stats, err := s.engagementRepository.GetRecipeStats(ctx, rec.ID.String())
	if err != nil {
		return domain.RecipeStats{}, domain.StorageError(err)
	}
	return stats, nil
}
