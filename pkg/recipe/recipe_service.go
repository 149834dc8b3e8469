package recipe

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"recipehub/domain"
	"recipehub/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, actor domain.Actor) (domain.RecipeDetail, error)
		GetRecipeDetail(ctx context.Context, recipeID string, actor domain.Actor) (domain.RecipeDetail, error)
		GetRecipes(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Recipe, int64, error)
		GetPopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error)
		UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, actor domain.Actor) (domain.RecipeDetail, error)
		DeleteRecipe(ctx context.Context, recipeID string, actor domain.Actor) error
		UploadRecipeImage(ctx context.Context, recipeID string, file *multipart.FileHeader, actor domain.Actor) (string, error)
		Transition(ctx context.Context, recipeID, event, reason string, actor domain.Actor) (domain.TransitionResponse, error)
	}

	// Mailer delivers review outcome notifications. Delivery is best
	// effort and never fails a transition.
	Mailer interface {
		Send(toEmail, subject, body string) error
	}

	// Uploader stores recipe images and returns their public URL.
	Uploader interface {
		UploadFile(ctx context.Context, key string, file *multipart.FileHeader) (string, error)
	}

	recipeService struct {
		recipeRepository RecipeRepository
		mailer           Mailer
		uploader         Uploader
	}
)

func NewRecipeService(recipeRepository RecipeRepository, mailer Mailer, uploader Uploader) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		mailer:           mailer,
		uploader:         uploader,
	}
}

func (s *recipeService) CreateRecipe(ctx context.Context, req domain.CreateRecipeRequest, actor domain.Actor) (domain.RecipeDetail, error) {
	if actor.IsAnonymous() {
		return domain.RecipeDetail{}, domain.ErrUnauthenticated
	}

	userID, err := uuid.Parse(actor.UserID)
	if err != nil {
		return domain.RecipeDetail{}, domain.ErrParseUUID
	}

	recipe := entities.Recipe{
		ID:              uuid.New(),
		UserID:          userID,
		Title:           req.Title,
		Description:     req.Description,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		DifficultyLevel: req.DifficultyLevel,
		CuisineType:     req.CuisineType,
		Ingredients:     req.Ingredients,
		Instructions:    req.Instructions,
		Calories:        req.Calories,
		Protein:         req.Protein,
		Carbohydrates:   req.Carbohydrates,
		Fat:             req.Fat,
		Fiber:           req.Fiber,
		Status:          entities.RecipeStatusDraft,
	}

	if err := s.recipeRepository.CreateRecipe(ctx, &recipe); err != nil {
		return domain.RecipeDetail{}, domain.StorageError(err)
	}

	return toRecipeDetail(&recipe, actor), nil
}

func (s *recipeService) GetRecipeDetail(ctx context.Context, recipeID string, actor domain.Actor) (domain.RecipeDetail, error) {
	recipe, err := s.recipeRepository.GetVisibleRecipeByID(ctx, recipeID, actor)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, domain.StorageError(err)
	}
	return toRecipeDetail(recipe, actor), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, actor domain.Actor, page, limit int) ([]domain.Recipe, int64, error) {
	recipes, count, err := s.recipeRepository.GetRecipes(ctx, actor, page, limit)
	if err != nil {
		return nil, 0, domain.StorageError(err)
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipe(recipe))
	}
	return result, count, nil
}

func (s *recipeService) GetPopularRecipes(ctx context.Context, limit int) ([]domain.Recipe, error) {
	recipes, err := s.recipeRepository.GetPopularRecipes(ctx, limit)
	if err != nil {
		return nil, domain.StorageError(err)
	}

	result := make([]domain.Recipe, 0, len(recipes))
	for _, recipe := range recipes {
		result = append(result, toRecipe(recipe))
	}
	return result, nil
}

func (s *recipeService) UpdateRecipe(ctx context.Context, recipeID string, req domain.UpdateRecipeRequest, actor domain.Actor) (domain.RecipeDetail, error) {
	if actor.IsAnonymous() {
		return domain.RecipeDetail{}, domain.ErrUnauthenticated
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.RecipeDetail{}, domain.ErrRecipeNotFound
		}
		return domain.RecipeDetail{}, domain.StorageError(err)
	}

	if !actor.CanModerate(recipe.UserID.String()) {
		return domain.RecipeDetail{}, domain.ErrForbidden
	}
	if recipe.Status != entities.RecipeStatusDraft {
		return domain.RecipeDetail{}, domain.ErrRecipeNotEditable
	}

	if req.Title != "" {
		recipe.Title = req.Title
	}
	recipe.Description = req.Description
	recipe.PrepTimeMinutes = req.PrepTimeMinutes
	recipe.CookTimeMinutes = req.CookTimeMinutes
	recipe.Servings = req.Servings
	recipe.DifficultyLevel = req.DifficultyLevel
	recipe.CuisineType = req.CuisineType
	recipe.Ingredients = req.Ingredients
	recipe.Instructions = req.Instructions
	recipe.Calories = req.Calories
	recipe.Protein = req.Protein
	recipe.Carbohydrates = req.Carbohydrates
	recipe.Fat = req.Fat
	recipe.Fiber = req.Fiber

	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return domain.RecipeDetail{}, domain.StorageError(err)
	}
	return toRecipeDetail(recipe, actor), nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, recipeID string, actor domain.Actor) error {
	if actor.IsAnonymous() {
		return domain.ErrUnauthenticated
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return domain.StorageError(err)
	}

	if !actor.CanModerate(recipe.UserID.String()) {
		return domain.ErrForbidden
	}

	if err := s.recipeRepository.DeleteRecipe(ctx, recipeID); err != nil {
		return domain.StorageError(err)
	}
	return nil
}

func (s *recipeService) UploadRecipeImage(ctx context.Context, recipeID string, file *multipart.FileHeader, actor domain.Actor) (string, error) {
	if actor.IsAnonymous() {
		return "", domain.ErrUnauthenticated
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", domain.ErrRecipeNotFound
		}
		return "", domain.StorageError(err)
	}

	if !actor.CanModerate(recipe.UserID.String()) {
		return "", domain.ErrForbidden
	}

	key := fmt.Sprintf("recipes/%s/%s", recipe.ID.String(), file.Filename)
	url, err := s.uploader.UploadFile(ctx, key, file)
	if err != nil {
		return "", err
	}

	recipe.ImageURL = url
	if err := s.recipeRepository.UpdateRecipe(ctx, recipe); err != nil {
		return "", domain.StorageError(err)
	}
	return url, nil
}

// Transition validates and fires a workflow event. The status write is a
// check-and-set; when a concurrent transition wins, the event is
// re-evaluated once against the fresh status before failing.
func (s *recipeService) Transition(ctx context.Context, recipeID, event, reason string, actor domain.Actor) (domain.TransitionResponse, error) {
	if actor.IsAnonymous() {
		return domain.TransitionResponse{}, domain.ErrUnauthenticated
	}

	tr, ok := workflowTransitions[event]
	if !ok {
		return domain.TransitionResponse{}, domain.ErrInvalidTransition
	}

	recipe, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.TransitionResponse{}, domain.ErrRecipeNotFound
		}
		return domain.TransitionResponse{}, domain.StorageError(err)
	}

	if !tr.authorized(actor, recipe.UserID.String()) {
		return domain.TransitionResponse{}, domain.ErrForbidden
	}
	if recipe.Status != tr.From {
		return domain.TransitionResponse{}, fmt.Errorf("%w: cannot %s from %s", domain.ErrInvalidTransition, event, recipe.Status)
	}

	note := reason
	if tr.ClearNote {
		note = ""
	}

	updated, err := s.recipeRepository.TransitionStatus(ctx, recipeID, tr.From, tr.To, note)
	if err != nil {
		if domain.IsSerializationConflict(err) {
			updated, err = s.recipeRepository.TransitionStatus(ctx, recipeID, tr.From, tr.To, note)
		}
		if err != nil {
			return domain.TransitionResponse{}, domain.StorageError(err)
		}
	}
	if !updated {
		// Lost the race: report the transition against what actually
		// happened, not the stale read.
		fresh, err := s.recipeRepository.GetRecipeByID(ctx, recipeID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.TransitionResponse{}, domain.ErrRecipeNotFound
			}
			return domain.TransitionResponse{}, domain.StorageError(err)
		}
		return domain.TransitionResponse{}, fmt.Errorf("%w: cannot %s from %s", domain.ErrInvalidTransition, event, fresh.Status)
	}

	s.notifyReviewOutcome(recipe, event, reason)

	return domain.TransitionResponse{ID: recipeID, Status: tr.To}, nil
}

func (s *recipeService) notifyReviewOutcome(recipe *entities.Recipe, event, reason string) {
	if s.mailer == nil || recipe.User == nil || recipe.User.Email == "" {
		return
	}

	var subject, body string
	switch event {
	case domain.EventApprove:
		subject = "Your recipe has been published"
		body = fmt.Sprintf("<p>Good news! Your recipe <b>%s</b> passed review and is now live.</p>", recipe.Title)
	case domain.EventReject:
		subject = "Your recipe needs changes"
		body = fmt.Sprintf("<p>Your recipe <b>%s</b> was sent back to draft.</p><p>Reviewer note: %s</p>", recipe.Title, reason)
	default:
		return
	}

	if err := s.mailer.Send(recipe.User.Email, subject, body); err != nil {
		log.Printf("failed to send review notification for recipe %s: %v", recipe.ID, err)
	}
}

func toRecipe(recipe *entities.Recipe) domain.Recipe {
	return domain.Recipe{
		ID:              recipe.ID.String(),
		UserID:          recipe.UserID.String(),
		Title:           recipe.Title,
		Description:     recipe.Description,
		ImageURL:        recipe.ImageURL,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		DifficultyLevel: recipe.DifficultyLevel,
		CuisineType:     recipe.CuisineType,
		Status:          recipe.Status,
		CreatedAt:       recipe.CreatedAt,
		UpdatedAt:       recipe.UpdatedAt,
	}
}

func toRecipeDetail(recipe *entities.Recipe, actor domain.Actor) domain.RecipeDetail {
	detail := domain.RecipeDetail{
		Recipe:       toRecipe(recipe),
		Ingredients:  recipe.Ingredients,
		Instructions: recipe.Instructions,
		Nutrition: domain.NutritionFacts{
			Calories:      recipe.Calories,
			Protein:       recipe.Protein,
			Carbohydrates: recipe.Carbohydrates,
			Fat:           recipe.Fat,
			Fiber:         recipe.Fiber,
		},
	}
	// The review note is owner/admin feedback, not public content.
	if actor.CanModerate(recipe.UserID.String()) {
		detail.ReviewNote = recipe.ReviewNote
	}
	return detail
}
