package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessUploadImage     = "recipe image uploaded successfully"
	MessageSuccessTransition      = "recipe status updated successfully"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedUploadImage     = "failed to upload recipe image"
	MessageFailedTransition      = "failed to update recipe status"

	ErrRecipeNotFound    = errors.New("recipe not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrRecipeNotEditable = errors.New("only draft recipes can be edited")
)

// Workflow events. Submit and Unpublish are caller-facing; the checks
// events report the outcome of the automated content checks.
const (
	EventSubmit       = "submit"
	EventChecksPassed = "checks_passed"
	EventChecksFailed = "checks_failed"
	EventApprove      = "approve"
	EventReject       = "reject"
	EventUnpublish    = "unpublish"
)

type (
	CreateRecipeRequest struct {
		Title           string `json:"title" validate:"required,min=3,max=200"`
		Description     string `json:"description" validate:"max=2000"`
		PrepTimeMinutes int    `json:"prep_time_minutes" validate:"gte=0"`
		CookTimeMinutes int    `json:"cook_time_minutes" validate:"gte=0"`
		Servings        int    `json:"servings" validate:"gte=0"`
		DifficultyLevel string `json:"difficulty_level"`
		CuisineType     string `json:"cuisine_type"`
		Ingredients     string `json:"ingredients"`
		Instructions    string `json:"instructions"`
		Calories        int    `json:"calories" validate:"gte=0"`
		Protein         int    `json:"protein" validate:"gte=0"`
		Carbohydrates   int    `json:"carbohydrates" validate:"gte=0"`
		Fat             int    `json:"fat" validate:"gte=0"`
		Fiber           int    `json:"fiber" validate:"gte=0"`
	}

	UpdateRecipeRequest struct {
		Title           string `json:"title" validate:"omitempty,min=3,max=200"`
		Description     string `json:"description" validate:"max=2000"`
		PrepTimeMinutes int    `json:"prep_time_minutes" validate:"gte=0"`
		CookTimeMinutes int    `json:"cook_time_minutes" validate:"gte=0"`
		Servings        int    `json:"servings" validate:"gte=0"`
		DifficultyLevel string `json:"difficulty_level"`
		CuisineType     string `json:"cuisine_type"`
		Ingredients     string `json:"ingredients"`
		Instructions    string `json:"instructions"`
		Calories        int    `json:"calories" validate:"gte=0"`
		Protein         int    `json:"protein" validate:"gte=0"`
		Carbohydrates   int    `json:"carbohydrates" validate:"gte=0"`
		Fat             int    `json:"fat" validate:"gte=0"`
		Fiber           int    `json:"fiber" validate:"gte=0"`
	}

	RejectRecipeRequest struct {
		Reason string `json:"reason" validate:"max=1000"`
	}

	Recipe struct {
		ID              string    `json:"id"`
		UserID          string    `json:"user_id"`
		Title           string    `json:"title"`
		Description     string    `json:"description"`
		ImageURL        string    `json:"image_url,omitempty"`
		PrepTimeMinutes int       `json:"prep_time_minutes"`
		CookTimeMinutes int       `json:"cook_time_minutes"`
		Servings        int       `json:"servings"`
		DifficultyLevel string    `json:"difficulty_level"`
		CuisineType     string    `json:"cuisine_type"`
		Status          string    `json:"status"`
		CreatedAt       time.Time `json:"created_at"`
		UpdatedAt       time.Time `json:"updated_at"`
	}

	RecipeDetail struct {
		Recipe
		Ingredients  string         `json:"ingredients"`
		Instructions string         `json:"instructions"`
		Nutrition    NutritionFacts `json:"nutrition_facts"`
		ReviewNote   string         `json:"review_note,omitempty"`
	}

	NutritionFacts struct {
		Calories      int `json:"calories"`
		Protein       int `json:"protein"`
		Carbohydrates int `json:"carbohydrates"`
		Fat           int `json:"fat"`
		Fiber         int `json:"fiber"`
	}

	TransitionResponse struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
)
