package entities

import (
	"github.com/google/uuid"
)

const (
	RecipeStatusDraft         = "draft"
	RecipeStatusProcessing    = "processing"
	RecipeStatusPendingReview = "pending_review"
	RecipeStatusPublished     = "published"
)

type Recipe struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID          uuid.UUID `gorm:"index" json:"user_id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ImageURL        string    `json:"image_url,omitempty"`
	PrepTimeMinutes int       `json:"prep_time_minutes"`
	CookTimeMinutes int       `json:"cook_time_minutes"`
	Servings        int       `json:"servings"`
	DifficultyLevel string    `json:"difficulty_level"`
	CuisineType     string    `json:"cuisine_type"`
	Ingredients     string    `json:"ingredients" gorm:"type:text"`
	Instructions    string    `json:"instructions" gorm:"type:text"`
	Calories        int       `json:"calories"`
	Protein         int       `json:"protein"`
	Carbohydrates   int       `json:"carbohydrates"`
	Fat             int       `json:"fat"`
	Fiber           int       `json:"fiber"`
	Status          string    `gorm:"default:draft;index" json:"status"`
	ReviewNote      string    `json:"review_note,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
