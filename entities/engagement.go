package entities

import (
	"github.com/google/uuid"
	"time"
)

type RecipeLike struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_recipe_likes_user" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_recipe_likes_user" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserID"`
}

type RecipeFavorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID `gorm:"uniqueIndex:idx_recipe_favorites_user" json:"recipe_id"`
	UserID    uuid.UUID `gorm:"uniqueIndex:idx_recipe_favorites_user" json:"user_id"`
	CreatedAt time.Time `gorm:"type:timestamp" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserID"`
}

// RecipeView is an append-only log. Counted marks whether the view passed
// the cool-down dedup when it was recorded; popularity reads only count
// rows with Counted = true.
type RecipeView struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID  `gorm:"index" json:"recipe_id"`
	UserID    *uuid.UUID `gorm:"index" json:"user_id,omitempty"`
	ClientIP  string     `json:"client_ip"`
	Counted   bool       `gorm:"default:false" json:"counted"`
	CreatedAt time.Time  `gorm:"type:timestamp;index" json:"created_at"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserID"`
}
