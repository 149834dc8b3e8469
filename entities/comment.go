package entities

import (
	"github.com/google/uuid"
)

// Comment is an adjacency-list node: ParentID is nil for top-level comments
// and never changes after creation. Deleted comments stay in the table as
// tombstones so reply subtrees keep their anchor.
type Comment struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	RecipeID  uuid.UUID  `gorm:"index" json:"recipe_id"`
	UserID    uuid.UUID  `json:"user_id"`
	ParentID  *uuid.UUID `gorm:"index" json:"parent_id,omitempty"`
	Content   string     `gorm:"type:text" json:"content"`
	IsDeleted bool       `gorm:"default:false" json:"is_deleted"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	User   *User   `gorm:"foreignKey:UserID"`
	Timestamp
}
