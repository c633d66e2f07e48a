package models

import (
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// CatalogRecipe is the PostgreSQL row backing the public browse pages.
// Chef-published recipes with public visibility are copied here so the
// catalog can be queried without scanning the user collection.
type CatalogRecipe struct {
	ID          int64          `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:text;not null" json:"title"`
	Image       string         `gorm:"type:text" json:"image,omitempty"`
	Ingredients pq.StringArray `gorm:"type:text[]" json:"ingredients"`
	Steps       pq.StringArray `gorm:"type:text[]" json:"steps"`
	PrepTime    int            `json:"prepTime"`
	CookTime    int            `json:"cookTime"`
	Category    string         `gorm:"index" json:"category"`
	Servings    int            `json:"servings"`
	Visibility  string         `json:"visibility"`
	ChefID      int64          `gorm:"index" json:"chefId"`
	ChefName    string         `json:"chefName"`
	Likes       int            `json:"likes"`
	Views       int            `json:"views"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Order represents a dish order placed by a visitor with a chef.
// The embedded gorm.Model provides ID, CreatedAt, UpdatedAt, and DeletedAt.
type Order struct {
	gorm.Model

	RecipeID    int64  `gorm:"index;not null"`
	RecipeTitle string `gorm:"type:text"`
	VisitorID   int64  `gorm:"index;not null"`
	VisitorName string `gorm:"type:text"`
	ChefID      int64  `gorm:"index;not null"`
	Quantity    int    `gorm:"not null"`
	Note        string `gorm:"type:text"`
	// Status is one of "pending", "accepted", "declined", "completed".
	Status string `gorm:"type:text;not null"`
}
