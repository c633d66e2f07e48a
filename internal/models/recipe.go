package models

import "time"

// Recipe is a dish published by a chef, embedded in the chef's user record.
type Recipe struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Image       string   `json:"image,omitempty"`
	Ingredients []string `json:"ingredients"`
	Steps       []string `json:"steps"`
	// PrepTime and CookTime are minutes.
	PrepTime   int       `json:"prepTime"`
	CookTime   int       `json:"cookTime"`
	Category   string    `json:"category"`
	Servings   int       `json:"servings"`
	Visibility string    `json:"visibility"`
	ChefID     int64     `json:"chefId"`
	ChefName   string    `json:"chefName"`
	Likes      int       `json:"likes"`
	Views      int       `json:"views"`
	CreatedAt  time.Time `json:"createdAt"`
}

// SavedRecipe is a visitor's bookmark: a lightweight snapshot of a recipe,
// distinct from the chef-owned authoritative record.
type SavedRecipe struct {
	RecipeID int64     `json:"recipeId"`
	Title    string    `json:"title"`
	Image    string    `json:"image,omitempty"`
	ChefName string    `json:"chefName,omitempty"`
	Category string    `json:"category,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// Snapshot builds the bookmark entry for a recipe.
func (r *Recipe) Snapshot(savedAt time.Time) SavedRecipe {
	return SavedRecipe{
		RecipeID: r.ID,
		Title:    r.Title,
		Image:    r.Image,
		ChefName: r.ChefName,
		Category: r.Category,
		SavedAt:  savedAt,
	}
}
