// Package catalog backs the public browse pages (recipe exploration,
// chef profiles) and the order flow with PostgreSQL. Chef-published
// recipes with public visibility are copied here from the directory so
// browsing never scans the user collection.
package catalog

import (
	"errors"
	"log"

	"gorm.io/gorm"

	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
)

var ErrRecipeNotFound = errors.New("recipe not found")

// Service wraps the catalog database.
type Service struct {
	DB *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db}
}

// Migrate creates the catalog tables.
func (s *Service) Migrate() error {
	return s.DB.AutoMigrate(&models.CatalogRecipe{}, &models.Order{})
}

// PublishRecipe upserts a chef recipe into the catalog. Only public
// recipes are published; callers filter on visibility.
func (s *Service) PublishRecipe(r *models.Recipe) error {
	row := models.CatalogRecipe{
		ID:          r.ID,
		Title:       r.Title,
		Image:       r.Image,
		Ingredients: r.Ingredients,
		Steps:       r.Steps,
		PrepTime:    r.PrepTime,
		CookTime:    r.CookTime,
		Category:    r.Category,
		Servings:    r.Servings,
		Visibility:  r.Visibility,
		ChefID:      r.ChefID,
		ChefName:    r.ChefName,
		Likes:       r.Likes,
		Views:       r.Views,
		CreatedAt:   r.CreatedAt,
	}
	return s.DB.Save(&row).Error
}

// Recipes lists public catalog recipes, optionally filtered by category.
func (s *Service) Recipes(category string) ([]models.CatalogRecipe, error) {
	q := s.DB.Where("visibility = ?", config.VisibilityPublic)
	if category != "" {
		q = q.Where("category = ?", category)
	}

	var recipes []models.CatalogRecipe
	if err := q.Order("created_at desc").Find(&recipes).Error; err != nil {
		log.Printf("ERROR: Failed to list catalog recipes: %v", err)
		return nil, err
	}
	return recipes, nil
}

// RecipeByID fetches one recipe and bumps its view counter.
func (s *Service) RecipeByID(id int64) (*models.CatalogRecipe, error) {
	var recipe models.CatalogRecipe
	err := s.DB.First(&recipe, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.DB.Model(&recipe).UpdateColumn("views", gorm.Expr("views + 1")).Error; err != nil {
		log.Printf("ERROR: Failed to bump views for recipe %d: %v", id, err)
	}
	recipe.Views++
	return &recipe, nil
}

// LikeRecipe increments the like counter.
func (s *Service) LikeRecipe(id int64) error {
	result := s.DB.Model(&models.CatalogRecipe{}).
		Where("id = ?", id).
		UpdateColumn("likes", gorm.Expr("likes + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecipeNotFound
	}
	return nil
}

// RecipesByChef lists a chef's public recipes.
func (s *Service) RecipesByChef(chefID int64) ([]models.CatalogRecipe, error) {
	var recipes []models.CatalogRecipe
	err := s.DB.Where("chef_id = ? AND visibility = ?", chefID, config.VisibilityPublic).
		Order("created_at desc").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}
