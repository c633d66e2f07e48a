package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"homechefs/backend/internal/catalog"
	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
)

// ListRecipes returns the public catalog, optionally filtered by
// category.
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.Catalog.Recipes(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipes"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// GetRecipe returns one recipe and counts the view.
func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	recipe, err := h.Catalog.RecipeByID(id)
	if errors.Is(err, catalog.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// LikeRecipe bumps the like counter.
func (h *Handler) LikeRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	err = h.Catalog.LikeRecipe(id)
	if errors.Is(err, catalog.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to like recipe"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "liked"})
}

// ListChefs returns approved chefs for the public chef pages.
func (h *Handler) ListChefs(c *gin.Context) {
	chefs, err := h.Dir.Chefs()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chefs"})
		return
	}

	views := make([]userView, 0, len(chefs))
	for i := range chefs {
		views = append(views, viewOf(&chefs[i]))
	}
	c.JSON(http.StatusOK, views)
}

// GetChef returns one chef profile with their public recipes.
func (h *Handler) GetChef(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid chef id"})
		return
	}

	chef, err := h.Dir.UserByID(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chef"})
		return
	}
	if chef == nil || chef.Role != models.RoleChef {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		return
	}

	recipes, err := h.Catalog.RecipesByChef(id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load chef recipes"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"chef": viewOf(chef), "recipes": recipes})
}

type publishRecipeRequest struct {
	Title       string   `json:"title" binding:"required"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients" binding:"required"`
	Steps       []string `json:"steps" binding:"required"`
	PrepTime    int      `json:"prepTime" binding:"required"`
	CookTime    int      `json:"cookTime"`
	Category    string   `json:"category"`
	Servings    int      `json:"servings" binding:"required"`
	Visibility  string   `json:"visibility"`
}

// PublishRecipe adds a recipe to the calling chef's collection and, if
// public, to the browse catalog.
func (h *Handler) PublishRecipe(c *gin.Context) {
	if c.GetString("role") != string(models.RoleChef) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only chefs can publish recipes"})
		return
	}

	var req publishRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Visibility == "" {
		req.Visibility = config.VisibilityPublic
	}

	recipe, err := h.Dir.AddRecipeToChef(currentUserID(c), models.Recipe{
		Title:       req.Title,
		Image:       req.Image,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		PrepTime:    req.PrepTime,
		CookTime:    req.CookTime,
		Category:    req.Category,
		Servings:    req.Servings,
		Visibility:  req.Visibility,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add recipe"})
		return
	}
	if recipe == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Chef not found"})
		return
	}

	if recipe.Visibility == config.VisibilityPublic {
		if err := h.Catalog.PublishRecipe(recipe); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to publish recipe"})
			return
		}
	}
	c.JSON(http.StatusCreated, recipe)
}

// SaveRecipe bookmarks a catalog recipe for the caller. Saving twice
// keeps a single bookmark.
func (h *Handler) SaveRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	row, err := h.Catalog.RecipeByID(id)
	if errors.Is(err, catalog.ErrRecipeNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load recipe"})
		return
	}

	user, err := h.Dir.SaveRecipeForUser(currentUserID(c), models.Recipe{
		ID:       row.ID,
		Title:    row.Title,
		Image:    row.Image,
		Category: row.Category,
		ChefID:   row.ChefID,
		ChefName: row.ChefName,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save recipe"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.SavedRecipes)
}

// UnsaveRecipe removes the caller's bookmark for a recipe.
func (h *Handler) UnsaveRecipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid recipe id"})
		return
	}

	user, err := h.Dir.RemoveSavedRecipeForUser(currentUserID(c), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove saved recipe"})
		return
	}
	if user == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user.SavedRecipes)
}
