package userdir

import (
	"time"

	"homechefs/backend/internal/models"
)

// SaveRecipeForUser bookmarks a recipe for a visitor. Saving a recipe
// that is already bookmarked is a no-op. It returns the updated user, or
// nil when the id is unknown.
func (d *Directory) SaveRecipeForUser(userID int64, recipe models.Recipe) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := indexByID(users, userID)
	if idx < 0 {
		return nil, nil
	}

	u := &users[idx]
	for i := range u.SavedRecipes {
		if u.SavedRecipes[i].RecipeID == recipe.ID {
			out := *u
			return &out, nil
		}
	}

	u.SavedRecipes = append(u.SavedRecipes, recipe.Snapshot(time.Now()))

	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	if err := d.syncSession(users); err != nil {
		return nil, err
	}
	out := users[idx]
	return &out, nil
}

// RemoveSavedRecipeForUser drops the bookmark with the given recipe id.
// It returns the updated user, or nil when the user id is unknown.
func (d *Directory) RemoveSavedRecipeForUser(userID, recipeID int64) (*models.User, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := indexByID(users, userID)
	if idx < 0 {
		return nil, nil
	}

	u := &users[idx]
	kept := u.SavedRecipes[:0]
	for _, ref := range u.SavedRecipes {
		if ref.RecipeID != recipeID {
			kept = append(kept, ref)
		}
	}
	u.SavedRecipes = kept

	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	if err := d.syncSession(users); err != nil {
		return nil, err
	}
	out := users[idx]
	return &out, nil
}

// AddRecipeToChef appends a new recipe to a chef's collection, assigning
// its id and creation time. It returns the stored recipe, or nil when no
// chef with that id exists.
func (d *Directory) AddRecipeToChef(chefID int64, recipe models.Recipe) (*models.Recipe, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	users, err := d.loadUsers()
	if err != nil {
		return nil, err
	}

	idx := indexByID(users, chefID)
	if idx < 0 || users[idx].Role != models.RoleChef {
		return nil, nil
	}

	chef := &users[idx]
	recipe.ID = d.nextID()
	recipe.ChefID = chef.ID
	recipe.ChefName = chef.DisplayName()
	recipe.CreatedAt = time.Now()
	chef.Recipes = append(chef.Recipes, recipe)

	if err := d.saveUsers(users); err != nil {
		return nil, err
	}
	if err := d.syncSession(users); err != nil {
		return nil, err
	}
	return &recipe, nil
}
