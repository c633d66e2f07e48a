package userdir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homechefs/backend/internal/models"
)

func TestSaveRecipeForUser_IsIdempotent(t *testing.T) {
	d := newTestDirectory()
	v := mustRegister(t, d, "v@x.com", models.RoleVisitor)
	recipe := models.Recipe{ID: 5, Title: "Tagine", Category: "Plat"}

	u, err := d.SaveRecipeForUser(v.ID, recipe)
	require.NoError(t, err)
	require.NotNil(t, u)
	require.Len(t, u.SavedRecipes, 1)
	assert.False(t, u.SavedRecipes[0].SavedAt.IsZero())

	u, err = d.SaveRecipeForUser(v.ID, recipe)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Len(t, u.SavedRecipes, 1, "saving the same recipe twice keeps one entry")
}

func TestSaveThenRemoveRecipe(t *testing.T) {
	d := newTestDirectory()
	v := mustRegister(t, d, "v@x.com", models.RoleVisitor)

	_, err := d.SaveRecipeForUser(v.ID, models.Recipe{ID: 5, Title: "Tagine"})
	require.NoError(t, err)

	u, err := d.RemoveSavedRecipeForUser(v.ID, 5)
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Empty(t, u.SavedRecipes)
}

func TestSaveRecipeForUser_UnknownUser(t *testing.T) {
	d := newTestDirectory()

	u, err := d.SaveRecipeForUser(424242, models.Recipe{ID: 5, Title: "Tagine"})

	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSaveRecipe_MirrorsIntoSession(t *testing.T) {
	d := newTestDirectory()
	v := mustRegister(t, d, "v@x.com", models.RoleVisitor)
	_, err := d.Authenticate("v@x.com", "pw123456", models.RoleVisitor)
	require.NoError(t, err)

	_, err = d.SaveRecipeForUser(v.ID, models.Recipe{ID: 5, Title: "Tagine"})
	require.NoError(t, err)

	s, err := d.CurrentSession()
	require.NoError(t, err)
	require.NotNil(t, s)
	require.Len(t, s.SavedRecipes, 1)
	assert.Equal(t, "Tagine", s.SavedRecipes[0].Title)
}

func TestAddRecipeToChef(t *testing.T) {
	d := newTestDirectory()
	chef := mustRegister(t, d, "chef@x.com", models.RoleChef)

	recipe, err := d.AddRecipeToChef(chef.ID, models.Recipe{
		Title:       "Couscous Royal",
		Ingredients: []string{"semoule", "agneau", "legumes"},
		Steps:       []string{"preparer", "cuire"},
		PrepTime:    30,
		CookTime:    90,
		Servings:    6,
		Category:    "Plat",
		Visibility:  "Public",
	})

	require.NoError(t, err)
	require.NotNil(t, recipe)
	assert.NotZero(t, recipe.ID)
	assert.Equal(t, chef.ID, recipe.ChefID)
	assert.Equal(t, "Test chef@x.com", recipe.ChefName)
	assert.False(t, recipe.CreatedAt.IsZero())

	stored, err := d.UserByID(chef.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.Len(t, stored.Recipes, 1)
	assert.Equal(t, "Couscous Royal", stored.Recipes[0].Title)
}

func TestAddRecipeToChef_VisitorIsNoOp(t *testing.T) {
	d := newTestDirectory()
	v := mustRegister(t, d, "v@x.com", models.RoleVisitor)

	recipe, err := d.AddRecipeToChef(v.ID, models.Recipe{Title: "Nope"})

	require.NoError(t, err)
	assert.Nil(t, recipe)
}
