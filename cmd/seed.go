package main

import (
	"errors"
	"log"
	"os"

	"homechefs/backend/internal/catalog"
	"homechefs/backend/internal/config"
	"homechefs/backend/internal/models"
	"homechefs/backend/internal/userdir"
)

type seedChef struct {
	email       string
	name        string
	nationality string
	bio         string
	photo       string
	recipe      models.Recipe
}

// foundingChefs is the demo roster shown on a fresh install. Each one
// gets an approved chef account and a first public recipe.
var foundingChefs = []seedChef{
	{
		email:       "maria@homechefs.local",
		name:        "Maria Rodriguez",
		nationality: "Spain",
		bio:         "Traditional Spanish tapas from my grandmother's kitchen",
		photo:       "/assets/chefs/spanishfood.jpg",
		recipe: models.Recipe{
			Title:       "Patatas Bravas",
			Category:    "Spanish",
			Ingredients: []string{"Potatoes", "Olive oil", "Smoked paprika", "Tomato sauce", "Garlic aioli"},
			Steps:       []string{"Fry the potatoes until crisp", "Simmer the brava sauce", "Serve with aioli"},
			PrepTime:    15,
			CookTime:    30,
			Servings:    4,
		},
	},
	{
		email:       "ahmed@homechefs.local",
		name:        "Ahmed Hassan",
		nationality: "Egypt",
		bio:         "Authentic Middle Eastern dishes with family secrets",
		photo:       "/assets/chefs/egyptfood.jpg",
		recipe: models.Recipe{
			Title:       "Koshari",
			Category:    "Egyptian",
			Ingredients: []string{"Rice", "Lentils", "Macaroni", "Chickpeas", "Fried onions", "Spiced tomato sauce"},
			Steps:       []string{"Cook rice, lentils and pasta separately", "Layer in a bowl", "Top with sauce and onions"},
			PrepTime:    20,
			CookTime:    45,
			Servings:    6,
		},
	},
	{
		email:       "linh@homechefs.local",
		name:        "Linh Nguyen",
		nationality: "Vietnam",
		bio:         "Street food recipes passed down from my mother",
		photo:       "/assets/chefs/vietnamfood.jpg",
		recipe: models.Recipe{
			Title:       "Pho Bo",
			Category:    "Vietnamese",
			Ingredients: []string{"Beef bones", "Rice noodles", "Star anise", "Ginger", "Fish sauce", "Herbs"},
			Steps:       []string{"Simmer the broth for hours", "Cook the noodles", "Assemble with thin beef and herbs"},
			PrepTime:    30,
			CookTime:    240,
			Servings:    4,
		},
	},
	{
		email:       "giuseppe@homechefs.local",
		name:        "Giuseppe Romano",
		nationality: "Italy",
		bio:         "Nonna's pasta recipes perfected over decades",
		photo:       "/assets/chefs/italienfood.jpg",
		recipe: models.Recipe{
			Title:       "Cacio e Pepe",
			Category:    "Italian",
			Ingredients: []string{"Spaghetti", "Pecorino Romano", "Black pepper"},
			Steps:       []string{"Toast the pepper", "Cook the pasta", "Emulsify cheese with pasta water"},
			PrepTime:    5,
			CookTime:    15,
			Servings:    2,
		},
	},
	{
		email:       "fatima@homechefs.local",
		name:        "Fatima Al-Zahra",
		nationality: "Morocco",
		bio:         "Spice blends and tagines from my family traditions",
		photo:       "/assets/chefs/moroccofood.jpg",
		recipe: models.Recipe{
			Title:       "Chicken Tagine",
			Category:    "Moroccan",
			Ingredients: []string{"Chicken", "Preserved lemon", "Green olives", "Ras el hanout", "Onions"},
			Steps:       []string{"Brown the chicken", "Slow-cook with spices and lemon", "Finish with olives"},
			PrepTime:    20,
			CookTime:    60,
			Servings:    4,
		},
	},
	{
		email:       "sakura@homechefs.local",
		name:        "Sakura Tanaka",
		nationality: "Japan",
		bio:         "Delicate Japanese dishes with seasonal ingredients",
		photo:       "/assets/chefs/japanfood.jpg",
		recipe: models.Recipe{
			Title:       "Chawanmushi",
			Category:    "Japanese",
			Ingredients: []string{"Eggs", "Dashi", "Shiitake", "Shrimp", "Mitsuba"},
			Steps:       []string{"Whisk eggs with dashi", "Strain into cups", "Steam gently until just set"},
			PrepTime:    15,
			CookTime:    15,
			Servings:    2,
		},
	},
}

// seedFoundingChefs registers the demo chefs and publishes their first
// recipes. Safe to run on every boot: chefs that already exist are
// skipped.
func seedFoundingChefs(dir *userdir.Directory, cat *catalog.Service) {
	password := os.Getenv("HOMECHEFS_SEED_PASSWORD")
	if password == "" {
		password = "homechefs-demo"
	}

	for _, sc := range foundingChefs {
		user, err := dir.Register(userdir.RegisterInput{
			Email:        sc.email,
			Password:     password,
			FullName:     sc.name,
			Role:         models.RoleChef,
			Nationality:  sc.nationality,
			Bio:          sc.bio,
			ProfilePhoto: sc.photo,
		})
		if errors.Is(err, userdir.ErrDuplicateEmail) {
			continue
		}
		if err != nil {
			log.Printf("ERROR: Failed to seed chef %s: %v", sc.email, err)
			continue
		}

		if _, err := dir.ApproveChef(user.ID); err != nil {
			log.Printf("ERROR: Failed to approve seeded chef %s: %v", sc.email, err)
			continue
		}

		recipe := sc.recipe
		recipe.Visibility = config.VisibilityPublic
		stored, err := dir.AddRecipeToChef(user.ID, recipe)
		if err != nil || stored == nil {
			log.Printf("ERROR: Failed to add seed recipe for %s: %v", sc.email, err)
			continue
		}
		if err := cat.PublishRecipe(stored); err != nil {
			log.Printf("ERROR: Failed to publish seed recipe %q: %v", stored.Title, err)
		}
	}
	log.Println("Founding chefs seeded.")
}
