package testutil

import (
	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/models"
)

// ChickenSoupBody is a provider response holding a single hit.
const ChickenSoupBody = `{ "hits": [{ "recipe": { "label": "Chicken Soup", "image": "http://x/img.jpg", "url": "http://x/recipe", "calories": 123.7, "dietLabels": ["low-fat"], "ingredientLines": ["chicken","water"], "healthLabels": [] } }] }`

// EmptyBody is a provider response with no hits.
const EmptyBody = `{"q":"nothing","from":0,"to":0,"count":0,"hits":[]}`

// TestCredentials returns a complete set of fake Edamam credentials.
func TestCredentials() config.Credentials {
	return config.Credentials{
		AppID:  "test-app-id",
		AppKey: "test-app-key",
		UserID: "test-user-id",
	}
}

// TestHit returns the hit encoded by ChickenSoupBody.
func TestHit() models.Hit {
	return models.Hit{Recipe: models.Recipe{
		Label:           "Chicken Soup",
		Image:           "http://x/img.jpg",
		URL:             "http://x/recipe",
		IngredientLines: []string{"chicken", "water"},
		Calories:        123.7,
		DietLabels:      []string{"low-fat"},
		HealthLabels:    []string{},
	}}
}
