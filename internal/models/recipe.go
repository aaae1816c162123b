package models

// Recipe is one recipe record as returned by the provider.
type Recipe struct {
	Label           string   `json:"label"`
	Image           string   `json:"image"`
	URL             string   `json:"url"`
	IngredientLines []string `json:"ingredientLines"`
	Calories        float64  `json:"calories"`
	DietLabels      []string `json:"dietLabels"`
	HealthLabels    []string `json:"healthLabels"`
}

// Hit wraps a Recipe the way the provider nests it.
type Hit struct {
	Recipe Recipe `json:"recipe"`
}

// SearchResult is the part of a provider response the client renders.
// Every other field of the response is ignored.
type SearchResult struct {
	Hits []Hit `json:"hits"`
}
