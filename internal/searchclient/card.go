package searchclient

import (
	"fmt"
	"math"
	"net/url"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/windoze95/recipe-search/internal/models"
)

// CardOptions tunes how hits are turned into cards.
type CardOptions struct {
	// ImageHosts restricts which hosts images are loaded from. Empty allows
	// every host.
	ImageHosts []string
}

// Card is the display form of one hit.
type Card struct {
	Title      string
	ImageURL   string
	Calories   int
	DietLabels []string
	SourceURL  string
}

// CaloriesText is the calorie line shown on a card.
func (c Card) CaloriesText() string {
	return fmt.Sprintf("%d calories", c.Calories)
}

// NewCard builds the card for hit. Image and source links that are not
// absolute http(s) URLs are dropped.
func NewCard(hit models.Hit, opts CardOptions) Card {
	r := hit.Recipe
	card := Card{
		Title:      r.Label,
		Calories:   roundCalories(r.Calories),
		DietLabels: append([]string(nil), r.DietLabels...),
		SourceURL:  safeURL(r.URL),
	}
	if img := safeURL(r.Image); img != "" && imageHostAllowed(img, opts.ImageHosts) {
		card.ImageURL = img
	}
	return card
}

// NewCards builds one card per hit, in order.
func NewCards(hits []models.Hit, opts CardOptions) []Card {
	cards := make([]Card, 0, len(hits))
	for _, h := range hits {
		cards = append(cards, NewCard(h, opts))
	}
	return cards
}

func roundCalories(c float64) int {
	if c <= 0 || math.IsNaN(c) {
		return 0
	}
	return int(math.Round(c))
}

func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if !govalidator.IsRequestURL(raw) {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return ""
	}
	return raw
}

func imageHostAllowed(raw string, hosts []string) bool {
	if len(hosts) == 0 {
		return true
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	for _, h := range hosts {
		if strings.EqualFold(u.Hostname(), h) {
			return true
		}
	}
	return false
}
