package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipe-search/internal/service"
)

// FetchFailedMessage is the generic message of every upstream failure.
const FetchFailedMessage = "Failed to fetch recipes"

// SearchHandler handles recipe search requests.
type SearchHandler struct {
	Service *service.SearchService
}

// NewSearchHandler creates a new SearchHandler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{Service: searchService}
}

// SearchRecipes handles GET /api/recipes?query=...
func (h *SearchHandler) SearchRecipes(c *gin.Context) {
	switch res := h.Service.SearchRecipes(c.Request.Context(), c.Query("query")).(type) {
	case service.OK:
		c.Data(res.StatusCode, "application/json; charset=utf-8", res.Body)
	case service.ClientError:
		c.JSON(http.StatusBadRequest, gin.H{"error": res.Message})
	case service.UpstreamError:
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   FetchFailedMessage,
			"details": res.Details,
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": FetchFailedMessage})
	}
}
