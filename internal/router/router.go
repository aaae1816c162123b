package router

import (
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/windoze95/recipe-search/internal/config"
	"github.com/windoze95/recipe-search/internal/handlers"
	"github.com/windoze95/recipe-search/internal/logger"
	"github.com/windoze95/recipe-search/internal/metrics"
	"github.com/windoze95/recipe-search/internal/searchclient"
	"github.com/windoze95/recipe-search/internal/service"
	"github.com/windoze95/recipe-search/internal/upstream"
	"github.com/windoze95/recipe-search/internal/web"
)

// SetupRouter sets up the relay service router.
func SetupRouter(cfg *config.Config, provider upstream.Provider) *gin.Engine {
	r := newEngine()
	r.Use(cors.New(corsConfig(cfg.EnvVars.AllowedOrigins)))

	r.GET("/metrics", metrics.Handler())

	searchService := service.NewSearchService(provider)
	searchHandler := handlers.NewSearchHandler(searchService)

	api := r.Group("/api")
	{
		// Relay a recipe search to Edamam
		api.GET("/recipes", searchHandler.SearchRecipes)
	}

	return r
}

// SetupClientRouter sets up the browser frontend router.
func SetupClientRouter(cfg *config.ClientConfig, store *searchclient.SessionStore) (*gin.Engine, error) {
	r := newEngine()

	tmpl, err := web.LoadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	opts := searchclient.CardOptions{ImageHosts: nonEmpty(cfg.EnvVars.ImageHosts)}
	webHandler := web.NewHandler(store, opts)

	// Render the search page for the browser session
	r.GET("/", webHandler.Index)
	// Submit a search, from the button or the Enter key
	r.GET("/search", webHandler.Search)

	return r, nil
}

// newEngine returns an engine with the middleware shared by both services.
func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// Add request ID middleware for request correlation
	r.Use(logger.RequestIDMiddleware())
	r.Use(logger.AccessLogMiddleware())
	r.Use(metrics.Middleware())

	// Ping route for testing
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	return r
}

// corsConfig allows every origin unless an explicit list is configured.
func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "OPTIONS"}
	config.ExposeHeaders = []string{logger.RequestIDHeader}
	if allowed := nonEmpty(origins); len(allowed) > 0 {
		config.AllowOrigins = allowed
	} else {
		config.AllowAllOrigins = true
	}
	return config
}

func nonEmpty(values []string) []string {
	var out []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}
