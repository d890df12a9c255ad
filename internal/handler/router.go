package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/yourusername/deck-api/internal/handler/dto"
	"github.com/yourusername/deck-api/internal/middleware"
	"github.com/yourusername/deck-api/pkg/logger"
	"github.com/yourusername/deck-api/pkg/metrics"
)

// RouterConfig содержит зависимости HTTP роутера
type RouterConfig struct {
	Decks   *DeckHandler
	Assets  *AssetHandler
	Health  *HealthHandler
	Metrics *metrics.Manager
	Logger  *logger.Logger

	// StaticDir каталог с собранными страницами фронтенда (index.html, asset.html)
	StaticDir string
}

// NewRouter собирает gin.Engine со всеми маршрутами API и статикой
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Metrics(cfg.Metrics))
	router.Use(middleware.RequestLogger(cfg.Logger))

	// CORS: фронтенд может быть развернут на другом домене
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:   []string{"Content-Length"},
		MaxAge:          12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		decks := api.Group("/decks")
		{
			decks.GET("", cfg.Decks.ListDecks)
			decks.POST("", cfg.Decks.CreateDeck)
			decks.PUT("/:id", cfg.Decks.UpdateDeck)
			decks.DELETE("/:id", cfg.Decks.DeleteDeck)

			// :id здесь означает deckId: gin не допускает разные имена параметров в одном сегменте
			decks.GET("/:id/assets", cfg.Assets.ListDeckAssets)
		}

		assets := api.Group("/assets")
		{
			assets.POST("", cfg.Assets.RecordAssets)
			assets.DELETE("/:id", cfg.Assets.DeleteAsset)
		}
	}

	if cfg.Health != nil {
		router.GET("/healthz", cfg.Health.Health)
	}
	if cfg.Metrics != nil {
		router.GET("/metrics", gin.WrapH(cfg.Metrics.Handler()))
	}

	// Страницы фронтенда
	staticDir := cfg.StaticDir
	if staticDir == "" {
		staticDir = "public"
	}
	router.GET("/", func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "index.html"))
	})
	router.GET("/asset", func(c *gin.Context) {
		c.File(filepath.Join(staticDir, "asset.html"))
	})
	router.NoRoute(staticFallback(staticDir))

	return router
}

// staticFallback отдает файлы из каталога статики для всего, что не совпало с маршрутами.
// Неизвестные пути под /api получают JSON 404
func staticFallback(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if path == "/api" || strings.HasPrefix(path, "/api/") ||
			(c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "not found"})
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	}
}
