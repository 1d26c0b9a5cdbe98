package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/handlers"
	"github.com/sysrootix/sitemedusa-sub000/internal/api/middleware"
	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/metrics"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
)

func init() {
	// prices are JSON numbers, not strings
	decimal.MarshalJSONWithoutQuotes = true
}

// NewRouter creates and configures the Gin router
func NewRouter(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(customRecovery(logger, cfg.IsProduction()))
	router.Use(loggingMiddleware(logger))
	router.Use(middleware.MetricsMiddleware())

	router.NoRoute(func(c *gin.Context) {
		response.Fail(c, http.StatusNotFound, "route not found")
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := router.Group("")
	api.Use(middleware.RateLimitMiddleware(cfg.RateLimit, logger))

	catalog := api.Group("/catalog")
	{
		catalog.GET("", handlers.HandleListCatalog(cfg, repos, logger))
		catalog.GET("/search", handlers.HandleSearchCatalog(cfg, repos, logger))

		catalog.GET("/categories", handlers.HandleListCategories(repos, logger))
		catalog.GET("/categories/hierarchy", handlers.HandleCategoryHierarchy(repos, logger))
		catalog.GET("/categories/:id", handlers.HandleGetCategory(repos, logger))
		catalog.GET("/categories/:id/products", handlers.HandleCategoryProducts(cfg, repos, logger))

		catalog.GET("/products/search", handlers.HandleSearchCatalog(cfg, repos, logger))
		catalog.GET("/products/popular/top", handlers.HandlePopularProducts(cfg, repos, logger))
		catalog.GET("/products/slug/:slug", handlers.HandleGetProductBySlug(cfg, repos, logger))
		catalog.GET("/products/:id", handlers.HandleGetProduct(cfg, repos, logger))
	}

	shops := api.Group("/shops")
	{
		shops.GET("", handlers.HandleListShops(repos, logger))
		shops.GET("/:code", handlers.HandleGetShop(repos, logger))
	}

	userRoutes := api.Group("")
	userRoutes.Use(middleware.UserAuthMiddleware(cfg.Auth, logger))
	{
		userRoutes.GET("/cart", handlers.HandleGetCart(repos, logger))
		userRoutes.DELETE("/cart", handlers.HandleClearCart(repos, logger))
		userRoutes.POST("/cart/items", handlers.HandleAddCartItem(repos, logger))
		userRoutes.PUT("/cart/items/:id", handlers.HandleUpdateCartItem(repos, logger))
		userRoutes.DELETE("/cart/items/:id", handlers.HandleRemoveCartItem(repos, logger))

		userRoutes.GET("/favorites", handlers.HandleListFavorites(repos, logger))
		userRoutes.POST("/favorites", handlers.HandleAddFavorite(repos, logger))
		userRoutes.DELETE("/favorites/:productId", handlers.HandleRemoveFavorite(repos, logger))
	}

	adminRoutes := api.Group("/catalog-shops")
	adminRoutes.Use(middleware.UserAuthMiddleware(cfg.Auth, logger))
	adminRoutes.Use(middleware.AdminMiddleware(cfg.Auth, logger))
	{
		adminRoutes.GET("/exclusions", handlers.HandleListExclusions(repos, logger))
		adminRoutes.POST("/exclusions", handlers.HandleAddExclusion(repos, logger))
		adminRoutes.DELETE("/exclusions/:id", handlers.HandleDeleteExclusion(repos, logger))
	}

	integrationRoutes := api.Group("/integrations")
	integrationRoutes.Use(middleware.IntegrationAuthMiddleware(repos, logger))
	{
		integrationRoutes.POST("/catalog-sync", handlers.HandleCatalogSync(repos, logger))
	}

	return router
}

// customRecovery turns a panic into a 500 envelope. Panic details are only
// exposed outside production.
func customRecovery(logger *zap.Logger, production bool) gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("Panic recovered",
			zap.Any("error", recovered),
			zap.String("path", c.Request.URL.Path),
			zap.String("method", c.Request.Method),
		)
		if production {
			response.Fail(c, http.StatusInternalServerError, "internal server error")
			return
		}
		response.Fail(c, http.StatusInternalServerError, "internal server error", fmt.Sprintf("%v", recovered))
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}
