package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/metrics"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

const (
	defaultPopularLimit = 10
	maxPopularLimit     = 50
)

// HandleListCatalog handles GET /catalog
func HandleListCatalog(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	catalogSvc := service.NewCatalogService(cfg.Catalog, repos, logger)

	return func(c *gin.Context) {
		q, err := service.ParseListQuery(c.Request.URL.Query(), cfg.Catalog)
		if err != nil {
			response.Error(c, logger, err)
			return
		}

		result, err := catalogSvc.ListCatalog(c.Request.Context(), q)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		writeList(c, "catalog retrieved", result)
	}
}

// HandleSearchCatalog handles GET /catalog/search and GET /catalog/products/search.
// Unlike /catalog the q parameter is mandatory.
func HandleSearchCatalog(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	catalogSvc := service.NewCatalogService(cfg.Catalog, repos, logger)

	return func(c *gin.Context) {
		if strings.TrimSpace(c.Query("q")) == "" {
			response.Error(c, logger, &errors.ErrValidation{
				Message: "search query is required",
				Fields:  map[string]string{"q": "is required"},
			})
			return
		}

		q, err := service.ParseListQuery(c.Request.URL.Query(), cfg.Catalog)
		if err != nil {
			response.Error(c, logger, err)
			return
		}

		result, err := catalogSvc.ListCatalog(c.Request.Context(), q)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		writeList(c, "search results", result)
	}
}

// HandleGetProduct handles GET /catalog/products/:id. An optional ?shop= pins the row.
func HandleGetProduct(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	catalogSvc := service.NewCatalogService(cfg.Catalog, repos, logger)

	return func(c *gin.Context) {
		detail, err := catalogSvc.GetProductByID(c.Request.Context(), c.Param("id"), optionalQuery(c, "shop"))
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "product retrieved", detail)
	}
}

// HandleGetProductBySlug handles GET /catalog/products/slug/:slug
func HandleGetProductBySlug(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	catalogSvc := service.NewCatalogService(cfg.Catalog, repos, logger)

	return func(c *gin.Context) {
		slug := c.Param("slug")
		detail, err := catalogSvc.GetProductBySlug(c.Request.Context(), slug)
		if err != nil {
			if errors.IsNotFound(err) {
				metrics.RecordSlugResolution("miss")
				logger.Debug("Slug not resolved", zap.String("slug", slug))
			}
			response.Error(c, logger, err)
			return
		}

		metrics.RecordSlugResolution(string(detail.ResolvedBy))
		response.OK(c, "product retrieved", detail)
	}
}

// HandlePopularProducts handles GET /catalog/products/popular/top?limit=
func HandlePopularProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	catalogSvc := service.NewCatalogService(cfg.Catalog, repos, logger)

	return func(c *gin.Context) {
		limit := defaultPopularLimit
		if raw := c.Query("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil || n < 1 {
				response.Fail(c, http.StatusBadRequest, "invalid query parameters", "limit: must be a positive integer")
				return
			}
			limit = n
		}
		if limit > maxPopularLimit {
			limit = maxPopularLimit
		}

		response.OK(c, "popular products retrieved", catalogSvc.PopularProducts(c.Request.Context(), limit))
	}
}
