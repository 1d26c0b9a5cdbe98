package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/config"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

// HandleListCategories handles GET /catalog/categories?shop=&parent=
func HandleListCategories(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	categorySvc := service.NewCategoryService(repos, logger)

	return func(c *gin.Context) {
		categories, err := categorySvc.ListCategories(c.Request.Context(), optionalQuery(c, "shop"), optionalQuery(c, "parent"))
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "categories retrieved", categories)
	}
}

// HandleCategoryHierarchy handles GET /catalog/categories/hierarchy
func HandleCategoryHierarchy(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	categorySvc := service.NewCategoryService(repos, logger)

	return func(c *gin.Context) {
		tree, err := categorySvc.CategoryTree(c.Request.Context(), optionalQuery(c, "shop"))
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "category hierarchy retrieved", tree)
	}
}

// HandleGetCategory handles GET /catalog/categories/:id
func HandleGetCategory(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	categorySvc := service.NewCategoryService(repos, logger)

	return func(c *gin.Context) {
		detail, err := categorySvc.GetCategory(c.Request.Context(), c.Param("id"), optionalQuery(c, "shop"))
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "category retrieved", detail)
	}
}

// HandleCategoryProducts handles GET /catalog/categories/:id/products. It accepts
// the same query parameters as /catalog.
func HandleCategoryProducts(cfg *config.Config, repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	categorySvc := service.NewCategoryService(repos, logger)
	catalogSvc := service.NewCatalogService(cfg.Catalog, repos, logger)

	return func(c *gin.Context) {
		q, err := service.ParseListQuery(c.Request.URL.Query(), cfg.Catalog)
		if err != nil {
			response.Error(c, logger, err)
			return
		}

		result, err := categorySvc.ListCategoryProducts(c.Request.Context(), catalogSvc, c.Param("id"), q)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		writeList(c, "category products retrieved", result)
	}
}
