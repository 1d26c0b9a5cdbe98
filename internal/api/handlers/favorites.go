package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

type AddFavoriteRequest struct {
	ProductID string `json:"product_id" binding:"required"`
}

// HandleListFavorites handles GET /favorites
func HandleListFavorites(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	favoriteSvc := service.NewFavoriteService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		favorites, err := favoriteSvc.List(c.Request.Context(), user.ID)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "favorites retrieved", favorites)
	}
}

// HandleAddFavorite handles POST /favorites
func HandleAddFavorite(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	favoriteSvc := service.NewFavoriteService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var req AddFavoriteRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, logger, invalidBody(err))
			return
		}

		favorite, err := favoriteSvc.Add(c.Request.Context(), user.ID, req.ProductID)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.Created(c, "added to favorites", favorite)
	}
}

// HandleRemoveFavorite handles DELETE /favorites/:productId
func HandleRemoveFavorite(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	favoriteSvc := service.NewFavoriteService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		if err := favoriteSvc.Remove(c.Request.Context(), user.ID, c.Param("productId")); err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "removed from favorites", nil)
	}
}
