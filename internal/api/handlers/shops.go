package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

// HandleListShops handles GET /shops
func HandleListShops(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	shopSvc := service.NewShopService(repos, logger)

	return func(c *gin.Context) {
		shops, err := shopSvc.ListShops(c.Request.Context())
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "shops retrieved", shops)
	}
}

// HandleGetShop handles GET /shops/:code
func HandleGetShop(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	shopSvc := service.NewShopService(repos, logger)

	return func(c *gin.Context) {
		shop, err := shopSvc.GetShop(c.Request.Context(), c.Param("code"))
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "shop retrieved", shop)
	}
}
