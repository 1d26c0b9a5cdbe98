package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/middleware"
	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
)

type catalogSyncAccepted struct {
	Started bool `json:"started"`
}

// HandleCatalogSync handles POST /integrations/catalog-sync. The external sync
// process calls it after writing catalog rows; missing slugs are filled in the
// background. A second call while a backfill runs is accepted but starts nothing.
func HandleCatalogSync(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		client, _ := middleware.GetIntegrationClientFromContext(c)

		started := service.TriggerSlugBackfill(repos, logger)
		fields := []zap.Field{zap.Bool("started", started)}
		if client != nil {
			fields = append(fields, zap.String("client", client.Name))
		}
		logger.Info("Catalog sync notification received", fields...)

		msg := "slug backfill started"
		if !started {
			msg = "slug backfill already running"
		}
		response.Accepted(c, msg, catalogSyncAccepted{Started: started})
	}
}
