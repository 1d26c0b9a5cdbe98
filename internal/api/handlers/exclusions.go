package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// HandleListExclusions handles GET /catalog-shops/exclusions. Only active
// exclusions are listed unless ?active=false.
func HandleListExclusions(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	exclusionSvc := service.NewExclusionService(repos, logger)

	return func(c *gin.Context) {
		activeOnly := true
		if raw := c.Query("active"); raw != "" {
			v, err := strconv.ParseBool(raw)
			if err != nil {
				response.Error(c, logger, &errors.ErrValidation{
					Message: "invalid query parameters",
					Fields:  map[string]string{"active": "must be true or false"},
				})
				return
			}
			activeOnly = v
		}

		exclusions, err := exclusionSvc.ListExclusions(c.Request.Context(), activeOnly)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "exclusions retrieved", exclusions)
	}
}

// HandleAddExclusion handles POST /catalog-shops/exclusions
func HandleAddExclusion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	exclusionSvc := service.NewExclusionService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var input service.AddExclusionInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, logger, invalidBody(err))
			return
		}
		input.CreatedBy = &user.ID

		exclusion, err := exclusionSvc.AddExclusion(c.Request.Context(), input)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.Created(c, "exclusion added", exclusion)
	}
}

// HandleDeleteExclusion handles DELETE /catalog-shops/exclusions/:id
func HandleDeleteExclusion(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	exclusionSvc := service.NewExclusionService(repos, logger)

	return func(c *gin.Context) {
		id, err := uuid.Parse(c.Param("id"))
		if err != nil {
			response.Error(c, logger, &errors.ErrValidation{
				Message: "invalid exclusion id",
				Fields:  map[string]string{"id": "must be a UUID"},
			})
			return
		}

		if err := exclusionSvc.DeleteExclusion(c.Request.Context(), id); err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "exclusion removed", nil)
	}
}
