package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/middleware"
	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// optionalQuery returns a pointer to the trimmed query value, or nil when absent
func optionalQuery(c *gin.Context, key string) *string {
	v := strings.TrimSpace(c.Query(key))
	if v == "" {
		return nil
	}
	return &v
}

// requireUser aborts with 401 when the auth middleware did not run
func requireUser(c *gin.Context) (*middleware.User, bool) {
	user, ok := middleware.GetUserFromContext(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, "authorization required")
		return nil, false
	}
	return user, true
}

func invalidBody(err error) error {
	return &errors.ErrValidation{
		Message: "invalid request body",
		Fields:  map[string]string{"body": err.Error()},
	}
}

// writeList answers a catalog listing with per-shop rows or aggregated products
func writeList(c *gin.Context, message string, result *service.ListResult) {
	meta := response.NewMeta(result.Page, result.Limit, result.Total)
	if result.Grouped() {
		response.Paginated(c, message, result.Products, meta)
		return
	}
	response.Paginated(c, message, result.Items, meta)
}
