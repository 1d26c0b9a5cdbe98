// Package response writes the JSON envelope shared by every endpoint:
// {success, message, data?, errors?, meta?}.
package response

import (
	"fmt"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// Meta describes the page of a paginated listing
type Meta struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
}

// Envelope is the body of every API response
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
	Meta    *Meta       `json:"meta,omitempty"`
}

// NewMeta computes the page count for total items
func NewMeta(page, limit, total int) *Meta {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return &Meta{Page: page, Limit: limit, Total: total, TotalPages: pages}
}

func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data})
}

func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{Success: true, Message: message, Data: data})
}

func Accepted(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusAccepted, Envelope{Success: true, Message: message, Data: data})
}

func Paginated(c *gin.Context, message string, data interface{}, meta *Meta) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Meta: meta})
}

// Fail aborts the request with a failure envelope
func Fail(c *gin.Context, status int, message string, errs ...string) {
	if len(errs) == 0 {
		errs = []string{message}
	}
	c.AbortWithStatusJSON(status, Envelope{Success: false, Message: message, Errors: errs})
}

// Error translates err into its HTTP status and failure envelope. Internal errors
// are logged and answered with a generic message.
func Error(c *gin.Context, logger *zap.Logger, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("Request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path))
		Fail(c, status, "internal server error")
		return
	}

	var verr *errors.ErrValidation
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		Fail(c, status, verr.Message, fieldErrors(verr.Fields)...)
		return
	}
	Fail(c, status, err.Error())
}

func fieldErrors(fields map[string]string) []string {
	out := make([]string, 0, len(fields))
	for field, msg := range fields {
		out = append(out, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(out)
	return out
}
