package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sysrootix/sitemedusa-sub000/internal/api/response"
	"github.com/sysrootix/sitemedusa-sub000/internal/repository"
	"github.com/sysrootix/sitemedusa-sub000/internal/service"
	"github.com/sysrootix/sitemedusa-sub000/pkg/errors"
)

// UpdateCartItemRequest is the body of PUT /cart/items/:id
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func cartItemID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, &errors.ErrValidation{
			Message: "invalid cart item id",
			Fields:  map[string]string{"id": "must be a UUID"},
		}
	}
	return id, nil
}

// HandleGetCart handles GET /cart
func HandleGetCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	cartSvc := service.NewCartService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		cart, err := cartSvc.GetCart(c.Request.Context(), user.ID)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "cart retrieved", cart)
	}
}

// HandleAddCartItem handles POST /cart/items. Adding a product already in the
// cart increases its quantity.
func HandleAddCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	cartSvc := service.NewCartService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}

		var input service.AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			response.Error(c, logger, invalidBody(err))
			return
		}

		item, err := cartSvc.AddItem(c.Request.Context(), user.ID, input)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.Created(c, "item added to cart", item)
	}
}

// HandleUpdateCartItem handles PUT /cart/items/:id
func HandleUpdateCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	cartSvc := service.NewCartService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		id, err := cartItemID(c)
		if err != nil {
			response.Error(c, logger, err)
			return
		}

		var req UpdateCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, logger, invalidBody(err))
			return
		}

		item, err := cartSvc.UpdateItem(c.Request.Context(), user.ID, id, req.Quantity)
		if err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "cart item updated", item)
	}
}

// HandleRemoveCartItem handles DELETE /cart/items/:id
func HandleRemoveCartItem(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	cartSvc := service.NewCartService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		id, err := cartItemID(c)
		if err != nil {
			response.Error(c, logger, err)
			return
		}

		if err := cartSvc.RemoveItem(c.Request.Context(), user.ID, id); err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "cart item removed", nil)
	}
}

// HandleClearCart handles DELETE /cart
func HandleClearCart(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	cartSvc := service.NewCartService(repos, logger)

	return func(c *gin.Context) {
		user, ok := requireUser(c)
		if !ok {
			return
		}
		if err := cartSvc.Clear(c.Request.Context(), user.ID); err != nil {
			response.Error(c, logger, err)
			return
		}
		response.OK(c, "cart cleared", nil)
	}
}
