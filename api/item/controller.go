/*
Package item exposes the listing endpoints.

Controllers parse and bind, delegate to the application service, and render
through the response package. Binding failures return 400 directly; business
errors go through HandleAppError, which maps domain sentinels to statuses.
*/
package item

import (
	"net/http"

	"marketplace/api/middleware"
	"marketplace/api/response"
	itemapp "marketplace/application/item"

	"github.com/gin-gonic/gin"
)

// Controller handles listing requests.
type Controller struct {
	itemService *itemapp.ApplicationService
}

func NewController(itemService *itemapp.ApplicationService) *Controller {
	return &Controller{itemService: itemService}
}

// RegisterRoutes wires the listing routes. Reads are public; mutations
// require an authenticated actor.
func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	items := router.Group("/items")
	{
		items.GET("", c.ListOnSale)
		items.GET("/:id", c.GetItem)
		items.GET("/seller/:sellerId", c.ListBySeller)

		authed := items.Group("", middleware.RequireAuth())
		{
			authed.POST("", c.CreateItem)
			authed.PUT("/:id", c.UpdateItem)
			authed.DELETE("/:id", c.DeleteItem)
			authed.POST("/:id/deactivate", c.DeactivateItem)
			authed.POST("/:id/reactivate", c.ReactivateItem)
		}
	}
}

// CreateItem publishes a new listing.
// POST /api/v1/items
func (c *Controller) CreateItem(ctx *gin.Context) {
	var req itemapp.CreateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	actor := middleware.ActorFromContext(ctx)
	item, err := c.itemService.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, item, "item created successfully")
}

// GetItem returns one listing.
// GET /api/v1/items/:id
func (c *Controller) GetItem(ctx *gin.Context) {
	item, err := c.itemService.GetByID(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, item, "")
}

// ListOnSale returns the public catalog.
// GET /api/v1/items
func (c *Controller) ListOnSale(ctx *gin.Context) {
	items, err := c.itemService.ListOnSale(ctx.Request.Context())
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "")
}

// ListBySeller returns every listing of one seller.
// GET /api/v1/items/seller/:sellerId
func (c *Controller) ListBySeller(ctx *gin.Context) {
	items, err := c.itemService.ListBySeller(ctx.Request.Context(), ctx.Param("sellerId"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "")
}

// UpdateItem applies a seller edit.
// PUT /api/v1/items/:id
func (c *Controller) UpdateItem(ctx *gin.Context) {
	var req itemapp.UpdateItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	actor := middleware.ActorFromContext(ctx)
	item, err := c.itemService.Update(ctx.Request.Context(), actor, ctx.Param("id"), req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, item, "item updated successfully")
}

// DeleteItem removes a listing.
// DELETE /api/v1/items/:id
func (c *Controller) DeleteItem(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	if err := c.itemService.Delete(ctx.Request.Context(), actor, ctx.Param("id")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// DeactivateItem hides a published listing.
// POST /api/v1/items/:id/deactivate
func (c *Controller) DeactivateItem(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	item, err := c.itemService.Deactivate(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, item, "item deactivated")
}

// ReactivateItem republishes a hidden listing.
// POST /api/v1/items/:id/reactivate
func (c *Controller) ReactivateItem(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	item, err := c.itemService.Reactivate(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, item, "item reactivated")
}
