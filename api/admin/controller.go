// Package admin exposes the moderation endpoints. Role enforcement lives in
// the authorization guard, not here; the routes only require authentication
// so a non-admin receives 403 rather than 401.
package admin

import (
	"marketplace/api/middleware"
	"marketplace/api/response"
	itemapp "marketplace/application/item"

	"github.com/gin-gonic/gin"
)

// Controller handles moderation requests.
type Controller struct {
	itemService *itemapp.ApplicationService
}

func NewController(itemService *itemapp.ApplicationService) *Controller {
	return &Controller{itemService: itemService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	admin := router.Group("/admin", middleware.RequireAuth())
	{
		admin.GET("/items", c.ListByState)
		admin.POST("/items/:id/approve", c.ApproveItem)
		admin.POST("/items/:id/reject", c.RejectItem)
	}
}

// ListByState returns the moderation queue for one state.
// GET /api/v1/admin/items?state=PENDING
func (c *Controller) ListByState(ctx *gin.Context) {
	state := ctx.DefaultQuery("state", "PENDING")
	actor := middleware.ActorFromContext(ctx)
	items, err := c.itemService.ListByState(ctx.Request.Context(), actor, state)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, items, "")
}

// ApproveItem publishes a pending listing.
// POST /api/v1/admin/items/:id/approve
func (c *Controller) ApproveItem(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	item, err := c.itemService.Approve(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, item, "item approved")
}

// RejectItem declines a pending listing.
// POST /api/v1/admin/items/:id/reject
func (c *Controller) RejectItem(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	item, err := c.itemService.Reject(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, item, "item rejected")
}
