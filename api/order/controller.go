// Package order exposes the order endpoints. Every route requires an
// authenticated actor.
package order

import (
	"net/http"

	"marketplace/api/middleware"
	"marketplace/api/response"
	orderapp "marketplace/application/order"

	"github.com/gin-gonic/gin"
)

// Controller handles order requests.
type Controller struct {
	orderService *orderapp.ApplicationService
}

func NewController(orderService *orderapp.ApplicationService) *Controller {
	return &Controller{orderService: orderService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders", middleware.RequireAuth())
	{
		orders.POST("", c.CreateOrder)
		orders.GET("/:id", c.GetOrder)
		orders.GET("/purchases", c.ListPurchases)
		orders.GET("/sales", c.ListSales)
		orders.POST("/:id/finish", c.FinishOrder)
		orders.POST("/:id/cancel", c.CancelOrder)
	}
}

// CreateOrder opens an order against a listing.
// POST /api/v1/orders
func (c *Controller) CreateOrder(ctx *gin.Context) {
	var req orderapp.CreateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.HandleError(ctx, err, "invalid request parameters", http.StatusBadRequest)
		return
	}

	actor := middleware.ActorFromContext(ctx)
	order, err := c.orderService.Create(ctx.Request.Context(), actor, req)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, order, "order created successfully")
}

// GetOrder returns one order to its participants.
// GET /api/v1/orders/:id
func (c *Controller) GetOrder(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	order, err := c.orderService.GetByID(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "")
}

// ListPurchases returns the actor's orders as buyer.
// GET /api/v1/orders/purchases
func (c *Controller) ListPurchases(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	orders, err := c.orderService.ListPurchases(ctx.Request.Context(), actor)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "")
}

// ListSales returns the actor's orders as seller.
// GET /api/v1/orders/sales
func (c *Controller) ListSales(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	orders, err := c.orderService.ListSales(ctx.Request.Context(), actor)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, orders, "")
}

// FinishOrder completes an order and marks the listing sold, atomically.
// POST /api/v1/orders/:id/finish
func (c *Controller) FinishOrder(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	order, err := c.orderService.Finish(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order finished")
}

// CancelOrder backs out of an open order.
// POST /api/v1/orders/:id/cancel
func (c *Controller) CancelOrder(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	order, err := c.orderService.Cancel(ctx.Request.Context(), actor, ctx.Param("id"))
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, order, "order cancelled")
}
