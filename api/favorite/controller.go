// Package favorite exposes the bookmark endpoints.
package favorite

import (
	"marketplace/api/middleware"
	"marketplace/api/response"
	favoriteapp "marketplace/application/favorite"

	"github.com/gin-gonic/gin"
)

// Controller handles bookmark requests.
type Controller struct {
	favoriteService *favoriteapp.ApplicationService
}

func NewController(favoriteService *favoriteapp.ApplicationService) *Controller {
	return &Controller{favoriteService: favoriteService}
}

func (c *Controller) RegisterRoutes(router *gin.RouterGroup) {
	favorites := router.Group("/favorites", middleware.RequireAuth())
	{
		favorites.GET("", c.ListFavorites)
		favorites.POST("/:itemId", c.AddFavorite)
		favorites.DELETE("/:itemId", c.RemoveFavorite)
	}
}

// AddFavorite bookmarks a listing.
// POST /api/v1/favorites/:itemId
func (c *Controller) AddFavorite(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	if err := c.favoriteService.Add(ctx.Request.Context(), actor, ctx.Param("itemId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleCreated(ctx, nil, "item favorited")
}

// RemoveFavorite drops a bookmark.
// DELETE /api/v1/favorites/:itemId
func (c *Controller) RemoveFavorite(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	if err := c.favoriteService.Remove(ctx.Request.Context(), actor, ctx.Param("itemId")); err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleNoContent(ctx)
}

// ListFavorites returns the actor's bookmarks with listing summaries.
// GET /api/v1/favorites
func (c *Controller) ListFavorites(ctx *gin.Context) {
	actor := middleware.ActorFromContext(ctx)
	favorites, err := c.favoriteService.List(ctx.Request.Context(), actor)
	if err != nil {
		response.HandleAppError(ctx, err)
		return
	}
	response.HandleSuccess(ctx, favorites, "")
}
