package routes

import (
	"riftroster/api/handlers"

	"github.com/gin-gonic/gin"
)

type Router struct {
	engine *gin.Engine
	api    *gin.RouterGroup
}

func NewRouter(engine *gin.Engine) *Router {
	return &Router{
		api:    engine.Group("/api/v1"),
		engine: engine,
	}
}

func (r *Router) SetupRoutes(handlerList ...any) {
	for _, h := range handlerList {
		switch handler := h.(type) {
		case *handlers.PlayerHandler:
			r.registerPlayerHandler(handler)
		}
	}
}

// Register the player handler.
func (r *Router) registerPlayerHandler(handler *handlers.PlayerHandler) {
	players := r.api.Group("/players")
	{
		players.GET("/:pseudo/rank", handler.GetRank)
		players.GET("/:pseudo/matches/count", handler.GetMatchCount)
		players.GET("/:pseudo/matches", handler.GetMatchHistory)
		players.GET("/:pseudo/champions", handler.GetTopChampions)
		players.POST("/:pseudo/sync", handler.PostSync)
	}
}

// Start the router.
func (r *Router) Run(addr string) error {
	return r.engine.Run(addr)
}
