package router

import (
	"github.com/gin-gonic/gin"

	"taskboard.app/server/internal/http/handler"
)

func DashboardRouter(rg *gin.RouterGroup, h *handler.DashboardHandler) {
	rg.GET("/board", h.Board)
	rg.GET("/by-resource", h.ByResource)
}
