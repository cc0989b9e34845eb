package router

import (
	"github.com/gin-gonic/gin"

	"taskboard.app/server/internal/http/handler"
)

// TaskRouter sets up task CRUD, comment and insight routes.
func TaskRouter(rg *gin.RouterGroup, h *handler.TaskHandler, ih *handler.InsightHandler) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.PATCH("/:id/status", h.UpdateStatus)
	rg.POST("/:id/comments", h.AddComment)
	rg.GET("/:id/insight", ih.Task)
}
