package router

import (
	"github.com/gin-gonic/gin"

	"taskboard.app/server/internal/http/handler"
	"taskboard.app/server/internal/service"
)

func SetupRoutes(router *gin.Engine, services *service.Services) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	insightHandler := handler.NewInsightHandler(services.Insights())

	v1 := router.Group("/api/v1")
	{
		taskHandler := handler.NewTaskHandler(services.Tasks())
		TaskRouter(v1.Group("/tasks"), taskHandler, insightHandler)

		userHandler := handler.NewUserHandler(services.Users())
		UserRouter(v1.Group("/users"), userHandler, insightHandler)

		dashboardHandler := handler.NewDashboardHandler(services.Dashboard())
		DashboardRouter(v1.Group("/dashboard"), dashboardHandler)

		auditHandler := handler.NewAuditHandler(services.Audit())
		v1.GET("/audit", auditHandler.List)
	}
}
