package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard.app/server/internal/insight"
)

// InsightHandler serves generated insights. AI availability never changes the
// status code: a fallback result is still a 200, only a missing entity is
// a 404.
type InsightHandler struct {
	insights insight.Service
}

func NewInsightHandler(insights insight.Service) *InsightHandler {
	return &InsightHandler{insights: insights}
}

func (h *InsightHandler) Task(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.insights.TaskInsight(c.Request.Context(), id, forceRefresh(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *InsightHandler) User(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	result, err := h.insights.UserInsight(c.Request.Context(), id, forceRefresh(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func forceRefresh(c *gin.Context) bool {
	return c.Query("refresh") == "true"
}
