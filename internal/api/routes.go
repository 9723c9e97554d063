package api

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RegisterRoutes mounts the todo API on r. limit may be nil.
func RegisterRoutes(r *gin.Engine, h *Handler, health *HealthHandler, limit gin.HandlerFunc) {
	r.GET("/healthz", health.Liveness)
	r.GET("/readyz", health.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	todos := r.Group("/todos")
	if limit != nil {
		todos.Use(limit)
	}
	{
		todos.DELETE("/reset", h.Reset)
		todos.GET("", h.List)
		todos.POST("", h.Create)
		todos.PUT("/:id", h.Update)
		todos.POST("/:id/mark-done", h.MarkDone)
		todos.POST("/:id/undo-done", h.UndoDone)
		todos.DELETE("/:id", h.Delete)
	}
}
