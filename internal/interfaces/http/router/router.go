package router

import (
	"github.com/gin-gonic/gin"

	"customer_extract/internal/interfaces/http/handler"
)

func RegisterRoutes(r *gin.Engine, extractHandler *handler.ExtractHandler) {
	r.GET("/healthz", handler.Health)

	api := r.Group("/api")
	{
		api.POST("/extract", extractHandler.Extract)
	}
}
