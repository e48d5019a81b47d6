package v1

import (
	"github.com/gin-gonic/gin"
)

// RegisterRoutes регистрирует все маршруты API v1
func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	fires := api.Group("/fires")
	{
		// Ингестия обращается к внешнему фиду, поэтому требует ключ
		fires.POST("/ingest", APIKeyAuthMiddleware(h.cfg, h.logger), h.ingestFires)
		fires.POST("/detect", h.detectFires)
		fires.GET("/statistics", h.getStatistics)
		fires.GET("/regions", h.listRegions)
		fires.GET("/date-range", h.getDateRange)
	}

	predictions := api.Group("/predictions")
	{
		predictions.POST("/generate", h.generatePredictions)
		predictions.GET("/top", h.topPredictions)
		predictions.GET("/model-info", h.getModelInfo)
		predictions.GET("/factors", h.getFactors)
	}

	api.POST("/reports", h.submitReport)

	// Маршрут Health-check
	api.GET("/system/health", h.healthCheck)
}
