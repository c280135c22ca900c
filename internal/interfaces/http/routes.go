package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupRoutes(router *gin.Engine, handler *Handler) {
	api := router.Group("/api/v1")
	{
		api.POST("/requests/market", handler.RequestMarketData)
		api.POST("/requests/custom", handler.RequestCustomData)
		api.POST("/requests/forex", handler.RequestForexData)
		api.GET("/requests", handler.ListRequests)
		api.GET("/requests/:id", handler.GetSnapshot)
		api.DELETE("/requests/:id", handler.CancelRequest)

		api.GET("/historical/:symbol", handler.GetHistorical)
		api.GET("/intraday/:symbol", handler.GetIntraday)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
