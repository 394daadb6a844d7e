package restapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures and returns the Gin router.
func SetupRouter(tokenHandler *TokenHandler, calculatorHandler *CalculatorHandler, logger *zap.Logger) *gin.Engine {
	router := gin.New()
	router.Use(ZapLoggerMiddleware(logger))
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true // the dashboard is served from a separate origin
	corsConfig.AllowMethods = []string{"GET", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	v1 := router.Group("/api/v1")
	{
		v1.GET("/tokens", tokenHandler.GetTokenListHandler)
		v1.GET("/tokens/:query", tokenHandler.GetTokenHandler)
		v1.GET("/market", tokenHandler.GetMarketOverviewHandler)
		v1.GET("/searches/recent", tokenHandler.GetRecentSearchesHandler)
		v1.GET("/calculator/liquidation", calculatorHandler.GetLiquidationHandler)
		v1.GET("/calculator/tpsl", calculatorHandler.GetTpSlHandler)
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })

	return router
}
