package api

import (
	"directions-route-service/internal/api/handlers"
	"directions-route-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewRouter wires HTTP handlers with their dependencies.
// This is the API composition root (handlers stay unaware of concrete adapters).
func NewRouter(routes handlers.RouteService, defaultMode domain.TravelMode, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.Use(requestID(), requestLogger(logger), recovery(logger), corsPolicy())

	routeHandler := &handlers.RouteHandler{
		Routes:      routes,
		DefaultMode: defaultMode,
		Logger:      logger,
	}

	router.GET("/health", handlers.Health)

	v1 := router.Group("/v1")
	{
		v1.GET("/estimates", routeHandler.Estimate)
		v1.POST("/routes", routeHandler.Draw)
		v1.GET("/routes/current", routeHandler.Current)
		v1.DELETE("/routes/current", routeHandler.Clear)
	}

	return router
}
