package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"capprice/internal/handler"
	"capprice/internal/middleware"
)

// Setup configures the Gin engine with all routes and middleware.
func Setup(
	logger *zap.Logger,
	corsOrigins []string,
	simulationH *handler.SimulationHandler,
	statsH *handler.StatsHandler,
	healthH *handler.HealthHandler,
) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(corsOrigins))

	// Health checks
	r.GET("/healthz", healthH.Liveness)
	r.GET("/readyz", healthH.Readiness)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	v1.POST("/normalize", simulationH.Normalize)
	v1.GET("/stats", statsH.GetStats)

	simulations := v1.Group("/simulations")
	simulations.POST("", simulationH.Create)
	simulations.GET("", simulationH.List)
	simulations.GET("/export/csv", simulationH.ExportCSV)
	simulations.GET("/:id", simulationH.GetByID)
	simulations.GET("/:id/report", simulationH.ReportURL)
	simulations.POST("/:id/email", simulationH.EmailReport)

	return r
}
