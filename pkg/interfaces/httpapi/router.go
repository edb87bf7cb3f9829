package httpapi

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
	httpH "github.com/vsinha/takeoff/pkg/interfaces/httpapi/handlers"
	httpMW "github.com/vsinha/takeoff/pkg/interfaces/httpapi/middleware"
)

type RouterConfig struct {
	Logger      *logger.Logger
	ServiceName string

	CalculationHandler *httpH.CalculationHandler
	EstimateHandler    *httpH.EstimateHandler
	CatalogHandler     *httpH.CatalogHandler
	RunHandler         *httpH.RunHandler
	HealthHandler      *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.RequestID())
	r.Use(httpMW.RequestLogger(cfg.Logger))
	r.Use(httpMW.CORS())

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api/v1")
	{
		// Calculators
		if cfg.CalculationHandler != nil {
			api.POST("/volumes", cfg.CalculationHandler.Volumes)
			api.POST("/rebar", cfg.CalculationHandler.Rebar)
			api.POST("/cost-lines", cfg.CalculationHandler.CostLines)
			api.POST("/schedules", cfg.CalculationHandler.Schedule)
		}

		// Estimates
		if cfg.EstimateHandler != nil {
			api.POST("/estimates", cfg.EstimateHandler.Estimate)
			api.POST("/estimates/batch", cfg.EstimateHandler.EstimateBatch)
		}

		// Run history
		if cfg.RunHandler != nil {
			api.GET("/runs", cfg.RunHandler.ListAllRuns)
			api.GET("/proposals/:proposal_id/runs", cfg.RunHandler.ListRuns)
		}

		// Catalogs
		if cfg.CatalogHandler != nil {
			api.GET("/rebar-masterlist", cfg.CatalogHandler.ListRebarMasterlist)
			api.GET("/resources", cfg.CatalogHandler.ListResources)
		}
	}

	return r
}
