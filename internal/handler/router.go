package handler

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-enrollment-api/internal/middleware"
	"github.com/noah-isme/campus-enrollment-api/internal/service"
	"github.com/noah-isme/campus-enrollment-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/campus-enrollment-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/campus-enrollment-api/pkg/middleware/requestid"
)

// RouterParams groups the dependencies of the HTTP surface.
type RouterParams struct {
	APIPrefix      string
	AllowedOrigins []string
	EnableDocs     bool
	Enrollments    *EnrollmentHandler
	Exports        *ExportHandler
	Metrics        *service.MetricsService
	Logger         *zap.Logger
}

// NewRouter builds the gin engine with middleware and every enrollment route.
func NewRouter(p RouterParams) *gin.Engine {
	if p.Logger == nil {
		p.Logger = zap.NewNop()
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(p.Logger))
	r.Use(corsmiddleware.New(p.AllowedOrigins))
	r.Use(middleware.Metrics(p.Metrics))

	ops := NewMetricsHandler(p.Metrics)
	r.GET("/health", ops.Health)
	r.GET("/ready", ops.Ready)
	r.GET("/metrics", ops.Prometheus)
	if p.EnableDocs {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(p.APIPrefix)
	enrollments := api.Group("/enrollments")
	enrollments.POST("", p.Enrollments.Create)
	enrollments.GET("/stats", p.Enrollments.Stats)
	enrollments.GET("/recent", p.Enrollments.Recent)
	enrollments.GET("/options", p.Enrollments.Options)

	students := api.Group("/students")
	students.GET("", p.Enrollments.Roster)
	students.GET("/export", p.Exports.Roster)
	students.GET("/:id", p.Enrollments.Get)

	return r
}
