package server

import (
	"net/http"
	"time"

	"kpa-forms-api/config"
	"kpa-forms-api/internal/bogie"
	"kpa-forms-api/internal/database"
	"kpa-forms-api/internal/metrics"
	"kpa-forms-api/internal/middlewares"
	"kpa-forms-api/internal/wheelspec"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version is overridden at build time with -ldflags.
var Version = "dev"

type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Logger   *zap.Logger
	Registry *prometheus.Registry
}

func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := d.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	m := metrics.New(registry)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.Logger(logger))
	r.Use(middlewares.Metrics(m))

	origins := []string{"http://localhost:3000"}
	if d.Config != nil {
		if o := d.Config.AllowedOrigins(); len(o) > 0 {
			origins = o
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", middlewares.RequestIDHeader},
		ExposeHeaders:    []string{middlewares.RequestIDHeader, "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Welcome to the KPA Form Data API"})
	})
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": Version})
	})
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		if err := database.Ping(d.DB); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler(registry)))

	wheelSpecService := &wheelspec.WheelSpecService{DB: d.DB, Logger: logger.Named("wheelspec")}
	wheelspec.RegisterRoutes(r, wheelSpecService, m)

	bogieService := &bogie.BogieService{DB: d.DB, Logger: logger.Named("bogie")}
	bogie.RegisterRoutes(r, bogieService, m)

	return r
}
