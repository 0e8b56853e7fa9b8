package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ashugangtok/dietiq/internal/server/handlers"
)

// New wires the Gin engine with required routes and middlewares.
func New(records *handlers.RecordsHandler, reports *handlers.ReportsHandler, ai *handlers.AIHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	api := r.Group("/api")
	{
		api.POST("/records", records.Upload)
		api.POST("/records/sync", records.SyncFromSheet)
		api.DELETE("/records", records.Reset)

		api.GET("/reports/dashboard", reports.Dashboard)
		api.GET("/reports/sites", reports.Sites)
		api.GET("/reports/groups", reports.MealGroups)
		api.GET("/reports/pivot", reports.Pivot)
		api.GET("/reports/consolidated", reports.Consolidated)
		api.GET("/reports/packing", reports.Packing)
		api.PUT("/packing/:id", reports.SetPackingStatus)

		api.POST("/journal", records.AddJournalEntry)
		api.GET("/journal", records.ListJournal)

		api.POST("/ai/diet-plan", ai.ExtractDietPlan)
		api.POST("/ai/summary", ai.Summarize)
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
