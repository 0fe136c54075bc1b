package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	dashboardh "github.com/salestracker/salestracker-server/internal/dashboard/handler"
	itemh "github.com/salestracker/salestracker-server/internal/item/handler"
	orderh "github.com/salestracker/salestracker-server/internal/order/handler"
)

// New wires the Gin engine with routes and middleware.
func New(items *itemh.ItemHandler, orders *orderh.OrderHandler, dash *dashboardh.DashboardHandler, logger *zap.Logger, appEnv string) *gin.Engine {
	if appEnv != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	itemRoutes := v1.Group("/items")
	{
		itemRoutes.GET("", items.List)
		itemRoutes.POST("", items.Create)
		itemRoutes.GET("/search", items.Search)
		itemRoutes.GET("/low-stock", items.LowStock)
		itemRoutes.GET("/backordered", items.Backordered)
		itemRoutes.GET("/:id", items.Get)
		itemRoutes.PUT("/:id", items.Update)
		itemRoutes.DELETE("/:id", items.Delete)
		itemRoutes.POST("/:id/inventory/add", items.AddInventory)
		itemRoutes.POST("/:id/inventory/remove", items.RemoveInventory)
		itemRoutes.PUT("/:id/inventory", items.SetInventory)
	}

	orderRoutes := v1.Group("/orders")
	{
		orderRoutes.GET("", orders.List)
		orderRoutes.POST("", orders.Create)
		orderRoutes.GET("/search", orders.SearchByCustomer)
		orderRoutes.GET("/range", orders.ByDateRange)
		orderRoutes.GET("/pending-deliveries", orders.PendingDeliveries)
		orderRoutes.GET("/unpaid", orders.Unpaid)
		orderRoutes.GET("/:id", orders.Get)
		orderRoutes.PUT("/:id", orders.Update)
		orderRoutes.DELETE("/:id", orders.Delete)
		orderRoutes.POST("/:id/deliver", orders.MarkDelivered)
		orderRoutes.POST("/:id/pay", orders.MarkPaid)
	}

	dashRoutes := v1.Group("/dashboard")
	{
		dashRoutes.GET("/summary", dash.Summary)
		dashRoutes.GET("/sales/monthly", dash.MonthlySales)
		dashRoutes.GET("/sales/daily", dash.DailySales)
		dashRoutes.GET("/top-items", dash.TopItems)
		dashRoutes.GET("/backordered", dash.Backordered)
		dashRoutes.GET("/inventory", dash.InventorySummary)
	}

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
