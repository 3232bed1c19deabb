package routes

import (
	"github.com/gin-gonic/gin"

	orderControllers "github.com/trendora/storefront-api/controllers/order"
	productControllers "github.com/trendora/storefront-api/controllers/product"
	reportControllers "github.com/trendora/storefront-api/controllers/report"
	"github.com/trendora/storefront-api/middleware"
)

// SetupAdminRoutes registers the API-key-protected admin endpoints.
func SetupAdminRoutes(r *gin.Engine, svcs Services) {
	admin := r.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/products/export", productControllers.ExportProductsToExcel(svcs.Catalog))
		admin.GET("/orders/feed", orderControllers.OrderFeedHandler)
		admin.POST("/reports/daily", reportControllers.TriggerDailyReport(svcs.Report))
	}
}
