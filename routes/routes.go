package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendora/storefront-api/services"
)

// Services bundles everything the route groups hand to their controllers.
type Services struct {
	Catalog *services.CatalogService
	Cart    *services.CartService
	Orders  *services.OrderService
	Report  *services.ReportService
}

// SetupRoutes is the single entry point that wires up the public, API, and
// admin route groups.
func SetupRoutes(r *gin.Engine, svcs Services) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	SetupAPIRoutes(r, svcs)
	SetupAdminRoutes(r, svcs)
}
