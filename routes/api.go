package routes

import (
	"github.com/gin-gonic/gin"

	cartControllers "github.com/trendora/storefront-api/controllers/cart"
	orderControllers "github.com/trendora/storefront-api/controllers/order"
	productControllers "github.com/trendora/storefront-api/controllers/product"
	"github.com/trendora/storefront-api/middleware"
)

// SetupAPIRoutes registers the JWT-protected storefront API.
func SetupAPIRoutes(r *gin.Engine, svcs Services) {
	api := r.Group("/api")
	api.Use(middleware.ValidateToken)
	{
		products := api.Group("/products")
		{
			products.GET("", productControllers.GetProducts(svcs.Catalog))
			products.GET("/:id", productControllers.GetProductByID(svcs.Catalog))
			products.POST("", productControllers.CreateProduct(svcs.Catalog))
			products.PUT("/:id", productControllers.UpdateProduct(svcs.Catalog))
			products.DELETE("/:id", productControllers.DeleteProduct(svcs.Catalog))
		}

		cart := api.Group("/cart")
		{
			cart.GET("", cartControllers.GetUserCart(svcs.Cart))
			cart.POST("", cartControllers.AddToCart(svcs.Cart))
			cart.GET("/total", cartControllers.GetCartTotal(svcs.Cart))
			cart.PATCH("/:id", cartControllers.UpdateCartItem(svcs.Cart))
			cart.DELETE("/:id", cartControllers.DeleteCartItem(svcs.Cart))
			cart.DELETE("", cartControllers.ClearUserCart(svcs.Cart))
		}

		orders := api.Group("/orders")
		{
			orders.GET("", orderControllers.GetUserOrders(svcs.Orders))
			orders.POST("", orderControllers.PlaceOrder(svcs.Orders))
			orders.GET("/:id", orderControllers.GetOrder(svcs.Orders))
		}
	}
}
