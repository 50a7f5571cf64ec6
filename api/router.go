package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/travelbook/holidaybooking/internal/service/admin"
	"github.com/travelbook/holidaybooking/internal/service/auth"
	"github.com/travelbook/holidaybooking/internal/service/cart"
	"github.com/travelbook/holidaybooking/internal/service/catalog"
	"github.com/travelbook/holidaybooking/internal/service/order"
)

type Services struct {
	Auth    auth.AuthUseCase
	Catalog catalog.CatalogUseCase
	Cart    cart.CartUseCase
	Orders  order.OrderUseCase
	Admin   admin.AdminUseCase
}

// NewRouter assembles the HTTP surface. Catalog routes sit directly
// under /api and are public; cart and order routes need a verified
// token, admin routes need the admin claim on top of that.
func NewRouter(svcs Services, swaggerDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	authRequired := AuthRequired(svcs.Auth)
	adminRequired := AdminRequired()

	api := router.Group("/api")

	NewAuthHandler(svcs.Auth).Register(api.Group("/auth"), authRequired)
	NewCatalogHandler(svcs.Catalog).Register(api)

	cartGroup := api.Group("/cart", authRequired)
	NewCartHandler(svcs.Cart).Register(cartGroup)

	orderGroup := api.Group("/orders", authRequired)
	NewOrderHandler(svcs.Orders).Register(orderGroup)

	adminGroup := api.Group("/admin", authRequired, adminRequired)
	NewAdminHandler(svcs.Admin).Register(adminGroup)

	if swaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(swaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
