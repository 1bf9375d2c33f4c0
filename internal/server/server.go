package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/storebase/storefront/app/auth"
	"github.com/storebase/storefront/app/cart"
	"github.com/storebase/storefront/app/catalog"
	"github.com/storebase/storefront/app/categories"
	"github.com/storebase/storefront/app/orders"
	"github.com/storebase/storefront/app/reviews"
	"github.com/storebase/storefront/app/users"
	"github.com/storebase/storefront/internal/config"
	"github.com/storebase/storefront/internal/database"
	"github.com/storebase/storefront/models"
)

type Server struct {
	router *gin.Engine
	db     *gorm.DB
}

// NewServer builds the repositories, handlers, and routes on top of the
// given storage handle.
func NewServer(db *gorm.DB, cfg *config.Config) *Server {
	router := gin.Default()

	server := &Server{
		router: router,
		db:     db,
	}

	productsRepo := models.NewProductsRepository(db)
	categoriesRepo := models.NewCategoriesRepository(db)
	usersRepo := models.NewUsersRepository(db)
	cartsRepo := models.NewCartsRepository(db)
	ordersRepo := models.NewOrdersRepository(db)
	reviewsRepo := models.NewReviewsRepository(db)

	authHandler := auth.NewHandler(usersRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	catalogHandler := catalog.NewCatalogHandler(productsRepo)
	categoryHandler := categories.NewCategoryHandler(categoriesRepo, productsRepo)
	cartHandler := cart.NewCartHandler(cartsRepo, productsRepo)
	orderHandler := orders.NewOrderHandler(ordersRepo, cartsRepo)
	reviewHandler := reviews.NewReviewHandler(reviewsRepo, productsRepo)
	userHandler := users.NewUserHandler(usersRepo)

	authed := auth.Middleware(cfg.Auth.JWTSecret)
	admin := auth.RequireAdmin()

	api := router.Group("/api")
	{
		api.GET("/health", server.healthCheck)

		api.POST("/auth/register", authHandler.HandleRegister)
		api.POST("/auth/login", authHandler.HandleLogin)

		api.GET("/catalog", catalogHandler.HandleGet)
		api.GET("/catalog/:id", catalogHandler.HandleGetProduct)

		api.GET("/categories", categoryHandler.HandleGetAll)
		api.GET("/categories/:id/products", categoryHandler.HandleGetProducts)

		api.GET("/products/:id/reviews", reviewHandler.HandleList)
		api.POST("/products/:id/reviews", authed, reviewHandler.HandleCreate)

		api.GET("/users/me", authed, userHandler.HandleMe)
		api.PUT("/users/me", authed, userHandler.HandleUpdateMe)

		api.GET("/cart", authed, cartHandler.HandleGet)
		api.POST("/cart/items", authed, cartHandler.HandleAddItem)
		api.PUT("/cart/items/:id", authed, cartHandler.HandleUpdateItem)
		api.DELETE("/cart/items/:id", authed, cartHandler.HandleRemoveItem)
		api.DELETE("/cart", authed, cartHandler.HandleClear)

		api.POST("/orders", authed, orderHandler.HandleCheckout)
		api.GET("/orders", authed, orderHandler.HandleList)
		api.GET("/orders/:id", authed, orderHandler.HandleGet)
	}

	back := router.Group("/api/admin", authed, admin)
	{
		back.POST("/products", catalogHandler.HandleCreate)
		back.PUT("/products/:id", catalogHandler.HandleUpdate)
		back.DELETE("/products/:id", catalogHandler.HandleDelete)

		back.POST("/categories", categoryHandler.HandleCreate)
		back.PUT("/categories/:id", categoryHandler.HandleUpdate)
		back.DELETE("/categories/:id", categoryHandler.HandleDelete)

		back.GET("/orders", orderHandler.HandleListAll)
		back.PUT("/orders/:id/status", orderHandler.HandleUpdateStatus)

		back.GET("/users", userHandler.HandleList)
		back.DELETE("/users/:id", userHandler.HandleDelete)
	}

	return server
}

// healthCheck endpoint for monitoring
func (s *Server) healthCheck(c *gin.Context) {
	if err := database.HealthCheck(s.db); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "error",
			"error":  "database connection failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "storefront",
	})
}

// Start starts the HTTP server
func (s *Server) Start(addr string) error {
	return s.router.Run(addr)
}
