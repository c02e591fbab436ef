package router

import (
	"net/http"
	"time"

	"ct_studio_backend/internal/handlers"
	"ct_studio_backend/internal/middleware"
	"ct_studio_backend/internal/objectstore"
	"ct_studio_backend/internal/repositories"
	"ct_studio_backend/internal/rowstore"
	"ct_studio_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Dependencies carries everything the route tree needs that is built in main.
type Dependencies struct {
	Store           rowstore.Store
	Objects         objectstore.Store
	AdminUsername   string
	AdminPassHash   string
	TokenTTL        time.Duration
	MediaRootFolder string
}

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, deps Dependencies) {
	// Initialize Repositories
	orderRepo := repositories.NewOrderRepository(deps.Store)
	masterRepo := repositories.NewMasterItemRepository(deps.Store)
	staffRepo := repositories.NewStaffRepository(deps.Store)
	customerRepo := repositories.NewCustomerRepository(deps.Store)
	paymentRepo := repositories.NewPaymentRepository(deps.Store)
	marketingRepo := repositories.NewMarketingRepository(deps.Store)

	// Initialize Services
	authService := services.NewAuthService(deps.AdminUsername, deps.AdminPassHash, deps.TokenTTL)
	orderService := services.NewOrderService(orderRepo, masterRepo)
	paymentService := services.NewPaymentService(paymentRepo, orderRepo)
	metricsService := services.NewMetricsService(orderRepo, paymentRepo, marketingRepo)
	customerService := services.NewCustomerService(customerRepo, deps.Objects, deps.MediaRootFolder)
	staffService := services.NewStaffService(staffRepo)
	marketingService := services.NewMarketingService(marketingRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	orderHandler := handlers.NewOrderHandler(orderService)
	paymentHandler := handlers.NewPaymentHandler(paymentService)
	metricsHandler := handlers.NewMetricsHandler(metricsService)
	customerHandler := handlers.NewCustomerHandler(customerService)
	staffHandler := handlers.NewStaffHandler(staffService)
	marketingHandler := handlers.NewMarketingHandler(marketingService)

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := engine.Group("/api/v1")

	// Public routes
	SetupAuthRoutes(apiV1, authHandler)

	// Authenticated routes
	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupOrderRoutes(authenticated, orderHandler, paymentHandler)
		SetupPaymentRoutes(authenticated, paymentHandler)
		SetupMetricsRoutes(authenticated, metricsHandler)
		SetupCustomerRoutes(authenticated, customerHandler)
		SetupStaffRoutes(authenticated, staffHandler)
		SetupMarketingRoutes(authenticated, marketingHandler)
	}
}
