package router

import (
	"ct_studio_backend/internal/handlers"

	"github.com/gin-gonic/gin"
)

// SetupAuthRoutes sets up the public authentication routes.
func SetupAuthRoutes(apiGroup *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	authRoutes := apiGroup.Group("/auth")
	{
		authRoutes.POST("/login", authHandler.Login)
	}
}

// SetupOrderRoutes sets up the order and catalog routes.
func SetupOrderRoutes(authenticatedGroup *gin.RouterGroup, orderHandler *handlers.OrderHandler, paymentHandler *handlers.PaymentHandler) {
	orderRoutes := authenticatedGroup.Group("/orders")
	{
		orderRoutes.POST("", orderHandler.CreateOrder)
		orderRoutes.GET("", orderHandler.GetOrders)
		orderRoutes.GET("/:orderID", orderHandler.GetOrder)
		orderRoutes.PATCH("/:orderID", orderHandler.UpdateOrder)
		orderRoutes.DELETE("/:orderID", orderHandler.DeleteOrder)

		orderRoutes.POST("/:orderID/items", orderHandler.AddOrderItem)
		orderRoutes.POST("/:orderID/total", orderHandler.RecomputeTotal)

		orderRoutes.GET("/:orderID/payments", paymentHandler.GetPaymentSummary)
		orderRoutes.PUT("/:orderID/payment-info", paymentHandler.UpdateOrderPaymentInfo)
	}

	itemRoutes := authenticatedGroup.Group("/order-items")
	{
		itemRoutes.DELETE("/:itemID", orderHandler.RemoveOrderItem)
	}

	catalogRoutes := authenticatedGroup.Group("/catalog")
	{
		catalogRoutes.GET("/items", orderHandler.GetMasterItems)
	}
}

// SetupPaymentRoutes sets up the payment routes.
func SetupPaymentRoutes(authenticatedGroup *gin.RouterGroup, paymentHandler *handlers.PaymentHandler) {
	paymentRoutes := authenticatedGroup.Group("/payments")
	{
		paymentRoutes.POST("", paymentHandler.RecordPayment)
	}
}

// SetupMetricsRoutes sets up the dashboard routes.
func SetupMetricsRoutes(authenticatedGroup *gin.RouterGroup, metricsHandler *handlers.MetricsHandler) {
	metricsRoutes := authenticatedGroup.Group("/metrics")
	{
		metricsRoutes.GET("/dashboard", metricsHandler.GetDashboardSummary)
		metricsRoutes.GET("/sales-performance", metricsHandler.GetSalesPerformance)
	}
}

// SetupCustomerRoutes sets up the customer and media asset routes.
func SetupCustomerRoutes(authenticatedGroup *gin.RouterGroup, customerHandler *handlers.CustomerHandler) {
	customerRoutes := authenticatedGroup.Group("/customers")
	{
		customerRoutes.POST("", customerHandler.CreateCustomer)
		customerRoutes.GET("", customerHandler.GetCustomers)
		customerRoutes.GET("/:customerID", customerHandler.GetCustomer)
		customerRoutes.PATCH("/:customerID", customerHandler.UpdateCustomer)
		customerRoutes.DELETE("/:customerID", customerHandler.DeleteCustomer)

		customerRoutes.GET("/:customerID/media-folder", customerHandler.GetMediaFolder)
		customerRoutes.POST("/:customerID/assets", customerHandler.UploadAsset)
		customerRoutes.GET("/:customerID/assets", customerHandler.ListAssets)
	}

	assetRoutes := authenticatedGroup.Group("/assets")
	{
		assetRoutes.DELETE("/:fileID", customerHandler.DeleteAsset)
	}
}

// SetupStaffRoutes sets up the staff routes.
func SetupStaffRoutes(authenticatedGroup *gin.RouterGroup, staffHandler *handlers.StaffHandler) {
	staffRoutes := authenticatedGroup.Group("/staff")
	{
		staffRoutes.GET("", staffHandler.GetStaff)
	}
}

// SetupMarketingRoutes sets up the chat and ads budget routes.
func SetupMarketingRoutes(authenticatedGroup *gin.RouterGroup, marketingHandler *handlers.MarketingHandler) {
	marketingRoutes := authenticatedGroup.Group("/marketing")
	{
		marketingRoutes.PUT("/chats", marketingHandler.UpsertChatRecord)
		marketingRoutes.GET("/chats", marketingHandler.GetChatRecords)
		marketingRoutes.PUT("/ads-budget", marketingHandler.UpsertAdBudget)
		marketingRoutes.GET("/ads-budget", marketingHandler.GetAdBudgets)
	}
}
