package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stayradar/rentadmin_backend/controllers"
	"github.com/stayradar/rentadmin_backend/middleware"
)

// RegisterAdminRoutes sets up all admin-related routes
func RegisterAdminRoutes(e *echo.Echo, db *mongo.Database, cache *redis.Client) {
	adminController := controllers.NewAdminController(db)
	payoutController := controllers.NewPayoutController(db)
	paymentController := controllers.NewPaymentController(db)
	analyticsController := controllers.NewAnalyticsController(db, cache)
	settingsController := controllers.NewSettingsController(db)

	// Admin routes group
	admin := e.Group("/api/admin")

	// Public routes (no auth required)
	admin.POST("/login", adminController.Login)

	// Super-admin protected routes
	superAdmin := admin.Group("")
	superAdmin.Use(middleware.JWTMiddleware())
	superAdmin.Use(middleware.RequireUserType("super_admin"))
	superAdmin.POST("/register", adminController.RegisterAdmin)

	// Protected routes (require admin authentication)
	protected := admin.Group("")
	protected.Use(middleware.JWTMiddleware())
	protected.Use(middleware.RequireUserType("admin", "super_admin"))

	// Payout state machine
	protected.POST("/payments/:id/allocate-owner", payoutController.AllocateOwnerPayout)
	protected.PATCH("/payments/:id/transfer-owner", payoutController.TransferOwnerPayout)
	protected.PATCH("/payments/:id/status", payoutController.UpdatePaymentStatus)

	// List surfaces
	protected.GET("/payments", paymentController.GetPayments)
	protected.GET("/bookings", paymentController.GetBookings)
	protected.PATCH("/bookings/:id/status", paymentController.UpdateBookingStatus)
	protected.GET("/audit-logs", paymentController.GetAuditLogs)

	// Dashboards
	protected.GET("/overview", analyticsController.GetOverview)
	protected.GET("/revenue-command", analyticsController.GetRevenueCommand)

	// Platform settings
	protected.GET("/settings", settingsController.GetSettings)
	protected.PUT("/settings", settingsController.UpdateSettings)
}
