package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/pennywise/pennywise-backend/internal/middleware"
)

// Handlers groups every HTTP handler the API serves
type Handlers struct {
	Auth      *AuthHandler
	Profile   *ProfileHandler
	Category  *CategoryHandler
	Entry     *EntryHandler
	Receipt   *ReceiptHandler
	Budget    *BudgetHandler
	Report    *ReportHandler
	Export    *ExportHandler
	Assistant *AssistantHandler
	WebSocket *WebSocketHandler
}

// RegisterRoutes sets up all API routes
func RegisterRoutes(e *echo.Echo, authMiddleware *middleware.AuthMiddleware, assistantLimiter *middleware.RateLimiter, h Handlers) {
	// API version 1
	api := e.Group("/api/v1")

	// Auth routes; the callback runs before the user exists
	auth := api.Group("/auth")
	auth.Use(authMiddleware.Authenticate())
	auth.POST("/callback", h.Auth.Callback)
	auth.GET("/me", h.Auth.Me, authMiddleware.RequireUser())

	// Everything below requires a provisioned user
	protected := api.Group("", authMiddleware.Authenticate(), authMiddleware.RequireUser())

	profile := protected.Group("/profile")
	profile.GET("", h.Profile.GetProfile)
	profile.DELETE("", h.Profile.DeleteProfile)

	categories := protected.Group("/categories")
	categories.GET("", h.Category.GetCategories)
	categories.POST("", h.Category.CreateCategory)
	categories.PUT("/:id", h.Category.UpdateCategory)
	categories.DELETE("/:id", h.Category.DeleteCategory)

	entries := protected.Group("/entries")
	entries.GET("", h.Entry.ListEntries)
	entries.POST("", h.Entry.CreateEntry)
	entries.GET("/:id", h.Entry.GetEntry)
	entries.PUT("/:id", h.Entry.UpdateEntry)
	entries.DELETE("/:id", h.Entry.DeleteEntry)
	entries.POST("/:id/receipt", h.Receipt.UploadReceipt)
	entries.GET("/:id/receipt", h.Receipt.GetReceipt)
	entries.DELETE("/:id/receipt", h.Receipt.DeleteReceipt)

	budgets := protected.Group("/budgets")
	budgets.GET("/:year/:month", h.Budget.GetBudgets)
	budgets.PUT("/:year/:month", h.Budget.SetBudget)
	budgets.DELETE("/:id", h.Budget.DeleteBudget)

	protected.GET("/reports/monthly", h.Report.GetMonthly)

	exports := protected.Group("/exports")
	exports.GET("/entries.csv", h.Export.ExportCSV)
	exports.GET("/entries.xlsx", h.Export.ExportXLSX)

	assistant := protected.Group("/assistant", middleware.RateLimitMiddleware(assistantLimiter))
	assistant.POST("/query", h.Assistant.Query)

	// WebSocket authenticates with a query token instead of the header
	api.GET("/ws", h.WebSocket.HandleWS)
}
