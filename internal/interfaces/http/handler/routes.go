package handler

import (
	"github.com/craftshop/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts account and session endpoints
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.GetProfile)
	auth.PUT("/me/address", h.UpdateAddress)
}

// RegisterRoutes mounts catalog endpoints; writes are admin only
func (h *ProductHandler) RegisterRoutes(rg *gin.RouterGroup) {
	products := rg.Group("/products")
	products.GET("", h.List)
	products.GET("/:id", h.Get)
	products.GET("/:id/media", h.ListMedia)

	admin := rg.Group("/admin", middleware.AdminOnly())
	admin.POST("/products", h.Create)
	admin.PUT("/products/:id", h.Update)
	admin.DELETE("/products/:id", h.Delete)
	admin.POST("/products/:id/media", h.RequestMediaUpload)
	admin.POST("/media/:id/confirm", h.ConfirmMediaUpload)
	admin.DELETE("/media/:id", h.DeleteMedia)
}

// RegisterRoutes mounts shopping cart endpoints
func (h *CartHandler) RegisterRoutes(rg *gin.RouterGroup) {
	cart := rg.Group("/cart")
	cart.GET("", h.Get)
	cart.DELETE("", h.Clear)
	cart.POST("/items", h.AddItem)
	cart.PATCH("/items/:id", h.UpdateQuantity)
	cart.DELETE("/items/:id", h.RemoveItem)
}

// RegisterRoutes mounts checkout endpoints
func (h *CheckoutHandler) RegisterRoutes(rg *gin.RouterGroup) {
	checkout := rg.Group("/checkout")
	checkout.POST("/intent", h.CreateIntent)
	checkout.POST("/verify", h.Verify)
}

// RegisterRoutes mounts order endpoints; listing all orders and delivery are
// admin only
func (h *OrderHandler) RegisterRoutes(rg *gin.RouterGroup) {
	orders := rg.Group("/orders")
	orders.GET("", h.MyOrders)
	orders.GET("/:id", h.Get)

	admin := rg.Group("/admin", middleware.AdminOnly())
	admin.GET("/orders", h.ListAll)
	admin.POST("/orders/:id/deliver", h.MarkDelivered)
}

// RegisterRoutes mounts review endpoints
func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reviews := rg.Group("/reviews")
	reviews.POST("", h.Create)
	reviews.GET("/mine", h.MyReviews)

	rg.GET("/products/:id/reviews", h.ListByProduct)
}

// RegisterRoutes mounts the admin sales dashboard
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/admin/reports", middleware.AdminOnly())
	reports.GET("/dashboard", h.Dashboard)
	reports.GET("/summary", h.Summary)
	reports.GET("/status", h.StatusBreakdown)
	reports.GET("/trend", h.Trend)
	reports.GET("/top-products", h.TopProducts)
}

// RegisterRoutes mounts liveness and readiness probes
func (h *HealthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/ready", h.Ready)
}
