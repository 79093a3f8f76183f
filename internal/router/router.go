// Package router wires HTTP routes to their handlers: the public
// catalog and booking API, the payment webhook, and the authenticated
// admin back office.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/meridianbay/hotel-booking/internal/config"
	"github.com/meridianbay/hotel-booking/internal/handler"
	"github.com/meridianbay/hotel-booking/internal/middleware"
)

// Deps bundles everything route registration needs. The Redis client
// may be nil; rate limiting then degrades to a pass-through.
type Deps struct {
	Public     *handler.PublicHandler
	Booking    *handler.BookingHandler
	Webhook    *handler.WebhookHandler
	AdminAuth  *handler.AdminAuthHandler
	AdminRes   *handler.AdminReservationHandler
	AdminRooms *handler.AdminRoomHandler
	JWTSecret  string
	RateLimit  config.RateLimitConfig
	Redis      *redis.Client
}

// RegisterRoutes registers every route on the provided Echo instance.
func RegisterRoutes(e *echo.Echo, d Deps) {
	e.GET("/healthz", handler.Health)

	limiter := middleware.RateLimit(d.RateLimit, d.Redis)

	// Public catalog and booking flow.
	api := e.Group("/api")
	api.GET("/rooms", d.Public.ListRooms)
	api.GET("/rooms/:slug", d.Public.GetRoomBySlug)
	api.POST("/availability", d.Public.CheckAvailability, limiter)
	api.POST("/reservations/checkout", d.Booking.CreateIntent, limiter)
	api.GET("/reservations/session/:sessionId", d.Booking.GetBySession)

	// Payment provider callback. Signature-verified in the handler; no
	// other middleware so the raw body reaches verification untouched.
	api.POST("/webhook/stripe", d.Webhook.HandleStripeWebhook)

	// Admin back office. Login is open; everything else requires a token.
	e.POST("/api/admin/login", d.AdminAuth.Login, limiter)

	admin := e.Group("/api/admin")
	admin.Use(middleware.AdminAuth(d.JWTSecret))
	admin.GET("/reservations", d.AdminRes.List)
	admin.GET("/reservations/export", d.AdminRes.ExportCSV)
	admin.GET("/reservations/:id", d.AdminRes.Get)
	admin.PATCH("/reservations/:id/status", d.AdminRes.UpdateStatus)
	admin.POST("/rooms", d.AdminRooms.Create)
	admin.PUT("/rooms/:id", d.AdminRooms.Update)
	admin.DELETE("/rooms/:id", d.AdminRooms.Delete)
}
