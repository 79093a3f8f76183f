package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/meridianbay/hotel-booking/internal/booking"
	"github.com/meridianbay/hotel-booking/internal/config"
	"github.com/meridianbay/hotel-booking/internal/database"
	"github.com/meridianbay/hotel-booking/internal/handler"
	"github.com/meridianbay/hotel-booking/internal/lock"
	"github.com/meridianbay/hotel-booking/internal/payment"
	"github.com/meridianbay/hotel-booking/internal/queue"
	"github.com/meridianbay/hotel-booking/internal/repository"
	"github.com/meridianbay/hotel-booking/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, relying on environment")
	}
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	defer db.Close()

	// Redis is optional: without it the rate limiter passes requests
	// through and bookings fall back to the unguarded availability check.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable, booking lock and rate limiting disabled")
	}

	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	admins := repository.NewAdminUserRepo(db)

	stripeProvider := payment.NewStripeProvider(cfg.StripeSecretKey, cfg.StripeWebhookSecret)

	var locker booking.RoomLocker
	if rdb != nil {
		locker = lock.NewRoomLock(rdb, cfg.BookingLockTTL)
	}
	svc := booking.NewService(rooms, reservations, stripeProvider, locker, booking.Options{
		Currency:       cfg.Currency,
		ClientBaseURL:  cfg.ClientBaseURL,
		PendingHoldTTL: cfg.PendingHoldTTL,
	})

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e, router.Deps{
		Public:     handler.NewPublicHandler(rooms, svc, cfg.Currency),
		Booking:    handler.NewBookingHandler(svc, reservations, rooms),
		Webhook:    handler.NewWebhookHandler(stripeProvider, svc, reservations),
		AdminAuth:  handler.NewAdminAuthHandler(cfg, admins),
		AdminRes:   handler.NewAdminReservationHandler(reservations, rooms),
		AdminRooms: handler.NewAdminRoomHandler(rooms),
		JWTSecret:  cfg.JWTSecret,
		RateLimit:  config.LoadRateLimitConfig(),
		Redis:      rdb,
	})

	// Background consumer recording confirmed reservations off the broker.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
