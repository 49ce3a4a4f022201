package main // Entry point package

import (
	"log"
	"os"

	"github.com/joho/godotenv"    // .env loading for local development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/smart-parking/internal/auth"
	"github.com/iliyamo/smart-parking/internal/config"
	"github.com/iliyamo/smart-parking/internal/handler"
	"github.com/iliyamo/smart-parking/internal/middleware"
	"github.com/iliyamo/smart-parking/internal/parking"
	"github.com/iliyamo/smart-parking/internal/queue"
	"github.com/iliyamo/smart-parking/internal/router"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}
	cfg := config.Load()

	// The engine owns all facility state for the process lifetime.
	engine := parking.NewEngine(parking.Options{
		Capacity:     cfg.ParkingCapacity,
		WaitCapacity: cfg.WaitingCapacity,
		MaxVehicles:  cfg.MaxVehicles,
		FeePerHour:   cfg.FeePerHour,
	})

	tokens := auth.NewTokenStore()
	authHandler := handler.NewAuthHandler(cfg, tokens)

	// Broker side channel is opt-in: publishing and the audit consumer
	// only run when a broker URL is configured.
	brokerConfigured := os.Getenv("RABBITMQ_URL") != "" || os.Getenv("AMQP_URL") != ""
	parkingHandler := handler.NewParkingHandler(engine, brokerConfigured)
	browseHandler := handler.NewBrowseHandler(engine)

	if brokerConfigured {
		go func() {
			if err := queue.StartSessionConsumer(); err != nil {
				log.Printf("session consumer stopped: %v", err)
			}
		}()
	}

	// Redis is optional; a nil client turns cache and limiter into
	// pass-throughs.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	rateLimitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterParking(e, parkingHandler, browseHandler, cfg.JWTSecret, rateLimitMW, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, slots=%d, waiting=%d, fee=%d/hr)",
		addr, cfg.Env, cfg.ParkingCapacity, cfg.WaitingCapacity, cfg.FeePerHour)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
