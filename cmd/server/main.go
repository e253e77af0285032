package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/airport-booking/internal/config"
	"github.com/iliyamo/airport-booking/internal/database"
	"github.com/iliyamo/airport-booking/internal/handler"
	appmw "github.com/iliyamo/airport-booking/internal/middleware"
	"github.com/iliyamo/airport-booking/internal/queue"
	"github.com/iliyamo/airport-booking/internal/repository"
	"github.com/iliyamo/airport-booking/internal/router"
	"github.com/iliyamo/airport-booking/internal/service"
	"github.com/iliyamo/airport-booking/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	// Redis is optional; nil disables the cache and rate limiter.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	fleet := repository.NewFleetRepo(db)
	airports := repository.NewAirportRepo(db)
	routes := repository.NewRouteRepo(db)
	crews := repository.NewCrewRepo(db)
	flights := repository.NewFlightRepo(db)
	orders := repository.NewOrderRepo(db)
	tickets := repository.NewTicketRepo(db)

	orderSvc := service.NewOrderService(flights, orders, service.PublisherFunc(queue.PublishOrderPlaced))
	images := storage.NewImageStore(cfg.UploadDir)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	catalogH := handler.NewCatalogHandler(fleet, airports, routes, crews, flights)
	adminH := handler.NewAdminHandler(fleet, airports, routes, crews, flights, images)
	orderH := handler.NewOrderHandler(orderSvc, orders, tickets)

	e := echo.New()
	e.Use(appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	// Catalog reads go through the Redis response cache; booking and
	// admin endpoints are per-user or mutating and stay uncached.
	router.RegisterCatalog(e, catalogH, cfg.JWTSecret, appmw.NewRedisCache(config.LoadCacheConfig(), rdb))
	router.RegisterAdmin(e, adminH, cfg.JWTSecret)
	router.RegisterBooking(e, orderH, cfg.JWTSecret)

	// Background consumer appends order confirmations to logs/orders.log.
	go func() {
		if err := queue.StartOrderConsumer(); err != nil {
			log.Printf("order consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
