package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/travelbook/holidaybooking/api"
	"github.com/travelbook/holidaybooking/config"
	"github.com/travelbook/holidaybooking/internal/bootstrap"
	"github.com/travelbook/holidaybooking/internal/cache"
	"github.com/travelbook/holidaybooking/internal/kafka"
	"github.com/travelbook/holidaybooking/internal/repository"
	"github.com/travelbook/holidaybooking/internal/service/admin"
	"github.com/travelbook/holidaybooking/internal/service/auth"
	"github.com/travelbook/holidaybooking/internal/service/cart"
	"github.com/travelbook/holidaybooking/internal/service/catalog"
	"github.com/travelbook/holidaybooking/internal/service/order"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	packageRepo := repository.NewPackageRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)
	catalogService := catalog.NewCatalogService(packageRepo, redisCache, cfg.Catalog.ImageBaseURL)
	cartService := cart.NewCartService(bookingRepo, packageRepo)
	orderService := order.NewOrderService(orderRepo, bookingRepo, producer, cfg.Kafka.BookingEventsTopic)
	adminService := admin.NewAdminService(packageRepo, userRepo, bookingRepo, redisCache, producer, cfg.Kafka.BookingEventsTopic)

	router := api.NewRouter(api.Services{
		Auth:    authService,
		Catalog: catalogService,
		Cart:    cartService,
		Orders:  orderService,
		Admin:   adminService,
	}, cfg.HTTP.SwaggerDir)

	if err := bootstrap.Run(ctx, cfg, router); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
