package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KiraMuss/AndersonStudio/api"
	"github.com/KiraMuss/AndersonStudio/config"
	"github.com/KiraMuss/AndersonStudio/internal/bootstrap"
	"github.com/KiraMuss/AndersonStudio/internal/cache"
	"github.com/KiraMuss/AndersonStudio/internal/catalog"
	"github.com/KiraMuss/AndersonStudio/internal/kafka"
	"github.com/KiraMuss/AndersonStudio/internal/repository"
	"github.com/KiraMuss/AndersonStudio/internal/service/booking"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
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

	loc, err := time.LoadLocation(cfg.Business.Timezone)
	if err != nil {
		log.Fatalf("load business timezone: %v", err)
	}
	policy := slots.NewPolicy(loc)

	window, err := businessWindow(cfg.Business)
	if err != nil {
		log.Fatalf("business hours: %v", err)
	}

	services, err := catalog.Load(cfg.Business.CatalogFile)
	if err != nil {
		log.Fatalf("load service catalog: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Worker.BookedCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	bookingRepo := repository.NewBookingRepository(pool)
	bookingService := booking.NewBookingService(
		bookingRepo,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		window.Generate(),
		services.Names(),
		policy,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	bookingHandler := api.NewBookingHandler(bookingService, policy)
	serviceHandler := api.NewServiceHandler(services)

	if err := bootstrap.Run(ctx, cfg, bookingHandler, serviceHandler); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func businessWindow(cfg config.BusinessConfig) (slots.Window, error) {
	open, err := slots.ParseHourMinute(cfg.OpenTime)
	if err != nil {
		return slots.Window{}, err
	}
	closing, err := slots.ParseHourMinute(cfg.CloseTime)
	if err != nil {
		return slots.Window{}, err
	}
	return slots.Window{Open: open, Close: closing, SlotMinutes: cfg.SlotMinutes}, nil
}
