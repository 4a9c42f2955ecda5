package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/KiraMuss/AndersonStudio/config"
	"github.com/KiraMuss/AndersonStudio/internal/domain"
	"github.com/KiraMuss/AndersonStudio/internal/email"
	"github.com/KiraMuss/AndersonStudio/internal/kafka"
	"github.com/KiraMuss/AndersonStudio/internal/repository"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	bookingRepo := repository.NewBookingRepository(pool)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, event kafka.BookingEvent) error {
			return emailSender.Send(ctx, event)
		}); err != nil {
			log.Printf("consumer stopped: %v", err)
		}
	}()

	reminderTicker := time.NewTicker(time.Duration(cfg.Worker.ReminderSweepMinutes) * time.Minute)
	defer reminderTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-reminderTicker.C:
			if err := sendReminders(ctx, bookingRepo, emailSender, policy); err != nil {
				log.Printf("reminder sweep error: %v", err)
			}
		case s := <-sig:
			log.Printf("received signal %v, shutting down", s)
			return
		}
	}
}

// sendReminders notifies everyone booked for tomorrow.
func sendReminders(ctx context.Context, repo repository.BookingRepository, sender *email.Sender, policy slots.Policy) error {
	tomorrow := policy.Today().AddDate(0, 0, 1)

	bookings, err := repo.ListForDate(ctx, tomorrow)
	if err != nil {
		return err
	}

	for _, b := range bookings {
		event := kafka.BookingEvent{
			Type:      "booking_reminder",
			Token:     b.Token,
			Name:      b.Name,
			Phone:     b.Phone,
			Email:     b.Email,
			Date:      b.Date.Format(domain.DateLayout),
			TimeLabel: b.TimeLabel,
			Services:  b.Services,
			Status:    string(b.Status),
			CreatedAt: b.CreatedAt,
		}
		if err := sender.Send(ctx, event); err != nil {
			log.Printf("reminder for %s failed: %v", b.Token, err)
		}
	}
	if len(bookings) > 0 {
		log.Printf("sent %d reminders for %s", len(bookings), tomorrow.Format(domain.DateLayout))
	}
	return nil
}
