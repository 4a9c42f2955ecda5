package booking

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
	"github.com/KiraMuss/AndersonStudio/internal/kafka"
	"github.com/KiraMuss/AndersonStudio/internal/repository"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
	"github.com/KiraMuss/AndersonStudio/internal/validate"
)

type BookingUseCase interface {
	BookedSlots(ctx context.Context, date time.Time) ([]string, error)
	Submit(ctx context.Context, input SubmitInput) (*domain.Booking, error)
	Cancel(ctx context.Context, token string) (*domain.Booking, error)
	UpcomingForDate(ctx context.Context, date time.Time) ([]domain.Booking, error)
}

type Cache interface {
	GetBookedLabels(ctx context.Context, date time.Time) ([]string, error)
	SetBookedLabels(ctx context.Context, date time.Time, labels []string) error
	InvalidateDate(ctx context.Context, date time.Time) error
}

type Producer interface {
	PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error
}

// publishRetries bounds the retry loop for transient broker errors; events
// that still fail are logged and dropped, never blocking the booking.
const publishRetries = 3

// SubmitInput is the wire shape of a booking submission.
type SubmitInput struct {
	Name     string   `json:"name"`
	Phone    string   `json:"phone"`
	Email    string   `json:"email"`
	Date     string   `json:"date"`
	Time     string   `json:"time"`
	Services []string `json:"services"`
}

type BookingService struct {
	bookings           repository.BookingRepository
	cache              Cache
	producer           Producer
	bookingTopic       string
	notificationsTopic string
	catalog            []domain.Slot
	serviceNames       map[string]struct{}
	policy             slots.Policy
}

type BookingServiceOption func(*BookingService)

func WithNotificationsTopic(topic string) BookingServiceOption {
	return func(s *BookingService) {
		s.notificationsTopic = topic
	}
}

func NewBookingService(
	bookings repository.BookingRepository,
	cache Cache,
	producer Producer,
	bookingTopic string,
	catalog []domain.Slot,
	serviceNames map[string]struct{},
	policy slots.Policy,
	opts ...BookingServiceOption,
) *BookingService {
	service := &BookingService{
		bookings:     bookings,
		cache:        cache,
		producer:     producer,
		bookingTopic: bookingTopic,
		catalog:      catalog,
		serviceNames: serviceNames,
		policy:       policy,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// BookedSlots returns the taken labels for a date, cache-through. A cache
// failure falls back to the repository; the cache is never load-bearing.
func (s *BookingService) BookedSlots(ctx context.Context, date time.Time) ([]string, error) {
	if s.cache != nil {
		if cached, err := s.cache.GetBookedLabels(ctx, date); err == nil && cached != nil {
			return cached, nil
		} else if err != nil {
			log.Printf("booked-labels cache read failed: %v", err)
		}
	}

	labels, err := s.bookings.BookedLabels(ctx, date)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		if err := s.cache.SetBookedLabels(ctx, date, labels); err != nil {
			log.Printf("booked-labels cache write failed: %v", err)
		}
	}
	return labels, nil
}

// Submit validates the submission the same way the form core does and inserts
// the booking. The insert itself rejects a taken slot, so a submission racing
// a stale widget snapshot surfaces domain.ErrSlotTaken rather than a double
// booking.
func (s *BookingService) Submit(ctx context.Context, input SubmitInput) (*domain.Booking, error) {
	if ok, msg := validate.Name(input.Name); !ok {
		return nil, errors.New(msg)
	}
	if ok, msg := validate.Phone(input.Phone); !ok {
		return nil, errors.New(msg)
	}
	if ok, msg := validate.Email(input.Email); !ok {
		return nil, errors.New(msg)
	}
	if len(input.Services) == 0 {
		return nil, errors.New("select at least one service")
	}
	for _, name := range input.Services {
		if _, ok := s.serviceNames[name]; !ok {
			return nil, fmt.Errorf("unknown service: %s", name)
		}
	}

	date, err := s.policy.ParseDate(input.Date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: want %s", input.Date, domain.DateLayout)
	}

	slot, ok := slots.Find(s.catalog, input.Time)
	if !ok {
		return nil, fmt.Errorf("unknown time slot %q", input.Time)
	}
	if s.policy.IsPast(date, slot) {
		return nil, errors.New("the selected time has already passed")
	}

	booking := &domain.Booking{
		Token:     uuid.NewString(),
		Name:      input.Name,
		Phone:     input.Phone,
		Email:     input.Email,
		Date:      date,
		TimeLabel: input.Time,
		Services:  input.Services,
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.InvalidateDate(ctx, date); err != nil {
			log.Printf("cache invalidation for %s failed: %v", input.Date, err)
		}
	}

	if err := s.publish(ctx, "booking_submitted", booking); err != nil {
		log.Printf("failed to publish booking_submitted for %s: %v", booking.Token, err)
	}
	return booking, nil
}

func (s *BookingService) Cancel(ctx context.Context, token string) (*domain.Booking, error) {
	current, err := s.bookings.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if current.Status == domain.BookingStatusCancelled {
		return current, nil
	}

	updated, err := s.bookings.Cancel(ctx, token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		_ = s.cache.InvalidateDate(ctx, updated.Date)
	}
	if err := s.publish(ctx, "booking_cancelled", updated); err != nil {
		log.Printf("failed to publish booking_cancelled for %s: %v", updated.Token, err)
	}
	return updated, nil
}

// UpcomingForDate lists the active bookings of a date, used by the reminder
// sweep in the worker.
func (s *BookingService) UpcomingForDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	return s.bookings.ListForDate(ctx, date)
}

func (s *BookingService) publish(ctx context.Context, eventType string, booking *domain.Booking) error {
	if s.producer == nil || s.bookingTopic == "" {
		return nil
	}
	event := kafka.BookingEvent{
		Type:      eventType,
		Token:     booking.Token,
		Name:      booking.Name,
		Phone:     booking.Phone,
		Email:     booking.Email,
		Date:      booking.Date.Format(domain.DateLayout),
		TimeLabel: booking.TimeLabel,
		Services:  booking.Services,
		Status:    string(booking.Status),
		CreatedAt: booking.CreatedAt,
	}
	if err := s.producer.PublishWithRetry(ctx, s.bookingTopic, booking.Token, event, publishRetries); err != nil {
		return err
	}
	if s.notificationsTopic != "" {
		return s.producer.PublishWithRetry(ctx, s.notificationsTopic, booking.Token, event, publishRetries)
	}
	return nil
}

var _ BookingUseCase = (*BookingService)(nil)
