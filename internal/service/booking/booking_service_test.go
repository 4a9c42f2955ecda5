package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/KiraMuss/AndersonStudio/internal/domain"
	"github.com/KiraMuss/AndersonStudio/internal/slots"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) BookedLabels(ctx context.Context, date time.Time) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBookingRepository) GetByToken(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Cancel(ctx context.Context, token string) (*domain.Booking, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) ListForDate(ctx context.Context, date time.Time) ([]domain.Booking, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetBookedLabels(ctx context.Context, date time.Time) ([]string, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCache) SetBookedLabels(ctx context.Context, date time.Time, labels []string) error {
	args := m.Called(ctx, date, labels)
	return args.Error(0)
}

func (m *MockCache) InvalidateDate(ctx context.Context, date time.Time) error {
	args := m.Called(ctx, date)
	return args.Error(0)
}

type MockProducer struct {
	mock.Mock
}

func (m *MockProducer) PublishWithRetry(ctx context.Context, topic, key string, value interface{}, maxRetries int) error {
	args := m.Called(ctx, topic, key, value, maxRetries)
	return args.Error(0)
}

func testPolicy(t *testing.T) slots.Policy {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Helsinki")
	require.NoError(t, err)
	now := time.Date(2026, time.September, 1, 9, 0, 0, 0, loc)
	return slots.Policy{Location: loc, Now: func() time.Time { return now }}
}

var testNames = map[string]struct{}{
	"Kasvohoito": {},
	"Jalkahoito": {},
}

func newService(t *testing.T) (*BookingService, *MockBookingRepository, *MockCache, *MockProducer) {
	t.Helper()
	repo := &MockBookingRepository{}
	cache := &MockCache{}
	producer := &MockProducer{}
	svc := NewBookingService(repo, cache, producer, "bookings",
		slots.DefaultWindow.Generate(), testNames, testPolicy(t),
		WithNotificationsTopic("booking-notifications"))
	return svc, repo, cache, producer
}

func validInput() SubmitInput {
	return SubmitInput{
		Name:     "Anna Virtanen",
		Phone:    "0401234567",
		Date:     "2026-09-02",
		Time:     "10:00 - 10:30",
		Services: []string{"Kasvohoito"},
	}
}

func TestBookedSlots_CacheHit(t *testing.T) {
	svc, repo, cache, _ := newService(t)
	date := testPolicy(t).Date(2026, time.September, 2)

	cache.On("GetBookedLabels", mock.Anything, date).Return([]string{"10:00 - 10:30"}, nil)

	labels, err := svc.BookedSlots(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, []string{"10:00 - 10:30"}, labels)
	repo.AssertNotCalled(t, "BookedLabels", mock.Anything, mock.Anything)
}

func TestBookedSlots_CacheMissFillsCache(t *testing.T) {
	svc, repo, cache, _ := newService(t)
	date := testPolicy(t).Date(2026, time.September, 2)

	cache.On("GetBookedLabels", mock.Anything, date).Return(nil, nil)
	repo.On("BookedLabels", mock.Anything, date).Return([]string{"12:00 - 12:30"}, nil)
	cache.On("SetBookedLabels", mock.Anything, date, []string{"12:00 - 12:30"}).Return(nil)

	labels, err := svc.BookedSlots(context.Background(), date)

	require.NoError(t, err)
	assert.Equal(t, []string{"12:00 - 12:30"}, labels)
	cache.AssertExpectations(t)
}

func TestBookedSlots_CacheErrorFallsBack(t *testing.T) {
	svc, repo, cache, _ := newService(t)
	date := testPolicy(t).Date(2026, time.September, 2)

	cache.On("GetBookedLabels", mock.Anything, date).Return(nil, errors.New("redis down"))
	repo.On("BookedLabels", mock.Anything, date).Return([]string{}, nil)
	cache.On("SetBookedLabels", mock.Anything, date, []string{}).Return(nil)

	labels, err := svc.BookedSlots(context.Background(), date)

	require.NoError(t, err)
	assert.Empty(t, labels)
}

func TestSubmit(t *testing.T) {
	svc, repo, cache, producer := newService(t)

	repo.On("Create", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.Name == "Anna Virtanen" && b.TimeLabel == "10:00 - 10:30" && b.Token != ""
	})).Return(nil)
	cache.On("InvalidateDate", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishWithRetry", mock.Anything, "bookings", mock.Anything, mock.Anything, 3).Return(nil)
	producer.On("PublishWithRetry", mock.Anything, "booking-notifications", mock.Anything, mock.Anything, 3).Return(nil)

	booking, err := svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusNew, booking.Status)
	assert.NotEmpty(t, booking.Token)
	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestSubmit_PublishFailureDoesNotFailBooking(t *testing.T) {
	svc, repo, cache, producer := newService(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	cache.On("InvalidateDate", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, 3).
		Return(errors.New("broker unreachable"))

	booking, err := svc.Submit(context.Background(), validInput())

	require.NoError(t, err)
	assert.NotEmpty(t, booking.Token)
}

func TestSubmit_ValidationFailures(t *testing.T) {
	svc, repo, _, _ := newService(t)

	cases := []struct {
		name   string
		mutate func(*SubmitInput)
	}{
		{"short name", func(in *SubmitInput) { in.Name = "Al" }},
		{"denylisted phone", func(in *SubmitInput) { in.Phone = "123456789" }},
		{"bad email", func(in *SubmitInput) { in.Email = "nope" }},
		{"no services", func(in *SubmitInput) { in.Services = nil }},
		{"unknown service", func(in *SubmitInput) { in.Services = []string{"Aikamatkustus"} }},
		{"bad date", func(in *SubmitInput) { in.Date = "02.09.2026" }},
		{"unknown slot", func(in *SubmitInput) { in.Time = "21:00 - 21:30" }},
		{"past slot", func(in *SubmitInput) { in.Date = "2026-09-01"; in.Time = "08:00 - 08:30" }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			input := validInput()
			c.mutate(&input)

			_, err := svc.Submit(context.Background(), input)
			assert.Error(t, err)
		})
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestSubmit_SlotTaken(t *testing.T) {
	svc, repo, cache, producer := newService(t)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrSlotTaken)

	_, err := svc.Submit(context.Background(), validInput())

	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	cache.AssertNotCalled(t, "InvalidateDate", mock.Anything, mock.Anything)
	producer.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCancel(t *testing.T) {
	svc, repo, cache, producer := newService(t)
	date := testPolicy(t).Date(2026, time.September, 2)

	active := &domain.Booking{Token: "tok", Status: domain.BookingStatusNew, Date: date}
	cancelled := &domain.Booking{Token: "tok", Status: domain.BookingStatusCancelled, Date: date}

	repo.On("GetByToken", mock.Anything, "tok").Return(active, nil)
	repo.On("Cancel", mock.Anything, "tok").Return(cancelled, nil)
	cache.On("InvalidateDate", mock.Anything, date).Return(nil)
	producer.On("PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Cancel(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	repo.AssertExpectations(t)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	svc, repo, _, producer := newService(t)

	cancelled := &domain.Booking{Token: "tok", Status: domain.BookingStatusCancelled}
	repo.On("GetByToken", mock.Anything, "tok").Return(cancelled, nil)

	result, err := svc.Cancel(context.Background(), "tok")

	require.NoError(t, err)
	assert.Equal(t, domain.BookingStatusCancelled, result.Status)
	repo.AssertNotCalled(t, "Cancel", mock.Anything, mock.Anything)
	producer.AssertNotCalled(t, "PublishWithRetry", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
