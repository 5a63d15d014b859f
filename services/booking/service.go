package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servicefinder/database"
	"servicefinder/database/repository"
	"servicefinder/models"
	"servicefinder/services/apperror"
	"servicefinder/services/hold"
	"servicefinder/services/notification"
	"servicefinder/services/payment"

	"go.uber.org/zap"
)

// BookingService reserves slots and drives bookings through payment.
type BookingService interface {
	CreateBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error)
	CreatePaymentOrder(ctx context.Context, userID, bookingID string) (*models.PaymentOrder, error)
	VerifyPayment(ctx context.Context, userID string, v models.PaymentVerification) (*models.Booking, error)
	ApplyPaymentOutcome(ctx context.Context, outcome payment.Outcome) error
	ConfirmPayment(ctx context.Context, bookingID string, verified bool, paymentRef string) (*models.Booking, error)
	ExpireBooking(ctx context.Context, bookingID string) error
	ExpireStale(ctx context.Context) (int, error)
	ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error)
	GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error)
}

// ServiceReader loads service listings.
type ServiceReader interface {
	GetByID(ctx context.Context, id string) (*models.Service, error)
}

// ProviderReader loads providers.
type ProviderReader interface {
	GetByID(ctx context.Context, id string) (*models.Provider, error)
}

// ExpiryScheduler arranges for a pending booking to be expired later.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, bookingID string, fireAt time.Time) error
}

// Dependencies are the collaborators of DefaultBookingService.
type Dependencies struct {
	Bookings  repository.BookingRepository
	Services  ServiceReader
	Providers ProviderReader
	Holds     hold.Store
	Expiry    ExpiryScheduler
	Payments  payment.Gateway
	Notifier  notification.Notifier
}

// Config holds the timing knobs of the reservation protocol.
type Config struct {
	// HoldTTL bounds how long a pending booking keeps its slot to itself.
	HoldTTL time.Duration
	// PendingTTL is how long a booking may stay pending before it is failed.
	PendingTTL time.Duration
}

// DefaultBookingService implements BookingService.
type DefaultBookingService struct {
	Dependencies
	cfg    Config
	logger *zap.Logger
	now    func() time.Time
	// dispatch runs fire-and-forget work such as notifications.
	dispatch func(func())
}

func NewBookingService(deps Dependencies, cfg Config, logger *zap.Logger) *DefaultBookingService {
	if deps.Notifier == nil {
		deps.Notifier = notification.Nop{}
	}
	return &DefaultBookingService{
		Dependencies: deps,
		cfg:          cfg,
		logger:       logger,
		now:          func() time.Time { return time.Now().UTC() },
		dispatch:     func(f func()) { go f() },
	}
}

// notFound maps a repository miss onto the caller-facing error.
func notFound(err error, what string) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperror.ErrNotFound
	}
	return fmt.Errorf("failed to load %s: %w", what, err)
}

// statusError is the error for a confirmation attempt on a booking that is
// already terminal.
func statusError(status models.PaymentStatus) error {
	switch status {
	case models.PaymentCompleted:
		return apperror.ErrAlreadyCompleted
	case models.PaymentFailed:
		return apperror.ErrBookingFailed
	}
	return nil
}

func (s *DefaultBookingService) releaseHold(ctx context.Context, b *models.Booking) {
	key := hold.Key(b.ProviderID, b.Date, b.Slot)
	if err := s.Holds.Release(ctx, key, b.ID); err != nil {
		s.logger.Warn("failed to release slot hold", zap.String("bookingId", b.ID), zap.Error(err))
	}
}
