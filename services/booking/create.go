package booking

import (
	"context"
	"fmt"
	"strings"

	"servicefinder/models"
	"servicefinder/services/apperror"
	"servicefinder/services/availability"
	"servicefinder/services/hold"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CreateBooking records a pending booking for an open slot. Availability is
// left untouched; the slot is only consumed once payment is confirmed. While
// the booking is pending a hold keeps other callers off the same slot.
func (s *DefaultBookingService) CreateBooking(ctx context.Context, userID string, req models.BookingRequest) (*models.Booking, error) {
	req.ProviderID = strings.TrimSpace(req.ProviderID)
	req.ServiceID = strings.TrimSpace(req.ServiceID)
	req.Date = strings.TrimSpace(req.Date)
	req.Slot = strings.TrimSpace(req.Slot)
	if userID == "" || req.ProviderID == "" || req.ServiceID == "" || req.Date == "" || req.Slot == "" {
		return nil, apperror.ErrValidation
	}

	svc, err := s.Services.GetByID(ctx, req.ServiceID)
	if err != nil {
		return nil, notFound(err, "service")
	}
	prov, err := s.Providers.GetByID(ctx, req.ProviderID)
	if err != nil {
		return nil, notFound(err, "provider")
	}
	if svc.ProviderID != prov.ID {
		return nil, apperror.ErrNotFound
	}

	if !availability.IsOpen(svc.Availability, req.Date, req.Slot) ||
		!availability.IsOpen(prov.Availability, req.Date, req.Slot) {
		return nil, apperror.ErrSlotUnavailable
	}

	now := s.now()
	b := &models.Booking{
		ID:            uuid.New().String(),
		UserID:        userID,
		ProviderID:    prov.ID,
		Service:       svc.Snapshot(),
		Date:          req.Date,
		Slot:          req.Slot,
		PaymentStatus: models.PaymentPending,
		HoldExpiresAt: now.Add(s.cfg.HoldTTL),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	held, err := s.Holds.Acquire(ctx, hold.Key(prov.ID, b.Date, b.Slot), b.ID, s.cfg.HoldTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to hold slot: %w", err)
	}
	if !held {
		return nil, apperror.ErrSlotUnavailable
	}

	if err := s.Bookings.Create(ctx, b); err != nil {
		s.releaseHold(ctx, b)
		return nil, err
	}

	if err := s.Expiry.ScheduleExpiry(ctx, b.ID, now.Add(s.cfg.PendingTTL)); err != nil {
		// The periodic sweep still expires the booking.
		s.logger.Warn("failed to schedule booking expiry", zap.String("bookingId", b.ID), zap.Error(err))
	}

	s.logger.Info("booking created",
		zap.String("bookingId", b.ID),
		zap.String("userId", userID),
		zap.String("serviceId", svc.ID),
		zap.String("date", b.Date),
		zap.String("slot", b.Slot))
	return b, nil
}
