package booking

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/models"

	"go.uber.org/zap"
)

// ExpireBooking fails a booking that is still pending. Terminal bookings are
// left alone.
func (s *DefaultBookingService) ExpireBooking(ctx context.Context, bookingID string) error {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return notFound(err, "booking")
	}
	if b.PaymentStatus != models.PaymentPending {
		return nil
	}
	if err := s.fail(ctx, b); err != nil {
		if isTerminalErr(err) {
			return nil
		}
		return err
	}
	s.voidOrder(ctx, b.ID, b.PaymentRef)
	s.logger.Info("pending booking expired", zap.String("bookingId", b.ID))
	return nil
}

// ExpireStale fails every booking pending for longer than the pending TTL and
// reports how many it expired.
func (s *DefaultBookingService) ExpireStale(ctx context.Context) (int, error) {
	stale, err := s.Bookings.ListPendingBefore(ctx, s.now().Add(-s.cfg.PendingTTL))
	if err != nil {
		return 0, fmt.Errorf("failed to list stale bookings: %w", err)
	}

	var errs []error
	expired := 0
	for i := range stale {
		b := &stale[i]
		if err := s.fail(ctx, b); err != nil {
			if !isTerminalErr(err) {
				errs = append(errs, err)
			}
			continue
		}
		s.voidOrder(ctx, b.ID, b.PaymentRef)
		expired++
	}
	return expired, errors.Join(errs...)
}
