package booking

import (
	"context"
	"errors"
	"fmt"

	"servicefinder/database"
	"servicefinder/models"
	"servicefinder/services/apperror"
	"servicefinder/services/payment"

	"go.uber.org/zap"
)

// ConfirmPayment settles a pending booking. An unverified payment fails the
// booking. A verified one completes it and consumes the slot from the service
// and the provider aggregate in one transaction. Terminal bookings are never
// changed, so repeating a confirmation has no further effect.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, bookingID string, verified bool, paymentRef string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if err := statusError(b.PaymentStatus); err != nil {
		return nil, err
	}

	orderID := paymentRef
	if orderID == "" {
		orderID = b.PaymentRef
	}

	if !verified {
		if err := s.fail(ctx, b); err != nil {
			return nil, err
		}
		s.voidOrder(ctx, b.ID, orderID)
		s.logger.Info("payment rejected", zap.String("bookingId", b.ID))
		return nil, apperror.ErrInvalidSignature
	}

	err = s.Bookings.CommitReservation(ctx, b, paymentRef)
	switch {
	case err == nil:
	case errors.Is(err, database.ErrConflict):
		return nil, s.currentStatusError(ctx, b.ID)
	case errors.Is(err, database.ErrSlotTaken):
		if ferr := s.fail(ctx, b); ferr != nil && !isTerminalErr(ferr) {
			return nil, ferr
		}
		s.logger.Error("slot taken after payment, refunding",
			zap.String("bookingId", b.ID), zap.String("date", b.Date), zap.String("slot", b.Slot))
		if err := s.refundOrder(ctx, b.ID, orderID); err != nil {
			return nil, errors.Join(apperror.ErrSlotUnavailable, err)
		}
		return nil, apperror.ErrSlotUnavailable
	default:
		return nil, fmt.Errorf("failed to commit reservation: %w", err)
	}

	b.PaymentStatus = models.PaymentCompleted
	if paymentRef != "" {
		b.PaymentRef = paymentRef
	}
	b.UpdatedAt = s.now()
	s.releaseHold(ctx, b)
	s.logger.Info("booking confirmed", zap.String("bookingId", b.ID), zap.String("paymentRef", b.PaymentRef))

	confirmed := *b
	s.dispatch(func() { s.notifyConfirmed(context.WithoutCancel(ctx), &confirmed) })
	return b, nil
}

// fail moves a pending booking to failed and frees its hold. A booking that
// already left pending yields its status error.
func (s *DefaultBookingService) fail(ctx context.Context, b *models.Booking) error {
	err := s.Bookings.Transition(ctx, b.ID, models.PaymentPending, models.PaymentFailed)
	if errors.Is(err, database.ErrConflict) {
		return s.currentStatusError(ctx, b.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to mark booking failed: %w", err)
	}
	b.PaymentStatus = models.PaymentFailed
	b.UpdatedAt = s.now()
	s.releaseHold(ctx, b)
	return nil
}

// voidOrder cancels the gateway order of a booking that will never be
// honoured. If the order was paid in the meantime the cancel fails and the
// paid outcome triggers a refund instead.
func (s *DefaultBookingService) voidOrder(ctx context.Context, bookingID, orderID string) {
	if orderID == "" {
		return
	}
	if err := s.Payments.Cancel(ctx, orderID); err != nil {
		s.logger.Warn("failed to cancel payment order",
			zap.String("bookingId", bookingID), zap.String("orderId", orderID), zap.Error(err))
	}
}

// refundOrder returns a payment taken for a booking that cannot be honoured.
func (s *DefaultBookingService) refundOrder(ctx context.Context, bookingID, orderID string) error {
	if orderID == "" {
		s.logger.Error("paid booking has no order to refund", zap.String("bookingId", bookingID))
		return nil
	}
	if err := s.Payments.Refund(ctx, orderID); err != nil {
		s.logger.Error("refund failed",
			zap.String("bookingId", bookingID), zap.String("orderId", orderID), zap.Error(err))
		return err
	}
	s.logger.Info("payment refunded", zap.String("bookingId", bookingID), zap.String("orderId", orderID))
	return nil
}

// currentStatusError re-reads a booking that lost a conditional update.
func (s *DefaultBookingService) currentStatusError(ctx context.Context, id string) error {
	current, err := s.Bookings.GetByID(ctx, id)
	if err != nil {
		return notFound(err, "booking")
	}
	if err := statusError(current.PaymentStatus); err != nil {
		return err
	}
	return fmt.Errorf("booking %s changed concurrently", id)
}

func isTerminalErr(err error) bool {
	return errors.Is(err, apperror.ErrAlreadyCompleted) || errors.Is(err, apperror.ErrBookingFailed)
}

func (s *DefaultBookingService) notifyConfirmed(ctx context.Context, b *models.Booking) {
	prov, err := s.Providers.GetByID(ctx, b.ProviderID)
	if err != nil {
		s.logger.Warn("provider lookup for notification failed", zap.String("bookingId", b.ID), zap.Error(err))
		prov = nil
	}
	if err := s.Notifier.BookingConfirmed(ctx, b, prov); err != nil {
		s.logger.Warn("booking confirmation notification failed", zap.String("bookingId", b.ID), zap.Error(err))
	}
}

// CreatePaymentOrder opens a checkout order for the caller's pending booking.
func (s *DefaultBookingService) CreatePaymentOrder(ctx context.Context, userID, bookingID string) (*models.PaymentOrder, error) {
	b, err := s.GetBooking(ctx, userID, bookingID)
	if err != nil {
		return nil, err
	}
	if err := statusError(b.PaymentStatus); err != nil {
		return nil, err
	}

	order, err := s.Payments.CreateOrder(ctx, b)
	if err != nil {
		return nil, err
	}
	if err := s.Bookings.AttachPaymentRef(ctx, b.ID, order.OrderID); err != nil {
		if errors.Is(err, database.ErrConflict) {
			return nil, s.currentStatusError(ctx, b.ID)
		}
		return nil, err
	}
	return order, nil
}

// VerifyPayment checks the caller's payment with the gateway and confirms or
// fails the booking accordingly. Gateway errors, including a payment that has
// not settled yet, leave the booking pending.
func (s *DefaultBookingService) VerifyPayment(ctx context.Context, userID string, v models.PaymentVerification) (*models.Booking, error) {
	b, err := s.GetBooking(ctx, userID, v.BookingID)
	if err != nil {
		return nil, err
	}
	if err := statusError(b.PaymentStatus); err != nil {
		return nil, err
	}

	paid, err := s.Payments.Verify(ctx, v)
	if err != nil {
		return nil, err
	}
	return s.ConfirmPayment(ctx, b.ID, paid, v.OrderID)
}

// ApplyPaymentOutcome confirms or fails a booking from a gateway callback.
// Callbacks may be redelivered, so an already settled booking is not an error.
// Money received for a booking that can no longer be honoured is refunded; a
// failed refund is returned so the callback is retried.
func (s *DefaultBookingService) ApplyPaymentOutcome(ctx context.Context, outcome payment.Outcome) error {
	_, err := s.ConfirmPayment(ctx, outcome.BookingID, outcome.Paid, outcome.OrderID)
	switch {
	case err == nil, errors.Is(err, apperror.ErrAlreadyCompleted):
		return nil
	case outcome.Paid && (errors.Is(err, apperror.ErrBookingFailed) || errors.Is(err, apperror.ErrSlotUnavailable)):
		s.logger.Error("payment received for failed booking",
			zap.String("bookingId", outcome.BookingID), zap.String("orderId", outcome.OrderID))
		return s.refundOrder(ctx, outcome.BookingID, outcome.OrderID)
	case errors.Is(err, apperror.ErrBookingFailed):
		return nil
	case !outcome.Paid && errors.Is(err, apperror.ErrInvalidSignature):
		return nil
	case errors.Is(err, apperror.ErrNotFound):
		s.logger.Warn("payment outcome for unknown booking", zap.String("bookingId", outcome.BookingID))
		return nil
	}
	return err
}
