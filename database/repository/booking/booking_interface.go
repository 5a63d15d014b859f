package bookingRepo

import (
	"context"
	"time"

	"servicefinder/models"
)

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	Create(ctx context.Context, booking *models.Booking) error
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	ListByUser(ctx context.Context, userID string) ([]models.Booking, error)
	// ListPendingBefore returns pending bookings created before cutoff.
	ListPendingBefore(ctx context.Context, cutoff time.Time) ([]models.Booking, error)
	// AttachPaymentRef records the payment order on a pending booking.
	AttachPaymentRef(ctx context.Context, id, ref string) error
	// Transition moves a booking from one status to another. It returns
	// database.ErrConflict when the booking is no longer in from.
	Transition(ctx context.Context, id string, from, to models.PaymentStatus) error
	// CommitReservation completes a pending booking and consumes its slot on
	// both the service and the provider aggregate, all or nothing.
	CommitReservation(ctx context.Context, booking *models.Booking, paymentRef string) error
}
