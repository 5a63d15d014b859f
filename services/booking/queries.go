package booking

import (
	"context"

	"servicefinder/models"
	"servicefinder/services/apperror"
)

func (s *DefaultBookingService) ListUserBookings(ctx context.Context, userID string) ([]models.Booking, error) {
	return s.Bookings.ListByUser(ctx, userID)
}

// GetBooking returns one of the caller's bookings. Other users' bookings are
// reported as not found.
func (s *DefaultBookingService) GetBooking(ctx context.Context, userID, bookingID string) (*models.Booking, error) {
	b, err := s.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, notFound(err, "booking")
	}
	if b.UserID != userID {
		return nil, apperror.ErrNotFound
	}
	return b, nil
}
