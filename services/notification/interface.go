// Package notification tells users and providers about bookings and
// catalogue changes. Delivery is best effort: callers log failures and
// carry on.
package notification

import (
	"context"
	"errors"

	"servicefinder/models"
)

// Notifier delivers domain events to interested parties.
type Notifier interface {
	BookingConfirmed(ctx context.Context, booking *models.Booking, provider *models.Provider) error
	ServiceChanged(ctx context.Context, provider *models.Provider, event models.ServiceChangedEvent) error
}

// Multi fans an event out to every notifier, joining their errors.
type Multi []Notifier

func (m Multi) BookingConfirmed(ctx context.Context, booking *models.Booking, provider *models.Provider) error {
	var errs []error
	for _, n := range m {
		if err := n.BookingConfirmed(ctx, booking, provider); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) ServiceChanged(ctx context.Context, provider *models.Provider, event models.ServiceChangedEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.ServiceChanged(ctx, provider, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards every event.
type Nop struct{}

func (Nop) BookingConfirmed(context.Context, *models.Booking, *models.Provider) error { return nil }

func (Nop) ServiceChanged(context.Context, *models.Provider, models.ServiceChangedEvent) error {
	return nil
}

// NewBookingConfirmedEvent flattens a confirmed booking into its event form.
func NewBookingConfirmedEvent(b *models.Booking, p *models.Provider) models.BookingConfirmedEvent {
	ev := models.BookingConfirmedEvent{
		BookingID:   b.ID,
		UserID:      b.UserID,
		ProviderID:  b.ProviderID,
		ServiceID:   b.Service.ID,
		ServiceName: b.Service.Name,
		Date:        b.Date,
		Slot:        b.Slot,
		Amount:      b.Service.Price,
		ConfirmedAt: b.UpdatedAt,
	}
	if p != nil {
		ev.ProviderName = p.Name
	}
	return ev
}
