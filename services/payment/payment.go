// Package payment creates checkout orders and verifies that they were paid.
package payment

import (
	"context"
	"fmt"

	"servicefinder/models"
	"servicefinder/services/apperror"
	"servicefinder/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"github.com/stripe/stripe-go/v76/refund"
)

// MetadataBookingID is the PaymentIntent metadata key linking it to a booking.
const MetadataBookingID = "bookingId"

// Gateway is the payment provider as seen by the booking flow.
type Gateway interface {
	CreateOrder(ctx context.Context, booking *models.Booking) (*models.PaymentOrder, error)
	// Verify reports whether the order was paid for the given booking. An
	// order that may still settle either way yields apperror.ErrPaymentPending.
	Verify(ctx context.Context, v models.PaymentVerification) (bool, error)
	// Cancel voids an unpaid order so it can no longer be charged.
	Cancel(ctx context.Context, orderID string) error
	// Refund returns the money taken for a paid order.
	Refund(ctx context.Context, orderID string) error
}

// StripeGateway implements Gateway with Stripe PaymentIntents.
type StripeGateway struct {
	currency string
	create   func(*stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	get      func(string, *stripe.PaymentIntentParams) (*stripe.PaymentIntent, error)
	cancel   func(string, *stripe.PaymentIntentCancelParams) (*stripe.PaymentIntent, error)
	refund   func(*stripe.RefundParams) (*stripe.Refund, error)
}

// NewStripeGateway returns a gateway charging in currency. stripe.Key must be set.
func NewStripeGateway(currency string) *StripeGateway {
	return &StripeGateway{
		currency: currency,
		create:   paymentintent.New,
		get:      paymentintent.Get,
		cancel:   paymentintent.Cancel,
		refund:   refund.New,
	}
}

func (g *StripeGateway) CreateOrder(ctx context.Context, booking *models.Booking) (*models.PaymentOrder, error) {
	amount := utils.ToMinorUnits(booking.Service.Price)
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(g.currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	params.AddMetadata(MetadataBookingID, booking.ID)
	params.SetIdempotencyKey("order-" + booking.ID)

	intent, err := g.create(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}
	return &models.PaymentOrder{
		OrderID:      intent.ID,
		ClientSecret: intent.ClientSecret,
		Amount:       amount,
		Currency:     g.currency,
		BookingID:    booking.ID,
	}, nil
}

func (g *StripeGateway) Verify(ctx context.Context, v models.PaymentVerification) (bool, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx
	intent, err := g.get(v.OrderID, params)
	if err != nil {
		return false, fmt.Errorf("failed to retrieve payment intent %s: %w", v.OrderID, err)
	}
	return Settled(intent, v.BookingID)
}

// Settled classifies intent for bookingID. Only succeeded intents are paid;
// canceled ones, ones waiting for a new payment method and ones issued for
// another booking are not. Anything else is still in flight.
func Settled(intent *stripe.PaymentIntent, bookingID string) (bool, error) {
	if intent == nil || intent.Metadata[MetadataBookingID] != bookingID {
		return false, nil
	}
	switch intent.Status {
	case stripe.PaymentIntentStatusSucceeded:
		return true, nil
	case stripe.PaymentIntentStatusCanceled, stripe.PaymentIntentStatusRequiresPaymentMethod:
		return false, nil
	}
	return false, fmt.Errorf("%w: payment intent %s is %s", apperror.ErrPaymentPending, intent.ID, intent.Status)
}

func (g *StripeGateway) Cancel(ctx context.Context, orderID string) error {
	params := &stripe.PaymentIntentCancelParams{}
	params.Context = ctx
	if _, err := g.cancel(orderID, params); err != nil {
		return fmt.Errorf("failed to cancel payment intent %s: %w", orderID, err)
	}
	return nil
}

func (g *StripeGateway) Refund(ctx context.Context, orderID string) error {
	params := &stripe.RefundParams{PaymentIntent: stripe.String(orderID)}
	params.Context = ctx
	params.SetIdempotencyKey("refund-" + orderID)
	if _, err := g.refund(params); err != nil {
		return fmt.Errorf("failed to refund payment intent %s: %w", orderID, err)
	}
	return nil
}
