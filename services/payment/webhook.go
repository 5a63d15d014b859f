package payment

import (
	"encoding/json"
	"fmt"

	"servicefinder/services/apperror"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
)

// Outcome is a payment result extracted from a webhook event.
type Outcome struct {
	BookingID string
	OrderID   string
	Paid      bool
}

// ParseWebhook authenticates a Stripe webhook and extracts its payment
// outcome. It returns nil for event types that carry no outcome.
func ParseWebhook(payload []byte, signatureHeader, secret string) (*Outcome, error) {
	event, err := webhook.ConstructEventWithOptions(payload, signatureHeader, secret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true})
	if err != nil {
		return nil, apperror.ErrInvalidSignature
	}

	var paid bool
	switch event.Type {
	case stripe.EventTypePaymentIntentSucceeded:
		paid = true
	case stripe.EventTypePaymentIntentPaymentFailed:
		paid = false
	default:
		return nil, nil
	}

	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		return nil, fmt.Errorf("failed to decode payment intent: %w", err)
	}
	bookingID := intent.Metadata[MetadataBookingID]
	if bookingID == "" {
		return nil, nil
	}
	return &Outcome{BookingID: bookingID, OrderID: intent.ID, Paid: paid}, nil
}
