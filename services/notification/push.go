package notification

import (
	"context"
	"fmt"

	"servicefinder/models"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// Sender is the subset of *messaging.Client used for pushes.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// UserLookup resolves a user's push token.
type UserLookup interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// PushNotifier sends FCM pushes to the booking user and the provider.
type PushNotifier struct {
	sender Sender
	users  UserLookup
	logger *zap.Logger
}

func NewPushNotifier(sender Sender, users UserLookup, logger *zap.Logger) *PushNotifier {
	return &PushNotifier{sender: sender, users: users, logger: logger}
}

func (n *PushNotifier) BookingConfirmed(ctx context.Context, b *models.Booking, p *models.Provider) error {
	data := map[string]string{
		"type":      "booking_confirmed",
		"bookingId": b.ID,
		"date":      b.Date,
		"slot":      b.Slot,
	}

	var firstErr error
	if u, err := n.users.GetByID(ctx, b.UserID); err != nil {
		firstErr = fmt.Errorf("lookup user %s: %w", b.UserID, err)
	} else if u.FCMToken != "" {
		body := fmt.Sprintf("%s on %s at %s is confirmed.", b.Service.Name, b.Date, b.Slot)
		if err := n.send(ctx, userMessage(u.FCMToken, "Booking confirmed", body, withRole(data, models.RoleUser))); err != nil {
			firstErr = err
		}
	}

	if p != nil && p.FCMToken != "" {
		body := fmt.Sprintf("New booking for %s on %s at %s.", b.Service.Name, b.Date, b.Slot)
		if err := n.send(ctx, providerMessage(p.FCMToken, "New booking", body, withRole(data, models.RoleProvider))); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (n *PushNotifier) ServiceChanged(ctx context.Context, p *models.Provider, ev models.ServiceChangedEvent) error {
	if p == nil || p.FCMToken == "" {
		return nil
	}
	title := fmt.Sprintf("Service %s", ev.Action)
	body := fmt.Sprintf("%q was %s.", ev.ServiceName, ev.Action)
	return n.send(ctx, providerMessage(p.FCMToken, title, body, map[string]string{
		"type":      "service_" + ev.Action,
		"serviceId": ev.ServiceID,
		"role":      models.RoleProvider,
	}))
}

func (n *PushNotifier) send(ctx context.Context, msg *messaging.Message) error {
	id, err := n.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("failed to send FCM message: %w", err)
	}
	n.logger.Debug("push sent", zap.String("messageId", id), zap.String("type", msg.Data["type"]))
	return nil
}

func withRole(data map[string]string, role string) map[string]string {
	out := make(map[string]string, len(data)+1)
	for k, v := range data {
		out[k] = v
	}
	out["role"] = role
	return out
}

func userMessage(token, title, body string, data map[string]string) *messaging.Message {
	return &messaging.Message{
		Token:        token,
		Notification: &messaging.Notification{Title: title, Body: body},
		Data:         data,
	}
}

func providerMessage(token, title, body string, data map[string]string) *messaging.Message {
	msg := userMessage(token, title, body, data)
	msg.Android = &messaging.AndroidConfig{
		Priority: "high",
		Notification: &messaging.AndroidNotification{
			ChannelID: "high_priority",
			Sound:     "default",
		},
	}
	msg.APNS = &messaging.APNSConfig{
		Headers: map[string]string{
			"apns-priority":  "10",
			"apns-push-type": "alert",
		},
		Payload: &messaging.APNSPayload{Aps: &messaging.Aps{Sound: "default"}},
	}
	return msg
}
