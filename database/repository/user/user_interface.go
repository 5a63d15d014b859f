package userRepo

import (
	"context"

	"servicefinder/models"
)

// UserRepository defines methods for user data access. Identity records are
// owned by the auth service; this service only reads them and keeps the
// push token current.
type UserRepository interface {
	// GetByID retrieves a user by their unique ID.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// UpdateFCMToken stores the device token used for push notifications.
	UpdateFCMToken(ctx context.Context, id, token string) error
}
