package provider

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"servicefinder/database"
	"servicefinder/models"
	"servicefinder/services/apperror"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

const photoFolder = "providers"

func (s *DefaultProviderService) Search(ctx context.Context, criteria models.ProviderSearch) ([]models.Provider, error) {
	criteria.Query = strings.TrimSpace(criteria.Query)
	criteria.Location = strings.TrimSpace(criteria.Location)
	return s.Repo.Search(ctx, criteria)
}

func (s *DefaultProviderService) GetByID(ctx context.Context, id string) (*models.Provider, error) {
	p, err := s.Repo.GetByID(ctx, id)
	return p, mapErr(err)
}

// GetProfile returns the provider profile owned by userID.
func (s *DefaultProviderService) GetProfile(ctx context.Context, userID string) (*models.Provider, error) {
	p, err := s.Repo.GetByUserID(ctx, userID)
	return p, mapErr(err)
}

// UpsertProfile creates the caller's profile on first use and patches the
// descriptive fields afterwards. Availability, services and rating are owned
// by the catalogue and review flows and never set here.
func (s *DefaultProviderService) UpsertProfile(ctx context.Context, userID string, in models.ProviderProfileInput) (*models.Provider, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Service = strings.TrimSpace(in.Service)
	in.Location = strings.TrimSpace(in.Location)

	existing, err := s.Repo.GetByUserID(ctx, userID)
	if errors.Is(err, database.ErrNotFound) {
		if in.Name == "" || in.Service == "" || in.Location == "" {
			return nil, apperror.ErrValidation
		}
		now := time.Now().UTC()
		p := &models.Provider{
			ID:             uuid.New().String(),
			UserID:         userID,
			Name:           in.Name,
			Service:        in.Service,
			Location:       in.Location,
			Reviews:        []string{},
			Services:       []string{},
			Certifications: nonNil(in.Certifications),
			Availability:   []models.AvailabilityEntry{},
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.Repo.Create(ctx, p); err != nil {
			return nil, err
		}
		s.logger.Info("provider profile created", zap.String("providerId", p.ID), zap.String("userId", userID))
		return p, nil
	}
	if err != nil {
		return nil, err
	}

	fields := bson.M{}
	if in.Name != "" {
		fields["name"] = in.Name
	}
	if in.Service != "" {
		fields["service"] = in.Service
	}
	if in.Location != "" {
		fields["location"] = in.Location
	}
	if in.Certifications != nil {
		fields["certifications"] = in.Certifications
	}
	if len(fields) == 0 {
		return existing, nil
	}
	if err := s.Repo.UpdateSet(ctx, existing.ID, fields); err != nil {
		return nil, mapErr(err)
	}
	return s.GetByID(ctx, existing.ID)
}

func (s *DefaultProviderService) UploadPhoto(ctx context.Context, userID string, photo io.Reader) (*models.Provider, error) {
	if s.Storage == nil {
		return nil, fmt.Errorf("photo storage is not configured")
	}
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	url, err := s.Storage.UploadImage(ctx, photo, photoFolder, p.ID)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.UpdateSet(ctx, p.ID, bson.M{"photo": url}); err != nil {
		return nil, mapErr(err)
	}
	p.Photo = url
	return p, nil
}

func (s *DefaultProviderService) UpdateFCMToken(ctx context.Context, userID, token string) error {
	p, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	return mapErr(s.Repo.UpdateSet(ctx, p.ID, bson.M{"fcmToken": token}))
}

func mapErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperror.ErrNotFound
	}
	return err
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
