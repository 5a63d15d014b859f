// Package catalogue manages the services a provider offers and keeps the
// provider's aggregated availability in step with them.
package catalogue

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"servicefinder/database"
	"servicefinder/database/repository"
	"servicefinder/models"
	"servicefinder/services/apperror"
	"servicefinder/services/availability"
	"servicefinder/services/notification"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	ActionAdded   = "added"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// CatalogueService is the provider-facing service listing API.
type CatalogueService interface {
	AddService(ctx context.Context, userID string, in models.ServiceInput) (*models.Service, error)
	EditService(ctx context.Context, userID, serviceID string, in models.ServiceInput) (*models.Service, error)
	DeleteService(ctx context.Context, userID, serviceID string) error
	ListMyServices(ctx context.Context, userID string) ([]models.Service, error)
	ListProviderServices(ctx context.Context, providerID string) ([]models.Service, error)
	GetService(ctx context.Context, serviceID string) (*models.Service, error)
}

// DefaultCatalogueService is the production implementation.
type DefaultCatalogueService struct {
	Services  repository.ServiceRepository
	Providers repository.ProviderRepository
	Notifier  notification.Notifier
	logger    *zap.Logger
	now       func() time.Time
	dispatch  func(func())
}

func NewDefaultCatalogueService(services repository.ServiceRepository, providers repository.ProviderRepository, notifier notification.Notifier, logger *zap.Logger) *DefaultCatalogueService {
	if notifier == nil {
		notifier = notification.Nop{}
	}
	return &DefaultCatalogueService{
		Services:  services,
		Providers: providers,
		Notifier:  notifier,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
		dispatch:  func(f func()) { go f() },
	}
}

func validateFields(in models.ServiceInput, creating bool) error {
	if creating && strings.TrimSpace(in.Name) == "" {
		return fmt.Errorf("%w: name is required", apperror.ErrValidation)
	}
	if in.Price < 0 || (creating && in.Price == 0) {
		return fmt.Errorf("%w: price must be positive", apperror.ErrValidation)
	}
	return nil
}

// AddService creates a listing and merges its slots into the provider's
// aggregated availability.
func (s *DefaultCatalogueService) AddService(ctx context.Context, userID string, in models.ServiceInput) (*models.Service, error) {
	if err := validateFields(in, true); err != nil {
		return nil, err
	}
	if err := availability.Validate(in.Availability); err != nil {
		return nil, err
	}
	prov, err := s.callerProvider(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	svc := &models.Service{
		ID:           uuid.New().String(),
		ProviderID:   prov.ID,
		Name:         strings.TrimSpace(in.Name),
		Description:  strings.TrimSpace(in.Description),
		Price:        in.Price,
		Duration:     strings.TrimSpace(in.Duration),
		Availability: availability.Normalize(in.Availability),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Services.Create(ctx, svc); err != nil {
		return nil, err
	}
	if err := s.Providers.AddService(ctx, prov.ID, svc.ID); err != nil {
		return nil, fmt.Errorf("failed to link service to provider: %w", err)
	}

	merged := prov.Availability
	for _, e := range svc.Availability {
		merged = availability.Merge(merged, e.Date, e.Slots)
	}
	if err := s.Providers.SetAvailability(ctx, prov.ID, merged); err != nil {
		return nil, fmt.Errorf("failed to update provider availability: %w", err)
	}

	s.logger.Info("service added", zap.String("serviceId", svc.ID), zap.String("providerId", prov.ID),
		zap.Int("slots", availability.SlotCount(svc.Availability)))
	s.notify(ctx, prov, svc, ActionAdded)
	return svc, nil
}

// EditService updates the caller's listing. Zero-valued fields are left as
// they were; a non-nil availability replaces the old one wholesale, after
// which the provider aggregate is rebuilt from every service.
func (s *DefaultCatalogueService) EditService(ctx context.Context, userID, serviceID string, in models.ServiceInput) (*models.Service, error) {
	if err := validateFields(in, false); err != nil {
		return nil, err
	}
	if in.Availability != nil {
		if err := availability.Validate(in.Availability); err != nil {
			return nil, err
		}
	}
	prov, svc, err := s.ownedService(ctx, userID, serviceID)
	if err != nil {
		return nil, err
	}

	if name := strings.TrimSpace(in.Name); name != "" {
		svc.Name = name
	}
	if d := strings.TrimSpace(in.Description); d != "" {
		svc.Description = d
	}
	if in.Price > 0 {
		svc.Price = in.Price
	}
	if d := strings.TrimSpace(in.Duration); d != "" {
		svc.Duration = d
	}
	if in.Availability != nil {
		svc.Availability = availability.Normalize(in.Availability)
	}

	if err := s.Services.Update(ctx, svc); err != nil {
		return nil, mapErr(err)
	}
	if err := s.rebuild(ctx, prov.ID); err != nil {
		return nil, err
	}

	s.logger.Info("service updated", zap.String("serviceId", svc.ID), zap.String("providerId", prov.ID))
	s.notify(ctx, prov, svc, ActionUpdated)
	return svc, nil
}

// DeleteService removes the caller's listing and rebuilds the provider
// aggregate without it.
func (s *DefaultCatalogueService) DeleteService(ctx context.Context, userID, serviceID string) error {
	prov, svc, err := s.ownedService(ctx, userID, serviceID)
	if err != nil {
		return err
	}
	if err := s.Services.Delete(ctx, svc.ID); err != nil {
		return mapErr(err)
	}
	if err := s.Providers.RemoveService(ctx, prov.ID, svc.ID); err != nil {
		return fmt.Errorf("failed to unlink service from provider: %w", err)
	}
	if err := s.rebuild(ctx, prov.ID); err != nil {
		return err
	}

	s.logger.Info("service deleted", zap.String("serviceId", svc.ID), zap.String("providerId", prov.ID))
	s.notify(ctx, prov, svc, ActionDeleted)
	return nil
}

func (s *DefaultCatalogueService) ListMyServices(ctx context.Context, userID string) ([]models.Service, error) {
	prov, err := s.callerProvider(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.Services.ListByProvider(ctx, prov.ID)
}

func (s *DefaultCatalogueService) ListProviderServices(ctx context.Context, providerID string) ([]models.Service, error) {
	if _, err := s.Providers.GetByID(ctx, providerID); err != nil {
		return nil, mapErr(err)
	}
	return s.Services.ListByProvider(ctx, providerID)
}

func (s *DefaultCatalogueService) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	return svc, mapErr(err)
}

// rebuild recomputes the provider aggregate as the union of all of its
// services' availability.
func (s *DefaultCatalogueService) rebuild(ctx context.Context, providerID string) error {
	services, err := s.Services.ListByProvider(ctx, providerID)
	if err != nil {
		return err
	}
	lists := make([][]models.AvailabilityEntry, 0, len(services))
	for _, svc := range services {
		lists = append(lists, svc.Availability)
	}
	if err := s.Providers.SetAvailability(ctx, providerID, availability.Rebuild(lists...)); err != nil {
		return fmt.Errorf("failed to rebuild provider availability: %w", err)
	}
	return nil
}

func (s *DefaultCatalogueService) callerProvider(ctx context.Context, userID string) (*models.Provider, error) {
	prov, err := s.Providers.GetByUserID(ctx, userID)
	return prov, mapErr(err)
}

func (s *DefaultCatalogueService) ownedService(ctx context.Context, userID, serviceID string) (*models.Provider, *models.Service, error) {
	svc, err := s.Services.GetByID(ctx, serviceID)
	if err != nil {
		return nil, nil, mapErr(err)
	}
	prov, err := s.callerProvider(ctx, userID)
	if errors.Is(err, apperror.ErrNotFound) {
		return nil, nil, apperror.ErrForbidden
	}
	if err != nil {
		return nil, nil, err
	}
	if svc.ProviderID != prov.ID {
		return nil, nil, apperror.ErrForbidden
	}
	return prov, svc, nil
}

func (s *DefaultCatalogueService) notify(ctx context.Context, prov *models.Provider, svc *models.Service, action string) {
	ev := models.ServiceChangedEvent{
		Action:      action,
		ProviderID:  prov.ID,
		ServiceID:   svc.ID,
		ServiceName: svc.Name,
		Price:       svc.Price,
		Duration:    svc.Duration,
		Entries:     svc.Availability,
	}
	p := *prov
	s.dispatch(func() {
		if err := s.Notifier.ServiceChanged(context.WithoutCancel(ctx), &p, ev); err != nil {
			s.logger.Warn("service change notification failed", zap.String("serviceId", svc.ID), zap.Error(err))
		}
	})
}

func mapErr(err error) error {
	if errors.Is(err, database.ErrNotFound) {
		return apperror.ErrNotFound
	}
	return err
}
