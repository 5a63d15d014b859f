package provider

import (
	"context"
	"io"

	"servicefinder/database/repository"
	"servicefinder/models"
	"servicefinder/services/storage"

	"go.uber.org/zap"
)

// ProviderService manages provider profiles and the public listing.
type ProviderService interface {
	Search(ctx context.Context, criteria models.ProviderSearch) ([]models.Provider, error)
	GetByID(ctx context.Context, id string) (*models.Provider, error)
	GetProfile(ctx context.Context, userID string) (*models.Provider, error)
	UpsertProfile(ctx context.Context, userID string, in models.ProviderProfileInput) (*models.Provider, error)
	UploadPhoto(ctx context.Context, userID string, photo io.Reader) (*models.Provider, error)
	UpdateFCMToken(ctx context.Context, userID, token string) error
}

// DefaultProviderService is the production implementation.
type DefaultProviderService struct {
	Repo    repository.ProviderRepository
	Storage storage.StorageService
	logger  *zap.Logger
}

// NewDefaultProviderService builds the service. storage may be nil, in which
// case photo uploads are refused.
func NewDefaultProviderService(repo repository.ProviderRepository, store storage.StorageService, logger *zap.Logger) *DefaultProviderService {
	return &DefaultProviderService{Repo: repo, Storage: store, logger: logger}
}
