// Package review records ratings for completed bookings and keeps each
// provider's average rating current.
package review

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MinRating = 1
	MaxRating = 5
)

// ReviewService submits and lists reviews.
type ReviewService interface {
	SubmitReview(ctx context.Context, userID string, req models.ReviewRequest) (*models.Review, error)
	ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error)
}

// BookingReader loads bookings.
type BookingReader interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
}

// DefaultReviewService is the production implementation.
type DefaultReviewService struct {
	Reviews   repository.ReviewRepository
	Bookings  BookingReader
	Providers repository.ProviderRepository
	logger    *zap.Logger
	now       func() time.Time
}

func NewDefaultReviewService(reviews repository.ReviewRepository, bookings BookingReader, providers repository.ProviderRepository, logger *zap.Logger) *DefaultReviewService {
	return &DefaultReviewService{
		Reviews:   reviews,
		Bookings:  bookings,
		Providers: providers,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// SubmitReview stores a rating for one of the caller's completed bookings
// and recomputes the provider's rating as the mean over all their reviews.
func (s *DefaultReviewService) SubmitReview(ctx context.Context, userID string, req models.ReviewRequest) (*models.Review, error) {
	if req.Rating < MinRating || req.Rating > MaxRating {
		return nil, fmt.Errorf("%w: rating must be between %d and %d", apperror.ErrValidation, MinRating, MaxRating)
	}

	b, err := s.Bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.ErrInvalidBooking
		}
		return nil, fmt.Errorf("failed to load booking: %w", err)
	}
	if b.UserID != userID || b.PaymentStatus != models.PaymentCompleted || b.ProviderID != req.ProviderID {
		return nil, apperror.ErrInvalidBooking
	}

	exists, err := s.Reviews.ExistsForBooking(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperror.ErrDuplicateReview
	}

	if _, err := s.Providers.GetByID(ctx, req.ProviderID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load provider: %w", err)
	}

	r := &models.Review{
		ID:         uuid.New().String(),
		UserID:     userID,
		ProviderID: req.ProviderID,
		BookingID:  b.ID,
		Rating:     req.Rating,
		Comment:    strings.TrimSpace(req.Comment),
		CreatedAt:  s.now(),
	}
	if err := s.Reviews.Create(ctx, r); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return nil, apperror.ErrDuplicateReview
		}
		return nil, err
	}

	if err := s.Providers.AddReview(ctx, r.ProviderID, r.ID); err != nil {
		return nil, fmt.Errorf("failed to link review to provider: %w", err)
	}
	if err := s.refreshRating(ctx, r.ProviderID); err != nil {
		return nil, err
	}

	s.logger.Info("review submitted",
		zap.String("reviewId", r.ID), zap.String("providerId", r.ProviderID), zap.Int("rating", r.Rating))
	return r, nil
}

func (s *DefaultReviewService) refreshRating(ctx context.Context, providerID string) error {
	avg, count, err := s.Reviews.AverageRating(ctx, providerID)
	if err != nil {
		return err
	}
	if count == 0 {
		avg = 0
	}
	if err := s.Providers.SetRating(ctx, providerID, avg); err != nil {
		return fmt.Errorf("failed to store provider rating: %w", err)
	}
	return nil
}

func (s *DefaultReviewService) ListProviderReviews(ctx context.Context, providerID string) ([]models.Review, error) {
	return s.Reviews.ListByProvider(ctx, providerID)
}
