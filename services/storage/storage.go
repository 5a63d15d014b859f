// Package storage keeps user-uploaded media on Cloudinary.
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// StorageService stores images and returns where they can be fetched.
type StorageService interface {
	// UploadImage stores r under folder/publicID, replacing any previous
	// upload with the same ID, and returns its HTTPS URL.
	UploadImage(ctx context.Context, r io.Reader, folder, publicID string) (string, error)
	DeleteFile(ctx context.Context, publicID string) error
}

// CloudinaryStorage implements StorageService on Cloudinary.
type CloudinaryStorage struct {
	cld *cloudinary.Cloudinary
}

func NewStorageService(cld *cloudinary.Cloudinary) StorageService {
	return &CloudinaryStorage{cld: cld}
}

func (s *CloudinaryStorage) UploadImage(ctx context.Context, r io.Reader, folder, publicID string) (string, error) {
	result, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       folder,
		PublicID:     publicID,
		Overwrite:    api.Bool(true),
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("storage: failed to upload image: %w", err)
	}
	if result.SecureURL == "" {
		return "", fmt.Errorf("storage: no URL returned for %s", publicID)
	}
	return result.SecureURL, nil
}

func (s *CloudinaryStorage) DeleteFile(ctx context.Context, publicID string) error {
	if _, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID}); err != nil {
		return fmt.Errorf("storage: failed to delete file: %w", err)
	}
	return nil
}
