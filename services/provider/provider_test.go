package provider

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"servicefinder/database"
	"servicefinder/models"
	"servicefinder/services/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type memProviders struct {
	byID map[string]*models.Provider
}

func (m *memProviders) GetByID(_ context.Context, id string) (*models.Provider, error) {
	if p, ok := m.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, database.ErrNotFound
}

func (m *memProviders) GetByUserID(_ context.Context, userID string) (*models.Provider, error) {
	for _, p := range m.byID {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memProviders) Search(_ context.Context, c models.ProviderSearch) ([]models.Provider, error) {
	out := []models.Provider{}
	for _, p := range m.byID {
		if strings.Contains(strings.ToLower(p.Location), strings.ToLower(c.Location)) {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (m *memProviders) Create(_ context.Context, p *models.Provider) error {
	cp := *p
	m.byID[p.ID] = &cp
	return nil
}

func (m *memProviders) UpdateSet(_ context.Context, id string, fields bson.M) error {
	p, ok := m.byID[id]
	if !ok {
		return database.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "name":
			p.Name = v.(string)
		case "service":
			p.Service = v.(string)
		case "location":
			p.Location = v.(string)
		case "photo":
			p.Photo = v.(string)
		case "fcmToken":
			p.FCMToken = v.(string)
		case "certifications":
			p.Certifications = v.([]string)
		}
	}
	return nil
}

func (m *memProviders) SetAvailability(context.Context, string, []models.AvailabilityEntry) error {
	return nil
}
func (m *memProviders) AddService(context.Context, string, string) error    { return nil }
func (m *memProviders) RemoveService(context.Context, string, string) error { return nil }
func (m *memProviders) RemoveSlot(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (m *memProviders) AddReview(context.Context, string, string) error  { return nil }
func (m *memProviders) SetRating(context.Context, string, float64) error { return nil }

type fakeStorage struct {
	uploaded []string
	err      error
}

func (f *fakeStorage) UploadImage(_ context.Context, r io.Reader, folder, publicID string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	f.uploaded = append(f.uploaded, string(b))
	return "https://cdn.example/" + folder + "/" + publicID, nil
}

func (f *fakeStorage) DeleteFile(context.Context, string) error { return nil }

func newTestService() (*DefaultProviderService, *memProviders, *fakeStorage) {
	repo := &memProviders{byID: map[string]*models.Provider{}}
	store := &fakeStorage{}
	return NewDefaultProviderService(repo, store, zap.NewNop()), repo, store
}

func TestUpsertProfileCreatesThenPatches(t *testing.T) {
	svc, _, _ := newTestService()
	ctx := context.Background()

	if _, err := svc.UpsertProfile(ctx, "u1", models.ProviderProfileInput{Name: "Asha"}); !errors.Is(err, apperror.ErrValidation) {
		t.Fatalf("incomplete new profile should fail validation, got %v", err)
	}

	p, err := svc.UpsertProfile(ctx, "u1", models.ProviderProfileInput{Name: "Asha", Service: "Salon", Location: "Pune"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Rating != 0 || len(p.Availability) != 0 || p.Services == nil {
		t.Fatalf("new profile should start empty: %+v", p)
	}

	updated, err := svc.UpsertProfile(ctx, "u1", models.ProviderProfileInput{Location: "Mumbai"})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if updated.ID != p.ID || updated.Location != "Mumbai" || updated.Name != "Asha" {
		t.Fatalf("unexpected patched profile %+v", updated)
	}
}

func TestUploadPhoto(t *testing.T) {
	svc, repo, store := newTestService()
	ctx := context.Background()

	if _, err := svc.UploadPhoto(ctx, "u1", strings.NewReader("img")); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without a profile, got %v", err)
	}

	p, _ := svc.UpsertProfile(ctx, "u1", models.ProviderProfileInput{Name: "Asha", Service: "Salon", Location: "Pune"})
	got, err := svc.UploadPhoto(ctx, "u1", strings.NewReader("img"))
	if err != nil {
		t.Fatalf("UploadPhoto: %v", err)
	}
	want := "https://cdn.example/providers/" + p.ID
	if got.Photo != want || repo.byID[p.ID].Photo != want {
		t.Fatalf("photo not stored: %q", got.Photo)
	}
	if len(store.uploaded) != 1 || store.uploaded[0] != "img" {
		t.Fatalf("unexpected uploads %v", store.uploaded)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, _, _ := newTestService()
	if _, err := svc.GetByID(context.Background(), "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
