package catalogue

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
	"time"

	"servicefinder/database"
	"servicefinder/models"
	"servicefinder/services/apperror"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

type memServices struct {
	items map[string]models.Service
}

func (m *memServices) Create(_ context.Context, s *models.Service) error {
	m.items[s.ID] = *s
	return nil
}

func (m *memServices) GetByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &s, nil
}

func (m *memServices) ListByProvider(_ context.Context, providerID string) ([]models.Service, error) {
	out := []models.Service{}
	for _, s := range m.items {
		if s.ProviderID == providerID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (m *memServices) Update(_ context.Context, s *models.Service) error {
	if _, ok := m.items[s.ID]; !ok {
		return database.ErrNotFound
	}
	m.items[s.ID] = *s
	return nil
}

func (m *memServices) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return database.ErrNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *memServices) RemoveSlot(context.Context, string, string, string) (bool, error) {
	return false, nil
}

type memProviders struct {
	items map[string]*models.Provider
}

func (m *memProviders) GetByID(_ context.Context, id string) (*models.Provider, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProviders) GetByUserID(_ context.Context, userID string) (*models.Provider, error) {
	for _, p := range m.items {
		if p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, database.ErrNotFound
}

func (m *memProviders) Search(context.Context, models.ProviderSearch) ([]models.Provider, error) {
	return nil, nil
}
func (m *memProviders) Create(context.Context, *models.Provider) error  { return nil }
func (m *memProviders) UpdateSet(context.Context, string, bson.M) error { return nil }
func (m *memProviders) RemoveSlot(context.Context, string, string, string) (bool, error) {
	return false, nil
}
func (m *memProviders) AddReview(context.Context, string, string) error  { return nil }
func (m *memProviders) SetRating(context.Context, string, float64) error { return nil }

func (m *memProviders) SetAvailability(_ context.Context, id string, entries []models.AvailabilityEntry) error {
	m.items[id].Availability = entries
	return nil
}

func (m *memProviders) AddService(_ context.Context, id, serviceID string) error {
	m.items[id].Services = append(m.items[id].Services, serviceID)
	return nil
}

func (m *memProviders) RemoveService(_ context.Context, id, serviceID string) error {
	p := m.items[id]
	kept := p.Services[:0]
	for _, s := range p.Services {
		if s != serviceID {
			kept = append(kept, s)
		}
	}
	p.Services = kept
	return nil
}

type changeRecorder struct {
	actions []string
}

func (c *changeRecorder) BookingConfirmed(context.Context, *models.Booking, *models.Provider) error {
	return nil
}

func (c *changeRecorder) ServiceChanged(_ context.Context, _ *models.Provider, ev models.ServiceChangedEvent) error {
	c.actions = append(c.actions, ev.Action)
	return nil
}

type fixture struct {
	svc       *DefaultCatalogueService
	services  *memServices
	providers *memProviders
	changes   *changeRecorder
}

func newFixture() *fixture {
	f := &fixture{
		services: &memServices{items: map[string]models.Service{}},
		providers: &memProviders{items: map[string]*models.Provider{
			"p1": {ID: "p1", UserID: "owner"},
			"p2": {ID: "p2", UserID: "other"},
		}},
		changes: &changeRecorder{},
	}
	f.svc = NewDefaultCatalogueService(f.services, f.providers, f.changes, zap.NewNop())
	clock := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}
	f.svc.dispatch = func(fn func()) { fn() }
	return f
}

func entries(date string, slots ...string) []models.AvailabilityEntry {
	return []models.AvailabilityEntry{{Date: date, Slots: slots}}
}

func (f *fixture) add(t *testing.T, name string, avail []models.AvailabilityEntry) *models.Service {
	t.Helper()
	s, err := f.svc.AddService(context.Background(), "owner", models.ServiceInput{Name: name, Price: 100, Availability: avail})
	if err != nil {
		t.Fatalf("AddService(%s): %v", name, err)
	}
	return s
}

func TestAddServiceMergesIntoProvider(t *testing.T) {
	f := newFixture()
	f.add(t, "Haircut", entries("2025-06-01", "10:00", "11:00"))
	f.add(t, "Shave", []models.AvailabilityEntry{
		{Date: "2025-06-01", Slots: []string{"11:00", "12:00"}},
		{Date: "2025-06-02", Slots: []string{"09:00"}},
	})

	want := []models.AvailabilityEntry{
		{Date: "2025-06-01", Slots: []string{"10:00", "11:00", "12:00"}},
		{Date: "2025-06-02", Slots: []string{"09:00"}},
	}
	if got := f.providers.items["p1"].Availability; !reflect.DeepEqual(got, want) {
		t.Fatalf("aggregate = %v, want %v", got, want)
	}
	if len(f.providers.items["p1"].Services) != 2 {
		t.Fatalf("services not linked: %v", f.providers.items["p1"].Services)
	}
	if !reflect.DeepEqual(f.changes.actions, []string{ActionAdded, ActionAdded}) {
		t.Fatalf("unexpected notifications %v", f.changes.actions)
	}
}

func TestAddServiceNormalizesInput(t *testing.T) {
	f := newFixture()
	s := f.add(t, "Haircut", []models.AvailabilityEntry{
		{Date: "2025-06-01", Slots: []string{"10:00", "10:00"}},
		{Date: "2025-06-01", Slots: []string{"11:00"}},
	})
	if want := entries("2025-06-01", "10:00", "11:00"); !reflect.DeepEqual(s.Availability, want) {
		t.Fatalf("availability = %v, want %v", s.Availability, want)
	}
}

func TestAddServiceValidation(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	tests := []struct {
		name string
		in   models.ServiceInput
	}{
		{"no name", models.ServiceInput{Price: 10, Availability: entries("2025-06-01", "10:00")}},
		{"no price", models.ServiceInput{Name: "x", Availability: entries("2025-06-01", "10:00")}},
		{"no availability", models.ServiceInput{Name: "x", Price: 10}},
		{"empty slots", models.ServiceInput{Name: "x", Price: 10, Availability: entries("2025-06-01")}},
		{"blank date", models.ServiceInput{Name: "x", Price: 10, Availability: entries("", "10:00")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.AddService(ctx, "owner", tt.in); !errors.Is(err, apperror.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
	if len(f.services.items) != 0 {
		t.Fatal("invalid input must not create services")
	}
}

func TestAddServiceWithoutProfile(t *testing.T) {
	f := newFixture()
	_, err := f.svc.AddService(context.Background(), "stranger", models.ServiceInput{Name: "x", Price: 10, Availability: entries("2025-06-01", "10:00")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditServiceRebuildsAggregate(t *testing.T) {
	f := newFixture()
	a := f.add(t, "Haircut", entries("2025-06-01", "10:00", "11:00"))
	f.add(t, "Shave", entries("2025-06-01", "11:00"))

	edited, err := f.svc.EditService(context.Background(), "owner", a.ID, models.ServiceInput{
		Price:        150,
		Availability: entries("2025-06-03", "15:00"),
	})
	if err != nil {
		t.Fatalf("EditService: %v", err)
	}
	if edited.Name != "Haircut" || edited.Price != 150 {
		t.Fatalf("partial update wrong: %+v", edited)
	}

	want := []models.AvailabilityEntry{
		{Date: "2025-06-03", Slots: []string{"15:00"}},
		{Date: "2025-06-01", Slots: []string{"11:00"}},
	}
	if got := f.providers.items["p1"].Availability; !reflect.DeepEqual(got, want) {
		t.Fatalf("aggregate = %v, want %v", got, want)
	}
}

func TestDeleteServiceDropsItsSlots(t *testing.T) {
	f := newFixture()
	a := f.add(t, "Haircut", entries("2025-06-01", "10:00"))
	b := f.add(t, "Shave", entries("2025-06-01", "11:00"))

	if err := f.svc.DeleteService(context.Background(), "owner", a.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if got := f.providers.items["p1"].Availability; !reflect.DeepEqual(got, entries("2025-06-01", "11:00")) {
		t.Fatalf("aggregate after delete = %v", got)
	}
	if got := f.providers.items["p1"].Services; !reflect.DeepEqual(got, []string{b.ID}) {
		t.Fatalf("service links after delete = %v", got)
	}

	if err := f.svc.DeleteService(context.Background(), "owner", b.ID); err != nil {
		t.Fatalf("DeleteService: %v", err)
	}
	if got := f.providers.items["p1"].Availability; got == nil || len(got) != 0 {
		t.Fatalf("aggregate should be empty, got %v", got)
	}
}

func TestOwnershipIsEnforced(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.add(t, "Haircut", entries("2025-06-01", "10:00"))

	if _, err := f.svc.EditService(ctx, "other", s.ID, models.ServiceInput{Price: 1}); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on edit, got %v", err)
	}
	if err := f.svc.DeleteService(ctx, "other", s.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden on delete, got %v", err)
	}
	if err := f.svc.DeleteService(ctx, "stranger", s.ID); !errors.Is(err, apperror.ErrForbidden) {
		t.Fatalf("expected ErrForbidden without profile, got %v", err)
	}
	if err := f.svc.DeleteService(ctx, "owner", "missing"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListServices(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	f.add(t, "Haircut", entries("2025-06-01", "10:00"))

	mine, err := f.svc.ListMyServices(ctx, "owner")
	if err != nil || len(mine) != 1 {
		t.Fatalf("ListMyServices = %v, %v", mine, err)
	}
	public, err := f.svc.ListProviderServices(ctx, "p1")
	if err != nil || len(public) != 1 {
		t.Fatalf("ListProviderServices = %v, %v", public, err)
	}
	if _, err := f.svc.ListProviderServices(ctx, "ghost"); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
