package booking

import (
	"context"
	"sort"
	"sync"
	"time"

	"servicefinder/database"
	"servicefinder/models"
	"servicefinder/services/availability"
)

// memStore is an in-memory stand-in for the services, providers and bookings
// collections, with the same conditional-write semantics as the Mongo repos.
type memStore struct {
	mu        sync.Mutex
	services  map[string]models.Service
	providers map[string]models.Provider
	bookings  map[string]models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		services:  map[string]models.Service{},
		providers: map[string]models.Provider{},
		bookings:  map[string]models.Booking{},
	}
}

type memServices struct{ *memStore }
type memProviders struct{ *memStore }

func (m memServices) GetByID(_ context.Context, id string) (*models.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.services[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &s, nil
}

func (m memProviders) GetByID(_ context.Context, id string) (*models.Provider, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.providers[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &p, nil
}

func (m *memStore) Create(_ context.Context, b *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bookings[b.ID] = *b
	return nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &b, nil
}

func (m *memStore) ListByUser(_ context.Context, userID string) ([]models.Booking, error) {
	return m.filter(func(b models.Booking) bool { return b.UserID == userID }), nil
}

func (m *memStore) ListPendingBefore(_ context.Context, cutoff time.Time) ([]models.Booking, error) {
	return m.filter(func(b models.Booking) bool {
		return b.PaymentStatus == models.PaymentPending && b.CreatedAt.Before(cutoff)
	}), nil
}

func (m *memStore) filter(keep func(models.Booking) bool) []models.Booking {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []models.Booking{}
	for _, b := range m.bookings {
		if keep(b) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}

func (m *memStore) AttachPaymentRef(_ context.Context, id, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.PaymentStatus != models.PaymentPending {
		return database.ErrConflict
	}
	b.PaymentRef = ref
	m.bookings[id] = b
	return nil
}

func (m *memStore) Transition(_ context.Context, id string, from, to models.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.bookings[id]
	if !ok || b.PaymentStatus != from {
		return database.ErrConflict
	}
	b.PaymentStatus = to
	m.bookings[id] = b
	return nil
}

func (m *memStore) CommitReservation(_ context.Context, booking *models.Booking, ref string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.bookings[booking.ID]
	if !ok || b.PaymentStatus != models.PaymentPending {
		return database.ErrConflict
	}
	svc := m.services[b.Service.ID]
	svcSlots, removed := availability.Remove(svc.Availability, b.Date, b.Slot)
	if !removed {
		return database.ErrSlotTaken
	}
	prov := m.providers[b.ProviderID]
	provSlots, removed := availability.Remove(prov.Availability, b.Date, b.Slot)
	if !removed {
		return database.ErrSlotTaken
	}
	svc.Availability = svcSlots
	m.services[svc.ID] = svc
	prov.Availability = provSlots
	m.providers[prov.ID] = prov

	b.PaymentStatus = models.PaymentCompleted
	if ref != "" {
		b.PaymentRef = ref
	}
	m.bookings[b.ID] = b
	return nil
}

func (m *memStore) status(id string) models.PaymentStatus {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bookings[id].PaymentStatus
}

type scheduled struct {
	bookingID string
	at        time.Time
}

type fakeScheduler struct {
	calls []scheduled
	err   error
}

func (f *fakeScheduler) ScheduleExpiry(_ context.Context, id string, at time.Time) error {
	f.calls = append(f.calls, scheduled{id, at})
	return f.err
}

type fakeGateway struct {
	paid      bool
	err       error
	orders    int
	cancelled []string
	refunded  []string
	refundErr error
}

func (g *fakeGateway) CreateOrder(_ context.Context, b *models.Booking) (*models.PaymentOrder, error) {
	g.orders++
	return &models.PaymentOrder{OrderID: "pi_" + b.ID, BookingID: b.ID, Amount: 50000, Currency: "inr"}, nil
}

func (g *fakeGateway) Verify(context.Context, models.PaymentVerification) (bool, error) {
	return g.paid, g.err
}

func (g *fakeGateway) Cancel(_ context.Context, orderID string) error {
	g.cancelled = append(g.cancelled, orderID)
	return nil
}

func (g *fakeGateway) Refund(_ context.Context, orderID string) error {
	g.refunded = append(g.refunded, orderID)
	return g.refundErr
}

type recordingNotifier struct {
	mu        sync.Mutex
	confirmed []string
}

func (r *recordingNotifier) BookingConfirmed(_ context.Context, b *models.Booking, _ *models.Provider) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.confirmed = append(r.confirmed, b.ID)
	return nil
}

func (r *recordingNotifier) ServiceChanged(context.Context, *models.Provider, models.ServiceChangedEvent) error {
	return nil
}
