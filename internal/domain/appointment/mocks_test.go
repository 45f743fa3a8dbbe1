package appointment

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/slotbook/slotbook/internal/domain/catalog"
	"github.com/slotbook/slotbook/internal/domain/client"
	"github.com/slotbook/slotbook/internal/domain/profile"
	"github.com/slotbook/slotbook/internal/platform/audit"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

// mockRepo mimics the transactional conflict re-check of the Postgres
// repository: Create and Update verify overlap against current state under
// a lock, so concurrent bookings serialize the way the real store does.
type mockRepo struct {
	mu    sync.Mutex
	appts map[uuid.UUID]*Appointment
}

func newMockRepo() *mockRepo {
	return &mockRepo{appts: make(map[uuid.UUID]*Appointment)}
}

func (m *mockRepo) hasConflict(a *Appointment, excludeID *uuid.UUID) bool {
	for _, other := range m.appts {
		if other.OwnerID != a.OwnerID || other.DeletedAt != nil || other.Status == StatusCancelled {
			continue
		}
		if excludeID != nil && other.ID == *excludeID {
			continue
		}
		if Overlaps(a.StartTime, a.EndTime(), other.StartTime, other.EndTime()) {
			return true
		}
	}
	return false
}

func (m *mockRepo) Create(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.hasConflict(a, nil) {
		return ErrTimeConflict
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cp := *a
	m.appts[a.ID] = &cp
	return nil
}

func (m *mockRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appts[id]
	if !ok || a.OwnerID != ownerID || a.DeletedAt != nil {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *mockRepo) ListForDay(_ context.Context, ownerID uuid.UUID, date time.Time, excludeID *uuid.UUID) ([]*Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	var items []*Appointment
	for _, a := range m.appts {
		if a.OwnerID != ownerID || a.DeletedAt != nil || a.Status == StatusCancelled {
			continue
		}
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		if !Overlaps(a.StartTime, a.EndTime(), dayStart, dayEnd) {
			continue
		}
		cp := *a
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartTime.Before(items[j].StartTime) })
	return items, nil
}

func (m *mockRepo) ListRange(_ context.Context, ownerID uuid.UUID, from, to time.Time, limit, offset int) ([]*Appointment, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var items []*Appointment
	for _, a := range m.appts {
		if a.OwnerID != ownerID || a.DeletedAt != nil {
			continue
		}
		if a.StartTime.Before(from) || !a.StartTime.Before(to) {
			continue
		}
		cp := *a
		items = append(items, &cp)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartTime.After(items[j].StartTime) })
	total := len(items)
	if offset > len(items) {
		offset = len(items)
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], total, nil
}

func (m *mockRepo) Update(_ context.Context, a *Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.appts[a.ID]
	if !ok || existing.OwnerID != a.OwnerID || existing.DeletedAt != nil {
		return ErrNotFound
	}
	if m.hasConflict(a, &a.ID) {
		return ErrTimeConflict
	}
	cp := *a
	m.appts[a.ID] = &cp
	return nil
}

func (m *mockRepo) UpdateStatus(_ context.Context, ownerID, id uuid.UUID, status Status) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appts[id]
	if !ok || a.OwnerID != ownerID || a.DeletedAt != nil {
		return ErrNotFound
	}
	a.Status = status
	a.UpdatedAt = time.Now()
	return nil
}

func (m *mockRepo) SoftDelete(_ context.Context, ownerID, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	a, ok := m.appts[id]
	if !ok || a.OwnerID != ownerID || a.DeletedAt != nil {
		return ErrNotFound
	}
	now := time.Now()
	a.DeletedAt = &now
	return nil
}

type mockProfiles struct {
	profiles map[uuid.UUID]*profile.Profile
}

func (m *mockProfiles) GetByOwner(_ context.Context, ownerID uuid.UUID) (*profile.Profile, error) {
	p, ok := m.profiles[ownerID]
	if !ok {
		return nil, profile.ErrNotFound
	}
	return p, nil
}

type mockCatalog struct {
	services map[uuid.UUID]*catalog.Service
}

func (m *mockCatalog) Get(_ context.Context, ownerID, id uuid.UUID) (*catalog.Service, error) {
	s, ok := m.services[id]
	if !ok || s.OwnerID != ownerID {
		return nil, catalog.ErrNotFound
	}
	return s, nil
}

type mockClients struct {
	clients map[uuid.UUID]*client.Client
}

func (m *mockClients) Get(_ context.Context, ownerID, id uuid.UUID) (*client.Client, error) {
	c, ok := m.clients[id]
	if !ok || c.OwnerID != ownerID || c.DeletedAt != nil {
		return nil, client.ErrNotFound
	}
	return c, nil
}

type fixture struct {
	svc      *Service
	repo     *mockRepo
	profiles *mockProfiles
	services *mockCatalog
	clients  *mockClients
	clock    *fakeClock
	ownerID  uuid.UUID
}

func newFixture(now time.Time) *fixture {
	f := &fixture{
		repo:     newMockRepo(),
		profiles: &mockProfiles{profiles: make(map[uuid.UUID]*profile.Profile)},
		services: &mockCatalog{services: make(map[uuid.UUID]*catalog.Service)},
		clients:  &mockClients{clients: make(map[uuid.UUID]*client.Client)},
		clock:    &fakeClock{now: now},
		ownerID:  uuid.New(),
	}
	f.svc = NewService(f.repo, f.profiles, f.services, f.clients, f.clock, audit.NopRecorder{})
	return f
}

// withProfile installs a Mon-Sat 09:00-12:00 profile with hourly slots and
// no lead time, then applies overrides.
func (f *fixture) withProfile(mutate func(*profile.Profile)) *profile.Profile {
	p := &profile.Profile{
		OwnerID:         f.ownerID,
		Weekdays:        []int{1, 2, 3, 4, 5, 6},
		StartTime:       "09:00",
		EndTime:         "12:00",
		SlotDurationMin: 60,
		LeadTimeHours:   0,
	}
	if mutate != nil {
		mutate(p)
	}
	f.profiles.profiles[f.ownerID] = p
	return p
}

func (f *fixture) withService(name string, durationMin int, active bool) *catalog.Service {
	s := &catalog.Service{
		ID:          uuid.New(),
		OwnerID:     f.ownerID,
		Name:        name,
		DurationMin: durationMin,
		Active:      active,
	}
	f.services.services[s.ID] = s
	return s
}

func (f *fixture) withClient(name string) *client.Client {
	c := &client.Client{
		ID:      uuid.New(),
		OwnerID: f.ownerID,
		Name:    name,
		Email:   "client@example.com",
	}
	f.clients.clients[c.ID] = c
	return c
}

// monday is a fixed working Monday used across the scheduling tests.
var monday = time.Date(2026, 3, 2, 0, 0, 0, 0, time.Local)

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}
