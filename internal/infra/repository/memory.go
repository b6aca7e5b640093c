package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

type slotKey struct {
	barberID uint
	date     string
	time     string
}

// MemoryStore implementa os dois stores em memória, para instância única
// e para testes.
type MemoryStore struct {
	catalog domain.SlotCatalog

	dirMu     sync.RWMutex
	locations map[uint]models.Location
	barbers   map[uint]models.Barber
	clients   map[int64]*models.Client

	apMu         sync.Mutex
	appointments map[slotKey]models.Appointment

	locationCounter    uint
	barberCounter      uint
	clientCounter      uint
	appointmentCounter uint

	now func() time.Time
}

func NewMemoryStore(catalog domain.SlotCatalog) *MemoryStore {
	return &MemoryStore{
		catalog:      catalog,
		locations:    make(map[uint]models.Location),
		barbers:      make(map[uint]models.Barber),
		clients:      make(map[int64]*models.Client),
		appointments: make(map[slotKey]models.Appointment),
		now:          time.Now,
	}
}

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (m *MemoryStore) EnsureLocation(_ context.Context, name string) (uint, error) {
	m.dirMu.Lock()
	defer m.dirMu.Unlock()

	for _, l := range m.locations {
		if l.Name == name {
			return l.ID, nil
		}
	}

	m.locationCounter++
	m.locations[m.locationCounter] = models.Location{
		ID:        m.locationCounter,
		Name:      name,
		CreatedAt: m.now(),
	}
	return m.locationCounter, nil
}

func (m *MemoryStore) EnsureBarber(_ context.Context, name string, locationID uint) error {
	m.dirMu.Lock()
	defer m.dirMu.Unlock()

	if _, ok := m.locations[locationID]; !ok {
		return httperr.ErrBusiness(httperr.CodeLocationNotFound)
	}

	for _, b := range m.barbers {
		if b.Name == name && b.LocationID == locationID {
			return nil
		}
	}

	m.barberCounter++
	m.barbers[m.barberCounter] = models.Barber{
		ID:         m.barberCounter,
		Name:       name,
		LocationID: locationID,
		CreatedAt:  m.now(),
	}
	return nil
}

// --------------------------------------------------
// Directory
// --------------------------------------------------

func (m *MemoryStore) ListLocations(_ context.Context) ([]models.Location, error) {
	m.dirMu.RLock()
	defer m.dirMu.RUnlock()

	out := make([]models.Location, 0, len(m.locations))
	for _, l := range m.locations {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) ListBarbers(_ context.Context, locationID uint) ([]models.Barber, error) {
	m.dirMu.RLock()
	defer m.dirMu.RUnlock()

	out := []models.Barber{}
	for _, b := range m.barbers {
		if b.LocationID == locationID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *MemoryStore) GetBarber(_ context.Context, barberID uint) (*models.Barber, error) {
	m.dirMu.RLock()
	defer m.dirMu.RUnlock()

	b, ok := m.barbers[barberID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
	}
	return &b, nil
}

func (m *MemoryStore) UpsertClient(_ context.Context, externalUserID int64, name string) error {
	m.dirMu.Lock()
	defer m.dirMu.Unlock()

	now := m.now()
	if c, ok := m.clients[externalUserID]; ok {
		c.Name = name
		c.UpdatedAt = now
		return nil
	}

	m.clientCounter++
	m.clients[externalUserID] = &models.Client{
		ID:             m.clientCounter,
		ExternalUserID: externalUserID,
		Name:           name,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	return nil
}

func (m *MemoryStore) SetClientPhone(_ context.Context, externalUserID int64, phone string) error {
	m.dirMu.Lock()
	defer m.dirMu.Unlock()

	c, ok := m.clients[externalUserID]
	if !ok {
		return httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	c.Phone = phone
	c.UpdatedAt = m.now()
	return nil
}

func (m *MemoryStore) GetClient(_ context.Context, externalUserID int64) (*models.Client, error) {
	m.dirMu.RLock()
	defer m.dirMu.RUnlock()

	c, ok := m.clients[externalUserID]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	cp := *c
	return &cp, nil
}

// ClientCount é usado nos testes de idempotência.
func (m *MemoryStore) ClientCount() int {
	m.dirMu.RLock()
	defer m.dirMu.RUnlock()
	return len(m.clients)
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (m *MemoryStore) FreeSlots(_ context.Context, barberID uint, date string) ([]string, error) {
	m.apMu.Lock()
	defer m.apMu.Unlock()

	var booked []string
	for k := range m.appointments {
		if k.barberID == barberID && k.date == date {
			booked = append(booked, k.time)
		}
	}
	return m.catalog.Free(booked), nil
}

func (m *MemoryStore) CommitAppointment(
	ctx context.Context,
	in domain.NewAppointment,
) (*models.Appointment, error) {

	in, err := in.Validate(m.catalog)
	if err != nil {
		return nil, err
	}

	if _, err := m.GetBarber(ctx, in.BarberID); err != nil {
		return nil, err
	}

	m.apMu.Lock()
	defer m.apMu.Unlock()

	key := slotKey{barberID: in.BarberID, date: in.Date, time: in.Time}
	if _, taken := m.appointments[key]; taken {
		return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
	}

	m.appointmentCounter++
	ap := models.Appointment{
		ID:         m.appointmentCounter,
		BarberID:   in.BarberID,
		ClientName: in.ClientName,
		Phone:      in.Phone,
		Date:       in.Date,
		Time:       in.Time,
		CreatedAt:  m.now(),
	}
	m.appointments[key] = ap
	return &ap, nil
}

func (m *MemoryStore) ListAppointments(_ context.Context, barberID uint, date string) ([]models.Appointment, error) {
	m.apMu.Lock()
	defer m.apMu.Unlock()

	out := []models.Appointment{}
	for k, ap := range m.appointments {
		if k.barberID == barberID && k.date == date {
			out = append(out, ap)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Time < out[j].Time })
	return out, nil
}

// Compile-time check
var (
	_ domain.AvailabilityStore = (*MemoryStore)(nil)
	_ domain.DirectoryStore    = (*MemoryStore)(nil)
)
