package repository

import (
	"context"
	"reflect"
	"sync"
	"testing"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

var testCatalog = domain.SlotCatalog{"10:00", "11:00", "12:00", "13:00", "14:00"}

func newSeededStore(t *testing.T) (*MemoryStore, uint) {
	t.Helper()
	ctx := context.Background()

	m := NewMemoryStore(testCatalog)
	centru, err := m.EnsureLocation(ctx, "Centru")
	if err != nil {
		t.Fatalf("EnsureLocation: %v", err)
	}
	for _, name := range []string{"Vlad", "Ion"} {
		if err := m.EnsureBarber(ctx, name, centru); err != nil {
			t.Fatalf("EnsureBarber(%s): %v", name, err)
		}
	}
	return m, centru
}

func barberID(t *testing.T, m *MemoryStore, locationID uint, name string) uint {
	t.Helper()
	barbers, err := m.ListBarbers(context.Background(), locationID)
	if err != nil {
		t.Fatalf("ListBarbers: %v", err)
	}
	for _, b := range barbers {
		if b.Name == name {
			return b.ID
		}
	}
	t.Fatalf("barber %s not found", name)
	return 0
}

func TestMemoryStoreDirectoryOrdering(t *testing.T) {
	ctx := context.Background()
	m, centru := newSeededStore(t)

	for _, name := range []string{"Râșcani", "Buiucani", "Centru"} {
		if _, err := m.EnsureLocation(ctx, name); err != nil {
			t.Fatalf("EnsureLocation(%s): %v", name, err)
		}
	}

	locs, _ := m.ListLocations(ctx)
	var names []string
	for _, l := range locs {
		names = append(names, l.Name)
	}
	want := []string{"Buiucani", "Centru", "Râșcani"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("ListLocations() = %v, want %v", names, want)
	}

	barbers, _ := m.ListBarbers(ctx, centru)
	if len(barbers) != 2 || barbers[0].Name != "Ion" || barbers[1].Name != "Vlad" {
		t.Errorf("ListBarbers(centru) = %+v, want Ion, Vlad", barbers)
	}

	empty, err := m.ListBarbers(ctx, 999)
	if err != nil || len(empty) != 0 {
		t.Errorf("ListBarbers(unknown) = %v, %v; want empty, nil", empty, err)
	}

	if err := m.EnsureBarber(ctx, "Ghost", 999); !httperr.IsBusiness(err, httperr.CodeLocationNotFound) {
		t.Errorf("EnsureBarber(unknown location) error = %v, want location_not_found", err)
	}
}

func TestMemoryStoreUpsertClientIsIdempotent(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(testCatalog)

	for i := 0; i < 2; i++ {
		if err := m.UpsertClient(ctx, 42, "Ana Popescu"); err != nil {
			t.Fatalf("UpsertClient: %v", err)
		}
	}

	if got := m.ClientCount(); got != 1 {
		t.Fatalf("ClientCount() = %d, want 1", got)
	}
	c, err := m.GetClient(ctx, 42)
	if err != nil {
		t.Fatalf("GetClient: %v", err)
	}
	if c.Name != "Ana Popescu" || c.Phone != "" {
		t.Errorf("client = %+v, want name Ana Popescu and no phone", c)
	}

	if err := m.UpsertClient(ctx, 42, "Ana P."); err != nil {
		t.Fatalf("UpsertClient rename: %v", err)
	}
	c, _ = m.GetClient(ctx, 42)
	if c.Name != "Ana P." {
		t.Errorf("Name = %q, want renamed", c.Name)
	}
}

func TestMemoryStoreClientPhone(t *testing.T) {
	ctx := context.Background()
	m := NewMemoryStore(testCatalog)

	if err := m.SetClientPhone(ctx, 7, "+37369123456"); !httperr.IsBusiness(err, httperr.CodeClientNotFound) {
		t.Errorf("SetClientPhone(missing) error = %v, want client_not_found", err)
	}
	if _, err := m.GetClient(ctx, 7); !httperr.IsBusiness(err, httperr.CodeClientNotFound) {
		t.Errorf("GetClient(missing) error = %v, want client_not_found", err)
	}

	_ = m.UpsertClient(ctx, 7, "Ion")
	if err := m.SetClientPhone(ctx, 7, "+37369123456"); err != nil {
		t.Fatalf("SetClientPhone: %v", err)
	}
	c, _ := m.GetClient(ctx, 7)
	if c.Phone != "+37369123456" {
		t.Errorf("Phone = %q, want +37369123456", c.Phone)
	}
}

func TestMemoryStoreFreeSlots(t *testing.T) {
	ctx := context.Background()
	m, centru := newSeededStore(t)
	vlad := barberID(t, m, centru, "Vlad")
	ion := barberID(t, m, centru, "Ion")

	for _, hm := range []string{"13:00", "10:00"} {
		if _, err := m.CommitAppointment(ctx, domain.NewAppointment{
			BarberID: vlad, ClientName: "Ana", Date: "2024-06-01", Time: hm,
		}); err != nil {
			t.Fatalf("CommitAppointment(%s): %v", hm, err)
		}
	}

	tests := []struct {
		name   string
		barber uint
		date   string
		want   []string
	}{
		{"booked barber and day", vlad, "2024-06-01", []string{"11:00", "12:00", "14:00"}},
		{"other day", vlad, "2024-06-02", []string(testCatalog)},
		{"other barber", ion, "2024-06-01", []string(testCatalog)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := m.FreeSlots(ctx, tt.barber, tt.date)
			if err != nil {
				t.Fatalf("FreeSlots: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FreeSlots() = %v, want %v", got, tt.want)
			}
		})
	}

	apps, _ := m.ListAppointments(ctx, vlad, "2024-06-01")
	if len(apps) != 2 || apps[0].Time != "10:00" || apps[1].Time != "13:00" {
		t.Errorf("ListAppointments() = %+v, want 10:00 then 13:00", apps)
	}
}

func TestMemoryStoreCommitRejections(t *testing.T) {
	ctx := context.Background()
	m, centru := newSeededStore(t)
	vlad := barberID(t, m, centru, "Vlad")

	tests := []struct {
		name     string
		in       domain.NewAppointment
		wantCode string
	}{
		{"unknown barber", domain.NewAppointment{BarberID: 99, ClientName: "Ana", Date: "2024-06-01", Time: "10:00"}, httperr.CodeBarberNotFound},
		{"time outside catalog", domain.NewAppointment{BarberID: vlad, ClientName: "Ana", Date: "2024-06-01", Time: "10:30"}, httperr.CodeInvalidDateOrTime},
		{"bad date", domain.NewAppointment{BarberID: vlad, ClientName: "Ana", Date: "tomorrow", Time: "10:00"}, httperr.CodeInvalidDateOrTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := m.CommitAppointment(ctx, tt.in); !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("CommitAppointment() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}

func TestMemoryStoreNoDoubleBooking(t *testing.T) {
	ctx := context.Background()
	m, centru := newSeededStore(t)
	vlad := barberID(t, m, centru, "Vlad")

	const callers = 32
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
		taken     int
	)

	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := m.CommitAppointment(ctx, domain.NewAppointment{
				BarberID: vlad, ClientName: "Client", Date: "2024-06-01", Time: "14:00",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case httperr.IsBusiness(err, httperr.CodeSlotTaken):
				taken++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if successes != 1 || taken != callers-1 {
		t.Errorf("successes = %d, slot_taken = %d; want 1 and %d", successes, taken, callers-1)
	}
}

func TestMemoryStoreAppointmentIsSnapshot(t *testing.T) {
	ctx := context.Background()
	m, centru := newSeededStore(t)
	vlad := barberID(t, m, centru, "Vlad")

	_ = m.UpsertClient(ctx, 1, "Ana")
	_ = m.SetClientPhone(ctx, 1, "+37360000000")
	c, _ := m.GetClient(ctx, 1)

	if _, err := m.CommitAppointment(ctx, domain.NewAppointment{
		BarberID: vlad, ClientName: c.Name, Phone: c.Phone, Date: "2024-06-01", Time: "11:00",
	}); err != nil {
		t.Fatalf("CommitAppointment: %v", err)
	}

	_ = m.UpsertClient(ctx, 1, "Ana Renamed")
	_ = m.SetClientPhone(ctx, 1, "+37361111111")

	apps, _ := m.ListAppointments(ctx, vlad, "2024-06-01")
	if apps[0].ClientName != "Ana" || apps[0].Phone != "+37360000000" {
		t.Errorf("appointment = %+v, want original name and phone", apps[0])
	}
}
