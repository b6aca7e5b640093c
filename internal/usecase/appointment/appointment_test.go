package appointment

import (
	"context"
	"reflect"
	"sync"
	"testing"

	"github.com/BruksfildServices01/barbershop-bot/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/infra/repository"
)

type mockSink struct {
	mu      sync.Mutex
	actions []string
}

func (m *mockSink) Log(_ context.Context, ev audit.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions = append(m.actions, ev.Action)
	return nil
}

func setup(t *testing.T) (*repository.MemoryStore, uint) {
	t.Helper()
	ctx := context.Background()

	store := repository.NewMemoryStore(domain.SlotCatalog{"10:00", "11:00", "12:00"})
	loc, _ := store.EnsureLocation(ctx, "Centru")
	if err := store.EnsureBarber(ctx, "Vlad", loc); err != nil {
		t.Fatalf("EnsureBarber: %v", err)
	}
	barbers, _ := store.ListBarbers(ctx, loc)
	return store, barbers[0].ID
}

func TestCreateAppointmentAudits(t *testing.T) {
	ctx := context.Background()
	store, vlad := setup(t)

	sink := &mockSink{}
	dispatcher := audit.NewDispatcher(sink)
	uc := NewCreateAppointment(store, dispatcher)

	in := CreateAppointmentInput{UserID: 1, BarberID: vlad, ClientName: "Ana", Date: "2024-06-01", Time: "11:00"}

	ap, err := uc.Execute(ctx, in)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if ap.BarberID != vlad || ap.Time != "11:00" {
		t.Errorf("appointment = %+v", ap)
	}

	in.UserID = 2
	in.ClientName = "Ion"
	if _, err := uc.Execute(ctx, in); !httperr.IsBusiness(err, httperr.CodeSlotTaken) {
		t.Errorf("second Execute error = %v, want slot_taken", err)
	}

	dispatcher.Close()

	want := []string{audit.ActionAppointmentCreated, audit.ActionAppointmentConflict}
	if !reflect.DeepEqual(sink.actions, want) {
		t.Errorf("audit actions = %v, want %v", sink.actions, want)
	}
}

func TestGetAvailability(t *testing.T) {
	ctx := context.Background()
	store, vlad := setup(t)

	dispatcher := audit.NewDispatcher()
	defer dispatcher.Close()
	_, _ = NewCreateAppointment(store, dispatcher).Execute(ctx, CreateAppointmentInput{
		UserID: 1, BarberID: vlad, ClientName: "Ana", Date: "2024-06-01", Time: "10:00",
	})

	uc := NewGetAvailability(store, store)

	tests := []struct {
		name     string
		barber   uint
		date     string
		want     []string
		wantCode string
	}{
		{"booked day", vlad, "2024-06-01", []string{"11:00", "12:00"}, ""},
		{"free day", vlad, "2024-06-02", []string{"10:00", "11:00", "12:00"}, ""},
		{"bad date", vlad, "june", nil, httperr.CodeInvalidDateOrTime},
		{"unknown barber", 99, "2024-06-01", nil, httperr.CodeBarberNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uc.Execute(ctx, tt.barber, tt.date)
			if tt.wantCode != "" {
				if !httperr.IsBusiness(err, tt.wantCode) {
					t.Errorf("Execute() error = %v, want %s", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Execute() error = %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Execute() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestListAppointmentsByDate(t *testing.T) {
	ctx := context.Background()
	store, vlad := setup(t)

	dispatcher := audit.NewDispatcher()
	defer dispatcher.Close()
	create := NewCreateAppointment(store, dispatcher)
	for _, hm := range []string{"12:00", "10:00"} {
		if _, err := create.Execute(ctx, CreateAppointmentInput{
			UserID: 1, BarberID: vlad, ClientName: "Ana", Phone: "+37360000000", Date: "2024-06-01", Time: hm,
		}); err != nil {
			t.Fatalf("create %s: %v", hm, err)
		}
	}

	out, err := NewListAppointmentsByDate(store, store).Execute(ctx, vlad, "2024-06-01")
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if len(out) != 2 || out[0].Time != "10:00" || out[1].Time != "12:00" {
		t.Fatalf("Execute() = %+v, want 10:00 then 12:00", out)
	}
	if out[0].BarberName != "Vlad" || out[0].Phone != "+37360000000" {
		t.Errorf("row = %+v, want barber Vlad and phone", out[0])
	}
}
