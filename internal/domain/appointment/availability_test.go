package appointment

import (
	"reflect"
	"testing"

	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

var testCatalog = SlotCatalog{"10:00", "11:00", "12:00", "13:00", "14:00"}

func TestNewSlotCatalog(t *testing.T) {
	tests := []struct {
		name    string
		values  []string
		want    SlotCatalog
		wantErr bool
	}{
		{"hourly", []string{"10:00", "11:00"}, SlotCatalog{"10:00", "11:00"}, false},
		{"normalizes single digit hour", []string{"9:00", "10:30"}, SlotCatalog{"09:00", "10:30"}, false},
		{"empty", nil, nil, true},
		{"malformed", []string{"10h"}, nil, true},
		{"out of order", []string{"11:00", "10:00"}, nil, true},
		{"duplicate", []string{"10:00", "10:00"}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewSlotCatalog(tt.values)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewSlotCatalog(%v) error = %v, wantErr %v", tt.values, err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewSlotCatalog(%v) = %v, want %v", tt.values, got, tt.want)
			}
		})
	}
}

func TestSlotCatalogFree(t *testing.T) {
	tests := []struct {
		name   string
		booked []string
		want   []string
	}{
		{"nothing booked", nil, []string{"10:00", "11:00", "12:00", "13:00", "14:00"}},
		{"keeps catalog order", []string{"13:00", "10:00"}, []string{"11:00", "12:00", "14:00"}},
		{"ignores unknown times", []string{"09:00"}, []string{"10:00", "11:00", "12:00", "13:00", "14:00"}},
		{"fully booked", []string{"10:00", "11:00", "12:00", "13:00", "14:00"}, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := testCatalog.Free(tt.booked)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Free(%v) = %v, want %v", tt.booked, got, tt.want)
			}
		})
	}
}

func TestNewAppointmentValidate(t *testing.T) {
	tests := []struct {
		name     string
		in       NewAppointment
		wantCode string
	}{
		{"valid", NewAppointment{BarberID: 1, ClientName: " Ana ", Date: "2024-06-01", Time: "14:00"}, ""},
		{"missing barber", NewAppointment{ClientName: "Ana", Date: "2024-06-01", Time: "14:00"}, httperr.CodeInvalidInput},
		{"blank name", NewAppointment{BarberID: 1, ClientName: "  ", Date: "2024-06-01", Time: "14:00"}, httperr.CodeInvalidInput},
		{"bad date", NewAppointment{BarberID: 1, ClientName: "Ana", Date: "01.06.2024", Time: "14:00"}, httperr.CodeInvalidDateOrTime},
		{"time outside catalog", NewAppointment{BarberID: 1, ClientName: "Ana", Date: "2024-06-01", Time: "14:30"}, httperr.CodeInvalidDateOrTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.Validate(testCatalog)
			if tt.wantCode == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				if got.ClientName != "Ana" {
					t.Errorf("ClientName = %q, want trimmed %q", got.ClientName, "Ana")
				}
				return
			}
			if !httperr.IsBusiness(err, tt.wantCode) {
				t.Errorf("Validate() error = %v, want %s", err, tt.wantCode)
			}
		})
	}
}
