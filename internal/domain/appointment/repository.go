package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

type NewAppointment struct {
	BarberID   uint
	ClientName string
	Phone      string
	Date       string
	Time       string
}

// AvailabilityStore é o único recurso mutável compartilhado entre conversas.
// CommitAppointment garante no máximo um sucesso por (barbeiro, data, hora).
type AvailabilityStore interface {
	FreeSlots(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]string, error)

	CommitAppointment(
		ctx context.Context,
		in NewAppointment,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		barberID uint,
		date string,
	) ([]models.Appointment, error)
}

type DirectoryStore interface {
	// -------- Locations / barbers --------
	ListLocations(ctx context.Context) ([]models.Location, error)

	ListBarbers(
		ctx context.Context,
		locationID uint,
	) ([]models.Barber, error)

	GetBarber(
		ctx context.Context,
		barberID uint,
	) (*models.Barber, error)

	// -------- Clients --------
	UpsertClient(
		ctx context.Context,
		externalUserID int64,
		name string,
	) error

	SetClientPhone(
		ctx context.Context,
		externalUserID int64,
		phone string,
	) error

	GetClient(
		ctx context.Context,
		externalUserID int64,
	) (*models.Client, error)
}
