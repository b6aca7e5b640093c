package appointment

import (
	"context"

	"github.com/BruksfildServices01/barbershop-bot/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	UserID int64

	BarberID   uint
	ClientName string
	Phone      string

	Date string
	Time string
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo  domain.AvailabilityStore
	audit *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.AvailabilityStore,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:  repo,
		audit: audit,
	}
}

// Execute grava o agendamento. slot_taken não é fatal: quem chama deve
// recarregar os horários livres e pedir outra escolha.
func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	ap, err := uc.repo.CommitAppointment(ctx, domain.NewAppointment{
		BarberID:   in.BarberID,
		ClientName: in.ClientName,
		Phone:      in.Phone,
		Date:       in.Date,
		Time:       in.Time,
	})

	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			uc.audit.Dispatch(audit.Event{
				UserID: &in.UserID,
				Action: audit.ActionAppointmentConflict,
				Entity: "appointment",
				Metadata: map[string]any{
					"barber_id": in.BarberID,
					"date":      in.Date,
					"time":      in.Time,
				},
			})
		}
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]any{
			"barber_id": ap.BarberID,
			"date":      ap.Date,
			"time":      ap.Time,
		},
	})

	return ap, nil
}
