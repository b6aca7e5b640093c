package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/dto"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

type ListAppointmentsByDate struct {
	repo      domain.AvailabilityStore
	directory domain.DirectoryStore
}

func NewListAppointmentsByDate(
	repo domain.AvailabilityStore,
	directory domain.DirectoryStore,
) *ListAppointmentsByDate {
	return &ListAppointmentsByDate{
		repo:      repo,
		directory: directory,
	}
}

func (uc *ListAppointmentsByDate) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	barber, err := uc.directory.GetBarber(ctx, barberID)
	if err != nil {
		return nil, err
	}

	appointments, err := uc.repo.ListAppointments(ctx, barberID, date)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:         ap.ID,
			BarberName: barber.Name,
			Date:       ap.Date,
			Time:       ap.Time,
			ClientName: ap.ClientName,
			Phone:      ap.Phone,
			CreatedAt:  ap.CreatedAt,
		})
	}

	return out, nil
}
