package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

type GetAvailability struct {
	slots     domain.AvailabilityStore
	directory domain.DirectoryStore
}

func NewGetAvailability(
	slots domain.AvailabilityStore,
	directory domain.DirectoryStore,
) *GetAvailability {
	return &GetAvailability{slots: slots, directory: directory}
}

// Execute devolve os horários livres do barbeiro na data, em ordem do
// catálogo.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	if _, err := time.Parse(domain.DateLayout, date); err != nil {
		return nil, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	if _, err := uc.directory.GetBarber(ctx, barberID); err != nil {
		return nil, err
	}

	return uc.slots.FreeSlots(ctx, barberID, date)
}
