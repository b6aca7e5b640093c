package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
)

// Validate normaliza e valida a entrada antes do commit.
func (in NewAppointment) Validate(catalog SlotCatalog) (NewAppointment, error) {
	in.ClientName = strings.TrimSpace(in.ClientName)
	in.Phone = strings.TrimSpace(in.Phone)

	if in.BarberID == 0 || in.ClientName == "" {
		return in, httperr.ErrBusiness(httperr.CodeInvalidInput)
	}

	if _, err := time.Parse(DateLayout, in.Date); err != nil {
		return in, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	if !catalog.Contains(in.Time) {
		return in, httperr.ErrBusiness(httperr.CodeInvalidDateOrTime)
	}

	return in, nil
}
