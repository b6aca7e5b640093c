package booking

import (
	"context"
	"slices"

	"github.com/BruksfildServices01/barbershop-bot/internal/audit"
	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/logger"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
	ucAppointment "github.com/BruksfildServices01/barbershop-bot/internal/usecase/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/validators"
)

// ======================================================
// BOOKING STEPS
// ======================================================

func (f *Flow) beginBooking(ctx context.Context, in Inbound) ([]Reply, error) {
	locs, err := f.directory.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	if len(locs) == 0 {
		if err := f.states.Clear(ctx, in.UserID); err != nil {
			return nil, err
		}
		return []Reply{notice(MsgNoLocations)}, nil
	}

	st, err := f.advance(ctx, in.UserID, domain.State{
		Step: domain.StepChoosingLocation,
	})
	if err != nil {
		return nil, err
	}

	return []Reply{locationMenu(st.MenuID, locs)}, nil
}

func (f *Flow) chooseLocation(
	ctx context.Context,
	in Inbound,
	st domain.State,
	locationID uint,
) ([]Reply, error) {

	locs, err := f.directory.ListLocations(ctx)
	if err != nil {
		return nil, err
	}

	if !slices.ContainsFunc(locs, func(l models.Location) bool { return l.ID == locationID }) {
		return []Reply{notice(MsgStaleMenu)}, nil
	}

	barbers, err := f.directory.ListBarbers(ctx, locationID)
	if err != nil {
		return nil, err
	}

	// local sem barbeiros: continua escolhendo local
	if len(barbers) == 0 {
		return []Reply{notice(MsgNoBarbers), locationMenu(st.MenuID, locs)}, nil
	}

	next, err := f.advance(ctx, in.UserID, domain.State{
		Step:       domain.StepChoosingBarber,
		LocationID: locationID,
	})
	if err != nil {
		return nil, err
	}

	return []Reply{barberMenu(next.MenuID, barbers)}, nil
}

func (f *Flow) chooseBarber(
	ctx context.Context,
	in Inbound,
	st domain.State,
	barberID uint,
) ([]Reply, error) {

	barbers, err := f.directory.ListBarbers(ctx, st.LocationID)
	if err != nil {
		return nil, err
	}

	if !slices.ContainsFunc(barbers, func(b models.Barber) bool { return b.ID == barberID }) {
		return []Reply{notice(MsgStaleMenu)}, nil
	}

	next, err := f.advance(ctx, in.UserID, domain.State{
		Step:       domain.StepChoosingDay,
		LocationID: st.LocationID,
		BarberID:   barberID,
	})
	if err != nil {
		return nil, err
	}

	return []Reply{dayMenu(next.MenuID, domain.DayWindow(f.now()))}, nil
}

func (f *Flow) chooseDay(
	ctx context.Context,
	in Inbound,
	st domain.State,
	date string,
) ([]Reply, error) {

	days := domain.DayWindow(f.now())

	if !domain.InDayWindow(f.now(), date) {
		return []Reply{notice(MsgDayExpired), dayMenu(st.MenuID, days)}, nil
	}

	free, err := f.slots.FreeSlots(ctx, st.BarberID, date)
	if err != nil {
		return nil, err
	}

	if len(free) == 0 {
		return []Reply{notice(MsgNoSlots), dayMenu(st.MenuID, days)}, nil
	}

	st.Step = domain.StepChoosingTime
	st.Date = date
	st.Time = ""
	st, err = f.advance(ctx, in.UserID, st)
	if err != nil {
		return nil, err
	}

	return []Reply{timeMenu(st.MenuID, date, free)}, nil
}

func (f *Flow) chooseTime(
	ctx context.Context,
	in Inbound,
	st domain.State,
	hm string,
) ([]Reply, error) {

	if !domain.InDayWindow(f.now(), st.Date) {
		return f.backToDays(ctx, in, st, MsgDayExpired)
	}

	free, err := f.slots.FreeSlots(ctx, st.BarberID, st.Date)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(free, hm) {
		return f.slotLost(ctx, in, st, free)
	}

	barber, err := f.directory.GetBarber(ctx, st.BarberID)
	if err != nil {
		return nil, err
	}

	name, phone, err := f.clientSnapshot(ctx, in)
	if err != nil {
		return nil, err
	}

	st.Step = domain.StepConfirming
	st.Time = hm
	st, err = f.advance(ctx, in.UserID, st)
	if err != nil {
		return nil, err
	}

	return []Reply{confirmMenu(st.MenuID, barber.Name, st.Date, hm, name, phone)}, nil
}

func (f *Flow) confirm(ctx context.Context, in Inbound, st domain.State) ([]Reply, error) {
	if !domain.InDayWindow(f.now(), st.Date) {
		return f.backToDays(ctx, in, st, MsgDayExpired)
	}

	free, err := f.slots.FreeSlots(ctx, st.BarberID, st.Date)
	if err != nil {
		return nil, err
	}

	if !slices.Contains(free, st.Time) {
		return f.slotLost(ctx, in, st, free)
	}

	name, phone, err := f.clientSnapshot(ctx, in)
	if err != nil {
		return nil, err
	}

	ap, err := f.create.Execute(ctx, ucAppointment.CreateAppointmentInput{
		UserID:     in.UserID,
		BarberID:   st.BarberID,
		ClientName: name,
		Phone:      phone,
		Date:       st.Date,
		Time:       st.Time,
	})
	if err != nil {
		if !httperr.IsBusiness(err, httperr.CodeSlotTaken) {
			return nil, err
		}

		// perdeu a corrida entre a releitura e o commit
		logger.WarnContext(ctx, "slot taken at commit",
			"barber_id", st.BarberID,
			"date", st.Date,
			"time", st.Time,
		)

		free, err := f.slots.FreeSlots(ctx, st.BarberID, st.Date)
		if err != nil {
			return nil, err
		}
		return f.slotLost(ctx, in, st, free)
	}

	if err := f.states.Clear(ctx, in.UserID); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "appointment booked",
		"appointment_id", ap.ID,
		"barber_id", ap.BarberID,
		"date", ap.Date,
		"time", ap.Time,
	)

	return []Reply{notice(bookedMessage(ap.Date, ap.Time))}, nil
}

// slotLost volta para a escolha de hora com a lista atualizada, ou para a
// escolha de dia se não sobrou nenhum horário.
func (f *Flow) slotLost(
	ctx context.Context,
	in Inbound,
	st domain.State,
	free []string,
) ([]Reply, error) {

	if len(free) == 0 {
		return f.backToDays(ctx, in, st, MsgNoSlots)
	}

	st.Step = domain.StepChoosingTime
	st.Time = ""
	st, err := f.advance(ctx, in.UserID, st)
	if err != nil {
		return nil, err
	}

	return []Reply{notice(MsgSlotJustTaken), timeMenu(st.MenuID, st.Date, free)}, nil
}

func (f *Flow) backToDays(
	ctx context.Context,
	in Inbound,
	st domain.State,
	msg string,
) ([]Reply, error) {

	st.Step = domain.StepChoosingDay
	st.Date = ""
	st.Time = ""
	st, err := f.advance(ctx, in.UserID, st)
	if err != nil {
		return nil, err
	}

	return []Reply{notice(msg), dayMenu(st.MenuID, domain.DayWindow(f.now()))}, nil
}

// advance grava o próximo passo com um MenuID novo; opções de menus
// anteriores deixam de valer.
func (f *Flow) advance(ctx context.Context, userID int64, st domain.State) (domain.State, error) {
	st.MenuID = domain.NewMenuID()
	if err := f.states.Set(ctx, userID, st); err != nil {
		return domain.State{}, err
	}
	return st, nil
}

// clientSnapshot lê nome e telefone atuais do cliente. Cliente ainda não
// registrado usa o nome exibido e telefone vazio.
func (f *Flow) clientSnapshot(ctx context.Context, in Inbound) (string, string, error) {
	c, err := f.directory.GetClient(ctx, in.UserID)
	if err != nil {
		if httperr.IsBusiness(err, httperr.CodeClientNotFound) {
			return displayName(in), "", nil
		}
		return "", "", err
	}

	name := c.Name
	if name == "" {
		name = displayName(in)
	}
	return name, c.Phone, nil
}

// ======================================================
// PHONE
// ======================================================

func (f *Flow) askPhone(ctx context.Context, in Inbound) ([]Reply, error) {
	if err := f.states.Set(ctx, in.UserID, domain.State{
		Step: domain.StepAwaitingPhone,
	}); err != nil {
		return nil, err
	}
	return []Reply{notice(MsgAskPhone)}, nil
}

func (f *Flow) capturePhone(ctx context.Context, in Inbound, text string) ([]Reply, error) {
	if !validators.IsPhoneValid(text) {
		return []Reply{notice(MsgInvalidPhone)}, nil
	}

	phone := validators.NormalizePhone(text)

	err := f.directory.SetClientPhone(ctx, in.UserID, phone)
	if httperr.IsBusiness(err, httperr.CodeClientNotFound) {
		// conversa começou antes do /start: registra e tenta de novo
		if err := f.directory.UpsertClient(ctx, in.UserID, displayName(in)); err != nil {
			return nil, err
		}
		err = f.directory.SetClientPhone(ctx, in.UserID, phone)
	}
	if err != nil {
		return nil, err
	}

	if err := f.states.Clear(ctx, in.UserID); err != nil {
		return nil, err
	}

	f.audit.Dispatch(audit.Event{
		UserID: &in.UserID,
		Action: audit.ActionClientPhoneUpdated,
		Entity: "client",
	})

	return []Reply{notice(MsgPhoneSaved)}, nil
}
