package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

type AppointmentGormRepository struct {
	db      *gorm.DB
	catalog domain.SlotCatalog
}

func NewAppointmentGormRepository(
	db *gorm.DB,
	catalog domain.SlotCatalog,
) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db, catalog: catalog}
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) FreeSlots(
	ctx context.Context,
	barberID uint,
	date string,
) ([]string, error) {

	var booked []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("barber_id = ? AND date = ?", barberID, date).
		Pluck("time", &booked).Error; err != nil {
		return nil, httperr.Storage("free slots", err)
	}

	return r.catalog.Free(booked), nil
}

// --------------------------------------------------
// Appointment (commit)
// --------------------------------------------------

// CommitAppointment verifica e insere dentro de uma transação com lock de
// linha; o índice idx_appointment_slot rejeita o segundo escritor quando
// não há linha para travar.
func (r *AppointmentGormRepository) CommitAppointment(
	ctx context.Context,
	in domain.NewAppointment,
) (*models.Appointment, error) {

	in, err := in.Validate(r.catalog)
	if err != nil {
		return nil, err
	}

	var created models.Appointment

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var barber models.Barber
		if err := tx.First(&barber, in.BarberID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrBusiness(httperr.CodeBarberNotFound)
			}
			return err
		}

		var conflicts []models.Appointment
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"barber_id = ? AND date = ? AND time = ?",
				in.BarberID, in.Date, in.Time,
			).
			Limit(1).
			Find(&conflicts).Error; err != nil {
			return err
		}

		if len(conflicts) > 0 {
			return httperr.ErrBusiness(httperr.CodeSlotTaken)
		}

		ap := models.Appointment{
			BarberID:   in.BarberID,
			ClientName: in.ClientName,
			Phone:      in.Phone,
			Date:       in.Date,
			Time:       in.Time,
		}

		if err := tx.Create(&ap).Error; err != nil {
			return err
		}

		created = ap
		return nil
	})

	if err != nil {
		var be httperr.BusinessError
		switch {
		case errors.As(err, &be):
			return nil, err
		case httperr.IsUniqueViolation(err):
			return nil, httperr.ErrBusiness(httperr.CodeSlotTaken)
		default:
			return nil, httperr.Storage("commit appointment", err)
		}
	}

	return &created, nil
}

func (r *AppointmentGormRepository) ListAppointments(
	ctx context.Context,
	barberID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Where("barber_id = ? AND date = ?", barberID, date).
		Order("time ASC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Storage("list appointments", err)
	}

	return apps, nil
}

// Compile-time check
var _ domain.AvailabilityStore = (*AppointmentGormRepository)(nil)
