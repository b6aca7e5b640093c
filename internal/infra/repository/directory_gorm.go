package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barbershop-bot/internal/domain/appointment"
	"github.com/BruksfildServices01/barbershop-bot/internal/httperr"
	"github.com/BruksfildServices01/barbershop-bot/internal/models"
)

type DirectoryGormRepository struct {
	db *gorm.DB
}

func NewDirectoryGormRepository(db *gorm.DB) *DirectoryGormRepository {
	return &DirectoryGormRepository{db: db}
}

// --------------------------------------------------
// Locations / barbers
// --------------------------------------------------

func (r *DirectoryGormRepository) ListLocations(
	ctx context.Context,
) ([]models.Location, error) {

	var locs []models.Location
	if err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&locs).Error; err != nil {
		return nil, httperr.Storage("list locations", err)
	}
	return locs, nil
}

func (r *DirectoryGormRepository) ListBarbers(
	ctx context.Context,
	locationID uint,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("location_id = ?", locationID).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, httperr.Storage("list barbers", err)
	}
	return barbers, nil
}

func (r *DirectoryGormRepository) GetBarber(
	ctx context.Context,
	barberID uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, barberID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeBarberNotFound)
		}
		return nil, httperr.Storage("get barber", err)
	}
	return &barber, nil
}

// --------------------------------------------------
// Clients
// --------------------------------------------------

func (r *DirectoryGormRepository) UpsertClient(
	ctx context.Context,
	externalUserID int64,
	name string,
) error {

	client := models.Client{
		ExternalUserID: externalUserID,
		Name:           name,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"name", "updated_at"}),
		}).
		Create(&client).Error

	return httperr.Storage("upsert client", err)
}

func (r *DirectoryGormRepository) SetClientPhone(
	ctx context.Context,
	externalUserID int64,
	phone string,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("external_user_id = ?", externalUserID).
		Updates(map[string]any{
			"phone":      phone,
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return httperr.Storage("set client phone", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness(httperr.CodeClientNotFound)
	}
	return nil
}

func (r *DirectoryGormRepository) GetClient(
	ctx context.Context,
	externalUserID int64,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).
		Where("external_user_id = ?", externalUserID).
		First(&client).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness(httperr.CodeClientNotFound)
		}
		return nil, httperr.Storage("get client", err)
	}
	return &client, nil
}

// Compile-time check
var _ domain.DirectoryStore = (*DirectoryGormRepository)(nil)

// --------------------------------------------------
// Seed
// --------------------------------------------------

func (r *DirectoryGormRepository) EnsureLocation(
	ctx context.Context,
	name string,
) (uint, error) {

	loc := models.Location{Name: name}
	if err := r.db.WithContext(ctx).
		Where(models.Location{Name: name}).
		FirstOrCreate(&loc).Error; err != nil {
		return 0, httperr.Storage("ensure location", err)
	}
	return loc.ID, nil
}

func (r *DirectoryGormRepository) EnsureBarber(
	ctx context.Context,
	name string,
	locationID uint,
) error {

	barber := models.Barber{Name: name, LocationID: locationID}
	if err := r.db.WithContext(ctx).
		Where(models.Barber{Name: name, LocationID: locationID}).
		FirstOrCreate(&barber).Error; err != nil {
		return httperr.Storage("ensure barber", err)
	}
	return nil
}
