package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// AppointmentGormStore implementa domain.Store sobre Postgres.
// A consulta de overlap usa o índice composto (barber_id, start_time)
// e trava as linhas com FOR UPDATE enquanto o lock por barbeiro do
// coordinator segura a seção crítica.
type AppointmentGormStore struct {
	db *gorm.DB
}

func NewAppointmentGormStore(db *gorm.DB) *AppointmentGormStore {
	return &AppointmentGormStore{db: db}
}

func (r *AppointmentGormStore) FindOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(
			"barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID,
			[]string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			end,
			start,
		).
		Order("start_time ASC").
		Find(&aps).Error; err != nil {
		return nil, err
	}

	return aps, nil
}

func (r *AppointmentGormStore) Save(
	ctx context.Context,
	ap *models.Appointment,
) error {
	return r.db.WithContext(ctx).Save(ap).Error
}

func (r *AppointmentGormStore) Get(
	ctx context.Context,
	id string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&ap).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrAppointmentNotFound
		}
		return nil, err
	}

	return &ap, nil
}

func (r *AppointmentGormStore) ListForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	var aps []models.Appointment

	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("BarberProduct").
		Where(
			"barber_id = ? AND start_time >= ? AND start_time < ?",
			barberID,
			start,
			end,
		).
		Order("start_time ASC").
		Find(&aps).Error

	if err != nil {
		return nil, err
	}

	return aps, nil
}

// Compile-time check
var _ domain.Store = (*AppointmentGormStore)(nil)
