package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// GormWindowProvider converte as linhas de working hours (dia da semana,
// expediente e pausa de almoço) nas janelas [start,end) que a calculadora
// consome. Dia inativo ou sem expediente produz zero janelas.
type GormWindowProvider struct {
	db *gorm.DB
}

func NewGormWindowProvider(db *gorm.DB) *GormWindowProvider {
	return &GormWindowProvider{db: db}
}

func (p *GormWindowProvider) GetWorkingWindows(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]domain.Window, error) {

	weekday := int(date.UTC().Weekday())

	var wh models.WorkingHours
	if err := p.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return WindowsFromWorkingHours(&wh, date), nil
}

// WindowsFromWorkingHours monta as janelas do dia: uma única janela de
// expediente, ou duas quando há pausa de almoço.
func WindowsFromWorkingHours(wh *models.WorkingHours, date time.Time) []domain.Window {
	if wh == nil || !wh.Active || wh.StartTime == "" || wh.EndTime == "" {
		return nil
	}

	dayStart, ok1 := atTime(date, wh.StartTime)
	dayEnd, ok2 := atTime(date, wh.EndTime)
	if !ok1 || !ok2 || !dayEnd.After(dayStart) {
		return nil
	}

	if wh.LunchStart == "" || wh.LunchEnd == "" {
		return []domain.Window{{Start: dayStart, End: dayEnd}}
	}

	lunchStart, ok1 := atTime(date, wh.LunchStart)
	lunchEnd, ok2 := atTime(date, wh.LunchEnd)
	if !ok1 || !ok2 || !lunchEnd.After(lunchStart) {
		return []domain.Window{{Start: dayStart, End: dayEnd}}
	}

	var windows []domain.Window
	if lunchStart.After(dayStart) {
		windows = append(windows, domain.Window{Start: dayStart, End: lunchStart})
	}
	if dayEnd.After(lunchEnd) {
		windows = append(windows, domain.Window{Start: lunchEnd, End: dayEnd})
	}
	return windows
}

func atTime(date time.Time, hm string) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}

	date = date.UTC()
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		time.UTC,
	), true
}

// Compile-time check
var _ domain.WindowProvider = (*GormWindowProvider)(nil)
