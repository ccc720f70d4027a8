package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/dto"
)

// ======================================================
// LISTAGENS DO PAINEL
// ======================================================

type ListAppointments struct {
	store domain.Store
}

func NewListAppointments(store domain.Store) *ListAppointments {
	return &ListAppointments{store: store}
}

func (uc *ListAppointments) ByDate(
	ctx context.Context,
	barberID uint,
	date time.Time,
) ([]dto.AppointmentListDTO, error) {

	date = date.UTC()
	start := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	return uc.list(ctx, barberID, start, end)
}

func (uc *ListAppointments) ByMonth(
	ctx context.Context,
	barberID uint,
	year int,
	month int,
) ([]dto.AppointmentListDTO, error) {

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	return uc.list(ctx, barberID, start, end)
}

func (uc *ListAppointments) list(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]dto.AppointmentListDTO, error) {

	appointments, err := uc.store.ListForPeriod(ctx, barberID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.AppointmentListDTO, 0, len(appointments))
	for _, ap := range appointments {
		out = append(out, dto.AppointmentListDTO{
			ID:          ap.ID,
			StartTime:   ap.StartTime,
			EndTime:     ap.EndTime,
			DurationMin: ap.DurationMin,
			Status:      ap.Status,
			ClientName:  ap.Client.Name,
			ProductName: ap.BarberProduct.Name,
		})
	}

	return out, nil
}
