package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
)

// ======================================================
// GET AVAILABILITY (cache-backed)
// ======================================================

type GetAvailability struct {
	store   domain.Store
	dir     domain.Directory
	windows domain.WindowProvider
	cache   *cache.AvailabilityCache
	clock   clock.Clock

	// Granularidade dos slots (ex.: 15 ou 30 minutos).
	step time.Duration
}

func NewGetAvailability(
	store domain.Store,
	dir domain.Directory,
	windows domain.WindowProvider,
	availCache *cache.AvailabilityCache,
	clk clock.Clock,
	stepMinutes int,
) *GetAvailability {
	if stepMinutes <= 0 {
		stepMinutes = 30
	}

	return &GetAvailability{
		store:   store,
		dir:     dir,
		windows: windows,
		cache:   availCache,
		clock:   clk,
		step:    time.Duration(stepMinutes) * time.Minute,
	}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.DayAvailability, error) {

	product, err := uc.dir.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, domain.ErrValidation("product_not_found")
	}

	barber, err := uc.dir.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, domain.ErrValidation("barber_not_found")
	}

	// Barbeiro inativo não é erro: simplesmente não tem agenda.
	if !barber.Active {
		return []domain.DayAvailability{}, nil
	}

	// Range invertido produz resultado vazio, não erro. A consulta de
	// disponibilidade é deliberadamente permissiva; a duração tampouco é
	// validada aqui, só na criação.
	days := domain.DaysInRange(in.RangeStart, in.RangeEnd)
	if len(days) == 0 {
		return []domain.DayAvailability{}, nil
	}

	key := cache.Key{
		BarberID:    in.BarberID,
		RangeStart:  days[0].Format("2006-01-02"),
		RangeEnd:    days[len(days)-1].Format("2006-01-02"),
		DurationMin: product.DurationMin,
	}

	if cached, ok := uc.cache.Get(key); ok {
		return cached, nil
	}

	result, err := uc.compute(ctx, in.BarberID, days, product.DurationMin)
	if err != nil {
		return nil, err
	}

	uc.cache.Set(key, result)
	return result, nil
}

func (uc *GetAvailability) compute(
	ctx context.Context,
	barberID uint,
	days []time.Time,
	durationMin int,
) ([]domain.DayAvailability, error) {

	dayWindows := make([]domain.DayWindows, 0, len(days))
	for _, day := range days {
		windows, err := uc.windows.GetWorkingWindows(ctx, barberID, day)
		if err != nil {
			return nil, err
		}
		dayWindows = append(dayWindows, domain.DayWindows{
			Date:    day,
			Windows: windows,
		})
	}

	rangeStart := days[0]
	rangeEnd := days[len(days)-1].AddDate(0, 0, 1)

	existing, err := uc.store.FindOverlapping(ctx, barberID, rangeStart, rangeEnd)
	if err != nil {
		return nil, domain.StorageError{Err: err}
	}

	busy := make([]domain.Window, 0, len(existing))
	for _, ap := range existing {
		busy = append(busy, domain.Window{Start: ap.StartTime, End: ap.EndTime})
	}

	return domain.ComputeAvailability(dayWindows, busy, durationMin, uc.step), nil
}
