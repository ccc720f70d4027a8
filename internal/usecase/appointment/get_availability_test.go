package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// fakeWindows devolve a mesma janela 09:00 às 12:00 (UTC) para todo dia.
type fakeWindows struct {
	calls int
}

func (w *fakeWindows) GetWorkingWindows(ctx context.Context, barberID uint, date time.Time) ([]domain.Window, error) {
	w.calls++

	d := date.UTC()
	opens := time.Date(d.Year(), d.Month(), d.Day(), 9, 0, 0, 0, time.UTC)
	closes := time.Date(d.Year(), d.Month(), d.Day(), 12, 0, 0, 0, time.UTC)

	return []domain.Window{{Start: opens, End: closes}}, nil
}

type availabilityFixture struct {
	uc      *GetAvailability
	store   *repository.MemoryStore
	windows *fakeWindows
	cache   *cache.AvailabilityCache
	clock   *clock.Fixed
	dir     *fakeDirectory
}

func newAvailabilityFixture() *availabilityFixture {
	clk := clock.NewFixed(time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC))
	store := repository.NewMemoryStore()
	windows := &fakeWindows{}
	dir := newFakeDirectory()
	availCache := cache.New(5*time.Minute, clk, metrics.NewUnregistered())

	return &availabilityFixture{
		uc:      NewGetAvailability(store, dir, windows, availCache, clk, 30),
		store:   store,
		windows: windows,
		cache:   availCache,
		clock:   clk,
		dir:     dir,
	}
}

func availabilityInput(from, to time.Time) domain.AvailabilityInput {
	return domain.AvailabilityInput{
		BarbershopID: 1,
		BarberID:     1,
		ProductID:    1,
		RangeStart:   from,
		RangeEnd:     to,
	}
}

func TestAvailabilityComputesSlots(t *testing.T) {
	f := newAvailabilityFixture()
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	days, err := f.uc.Execute(context.Background(), availabilityInput(d, d))
	require.NoError(t, err)

	require.Len(t, days, 1)
	require.Equal(t, "2026-03-10", days[0].Date)
	// 09:00 até 11:30, passo de 30, serviço de 30 minutos.
	require.Len(t, days[0].Slots, 6)
}

func TestAvailabilityExcludesBlockingAppointments(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	busyStart := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)
	require.NoError(t, f.store.Save(ctx, &models.Appointment{
		ID:        "busy",
		BarberID:  1,
		StartTime: busyStart,
		EndTime:   busyStart.Add(30 * time.Minute),
		Status:    "confirmed",
	}))

	// Cancelado não ocupa horário.
	require.NoError(t, f.store.Save(ctx, &models.Appointment{
		ID:        "gone",
		BarberID:  1,
		StartTime: busyStart.Add(time.Hour),
		EndTime:   busyStart.Add(90 * time.Minute),
		Status:    "cancelled",
	}))

	days, err := f.uc.Execute(ctx, availabilityInput(d, d))
	require.NoError(t, err)

	require.Len(t, days[0].Slots, 5)
	for _, s := range days[0].Slots {
		require.NotEqual(t, busyStart, s.Start)
	}
}

func TestAvailabilityMultiDayRange(t *testing.T) {
	f := newAvailabilityFixture()
	from := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	days, err := f.uc.Execute(context.Background(), availabilityInput(from, to))
	require.NoError(t, err)

	require.Len(t, days, 3)
	require.Equal(t, "2026-03-10", days[0].Date)
	require.Equal(t, "2026-03-12", days[2].Date)
}

func TestAvailabilityServedFromCache(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	in := availabilityInput(d, d)

	first, err := f.uc.Execute(ctx, in)
	require.NoError(t, err)
	callsAfterFirst := f.windows.calls

	second, err := f.uc.Execute(ctx, in)
	require.NoError(t, err)

	require.Equal(t, first, second)
	// Nada recomputado no hit.
	require.Equal(t, callsAfterFirst, f.windows.calls)

	// Depois do TTL, recomputa.
	f.clock.Advance(6 * time.Minute)
	_, err = f.uc.Execute(ctx, in)
	require.NoError(t, err)
	require.Greater(t, f.windows.calls, callsAfterFirst)
}

func TestAvailabilityUnknownProduct(t *testing.T) {
	f := newAvailabilityFixture()
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	in := availabilityInput(d, d)
	in.ProductID = 99

	_, err := f.uc.Execute(context.Background(), in)
	require.True(t, domain.IsValidation(err, "product_not_found"))
}

func TestAvailabilityInactiveBarber(t *testing.T) {
	f := newAvailabilityFixture()
	f.dir.barber.Active = false
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	days, err := f.uc.Execute(context.Background(), availabilityInput(d, d))
	require.NoError(t, err)
	require.Empty(t, days)
}

func TestAvailabilityInvertedRange(t *testing.T) {
	f := newAvailabilityFixture()
	from := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	days, err := f.uc.Execute(context.Background(), availabilityInput(from, to))
	require.NoError(t, err)
	require.Empty(t, days)
}

// A duração do serviço participa da chave: produtos diferentes não
// compartilham resultado cacheado.
func TestAvailabilityCacheKeyIncludesDuration(t *testing.T) {
	f := newAvailabilityFixture()
	ctx := context.Background()
	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	_, err := f.uc.Execute(ctx, availabilityInput(d, d))
	require.NoError(t, err)

	f.dir.product.DurationMin = 60
	days, err := f.uc.Execute(ctx, availabilityInput(d, d))
	require.NoError(t, err)

	// Serviço de 60 minutos: último início possível é 11:00.
	require.Len(t, days[0].Slots, 5)
}
