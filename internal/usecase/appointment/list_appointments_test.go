package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/infra/repository"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func seedAppointment(t *testing.T, store *repository.MemoryStore, id string, barberID uint, start time.Time, status string) {
	t.Helper()

	require.NoError(t, store.Save(context.Background(), &models.Appointment{
		ID:          id,
		BarberID:    barberID,
		StartTime:   start,
		EndTime:     start.Add(30 * time.Minute),
		DurationMin: 30,
		Status:      status,
	}))
}

func TestListByDate(t *testing.T) {
	store := repository.NewMemoryStore()
	uc := NewListAppointments(store)

	d := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	seedAppointment(t, store, "b", 1, d.Add(14*time.Hour), "pending")
	seedAppointment(t, store, "a", 1, d.Add(9*time.Hour), "confirmed")
	// Cancelado também aparece na listagem do painel.
	seedAppointment(t, store, "c", 1, d.Add(16*time.Hour), "cancelled")
	// Outro dia e outro barbeiro ficam de fora.
	seedAppointment(t, store, "d", 1, d.AddDate(0, 0, 1), "pending")
	seedAppointment(t, store, "e", 2, d.Add(10*time.Hour), "pending")

	items, err := uc.ByDate(context.Background(), 1, d)
	require.NoError(t, err)

	require.Len(t, items, 3)
	// Ordenado por início.
	require.Equal(t, "a", items[0].ID)
	require.Equal(t, "b", items[1].ID)
	require.Equal(t, "c", items[2].ID)
	require.Equal(t, 30, items[0].DurationMin)
}

func TestListByMonth(t *testing.T) {
	store := repository.NewMemoryStore()
	uc := NewListAppointments(store)

	seedAppointment(t, store, "mar1", 1, time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), "pending")
	seedAppointment(t, store, "mar31", 1, time.Date(2026, 3, 31, 23, 30, 0, 0, time.UTC), "pending")
	seedAppointment(t, store, "apr1", 1, time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC), "pending")

	items, err := uc.ByMonth(context.Background(), 1, 2026, 3)
	require.NoError(t, err)

	require.Len(t, items, 2)
	require.Equal(t, "mar1", items[0].ID)
	require.Equal(t, "mar31", items[1].ID)
}
