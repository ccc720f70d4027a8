package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func TestMemoryStoreGet(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	require.ErrorIs(t, err, domain.ErrAppointmentNotFound)

	ap := &models.Appointment{ID: "x", BarberID: 1, Status: "pending"}
	require.NoError(t, store.Save(ctx, ap))

	got, err := store.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "pending", got.Status)

	// Get devolve cópia: mutar o retorno não muda o store.
	got.Status = "confirmed"

	again, err := store.Get(ctx, "x")
	require.NoError(t, err)
	require.Equal(t, "pending", again.Status)
}

func TestMemoryStoreFindOverlapping(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	base := time.Date(2026, 3, 10, 10, 0, 0, 0, time.UTC)

	save := func(id string, start time.Time, status string) {
		require.NoError(t, store.Save(ctx, &models.Appointment{
			ID:        id,
			BarberID:  1,
			StartTime: start,
			EndTime:   start.Add(30 * time.Minute),
			Status:    status,
		}))
	}

	save("blocking", base, "confirmed")
	save("cancelled", base, "cancelled")
	save("completed", base, "completed")

	// Só pending/confirmed contam como ocupação.
	out, err := store.FindOverlapping(ctx, 1, base, base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "blocking", out[0].ID)

	// Bordas meio-abertas não cruzam.
	out, err = store.FindOverlapping(ctx, 1, base.Add(30*time.Minute), base.Add(time.Hour))
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = store.FindOverlapping(ctx, 1, base.Add(-time.Hour), base)
	require.NoError(t, err)
	require.Empty(t, out)
}
