package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(base time.Time, hour, min int) time.Time {
	return time.Date(base.Year(), base.Month(), base.Day(), hour, min, 0, 0, time.UTC)
}

func TestWindowOverlaps(t *testing.T) {
	d := day(2026, 3, 10)
	w := Window{Start: at(d, 9, 0), End: at(d, 10, 0)}

	// Intervalos meio-abertos: encostar na borda não é overlap.
	require.False(t, w.Overlaps(at(d, 10, 0), at(d, 11, 0)))
	require.False(t, w.Overlaps(at(d, 8, 0), at(d, 9, 0)))

	require.True(t, w.Overlaps(at(d, 9, 30), at(d, 10, 30)))
	require.True(t, w.Overlaps(at(d, 8, 30), at(d, 9, 30)))
	require.True(t, w.Overlaps(at(d, 8, 0), at(d, 11, 0)))
	require.True(t, w.Overlaps(at(d, 9, 15), at(d, 9, 45)))
}

func TestComputeAvailabilitySingleWindow(t *testing.T) {
	d := day(2026, 3, 10)
	days := []DayWindows{{
		Date:    d,
		Windows: []Window{{Start: at(d, 9, 0), End: at(d, 11, 0)}},
	}}

	out := ComputeAvailability(days, nil, 30, 30*time.Minute)

	require.Len(t, out, 1)
	require.Equal(t, "2026-03-10", out[0].Date)

	// 9:00, 9:30, 10:00, 10:30. Um slot começando 11:00 não cabe.
	require.Len(t, out[0].Slots, 4)
	require.Equal(t, at(d, 9, 0), out[0].Slots[0].Start)
	require.Equal(t, at(d, 10, 30), out[0].Slots[3].Start)
	require.Equal(t, at(d, 11, 0), out[0].Slots[3].End)
}

func TestComputeAvailabilitySkipsBusy(t *testing.T) {
	d := day(2026, 3, 10)
	days := []DayWindows{{
		Date:    d,
		Windows: []Window{{Start: at(d, 9, 0), End: at(d, 12, 0)}},
	}}

	busy := []Window{{Start: at(d, 10, 0), End: at(d, 10, 30)}}

	out := ComputeAvailability(days, busy, 30, 30*time.Minute)

	starts := make([]time.Time, 0, len(out[0].Slots))
	for _, s := range out[0].Slots {
		starts = append(starts, s.Start)
	}

	require.Equal(t, []time.Time{
		at(d, 9, 0),
		at(d, 9, 30),
		// 10:00 ocupado
		at(d, 10, 30),
		at(d, 11, 0),
		at(d, 11, 30),
	}, starts)
}

// Um serviço longo não cabe nos buracos entre ocupados, mesmo que o
// passo caiba.
func TestComputeAvailabilityLongDuration(t *testing.T) {
	d := day(2026, 3, 10)
	days := []DayWindows{{
		Date:    d,
		Windows: []Window{{Start: at(d, 9, 0), End: at(d, 12, 0)}},
	}}

	busy := []Window{{Start: at(d, 10, 0), End: at(d, 10, 30)}}

	out := ComputeAvailability(days, busy, 90, 30*time.Minute)

	starts := make([]time.Time, 0, len(out[0].Slots))
	for _, s := range out[0].Slots {
		starts = append(starts, s.Start)
	}

	require.Equal(t, []time.Time{at(d, 10, 30)}, starts)
}

func TestComputeAvailabilityLunchSplit(t *testing.T) {
	d := day(2026, 3, 10)
	days := []DayWindows{{
		Date: d,
		Windows: []Window{
			{Start: at(d, 9, 0), End: at(d, 12, 0)},
			{Start: at(d, 13, 0), End: at(d, 15, 0)},
		},
	}}

	out := ComputeAvailability(days, nil, 60, 60*time.Minute)

	starts := make([]time.Time, 0, len(out[0].Slots))
	for _, s := range out[0].Slots {
		starts = append(starts, s.Start)
	}

	require.Equal(t, []time.Time{
		at(d, 9, 0),
		at(d, 10, 0),
		at(d, 11, 0),
		at(d, 13, 0),
		at(d, 14, 0),
	}, starts)
}

func TestComputeAvailabilityEmptyCases(t *testing.T) {
	d := day(2026, 3, 10)

	// Dia sem janelas: presente no resultado, com zero slots.
	out := ComputeAvailability([]DayWindows{{Date: d}}, nil, 30, 30*time.Minute)
	require.Len(t, out, 1)
	require.Empty(t, out[0].Slots)

	// Duração não positiva.
	withWindow := []DayWindows{{
		Date:    d,
		Windows: []Window{{Start: at(d, 9, 0), End: at(d, 18, 0)}},
	}}
	out = ComputeAvailability(withWindow, nil, 0, 30*time.Minute)
	require.Empty(t, out[0].Slots)

	// Duração maior que a janela inteira.
	out = ComputeAvailability(withWindow, nil, 10*60, 30*time.Minute)
	require.Empty(t, out[0].Slots)
}

func TestComputeAvailabilityDeterministic(t *testing.T) {
	d := day(2026, 3, 10)
	days := []DayWindows{{
		Date: d,
		// Janelas fora de ordem de propósito.
		Windows: []Window{
			{Start: at(d, 13, 0), End: at(d, 15, 0)},
			{Start: at(d, 9, 0), End: at(d, 12, 0)},
		},
	}}
	busy := []Window{{Start: at(d, 9, 30), End: at(d, 10, 0)}}

	first := ComputeAvailability(days, busy, 30, 30*time.Minute)
	for i := 0; i < 50; i++ {
		require.Equal(t, first, ComputeAvailability(days, busy, 30, 30*time.Minute))
	}

	// Slots em ordem ascendente dentro do dia.
	slots := first[0].Slots
	for i := 1; i < len(slots); i++ {
		require.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestDaysInRange(t *testing.T) {
	days := DaysInRange(day(2026, 3, 10), day(2026, 3, 12))
	require.Len(t, days, 3)
	require.Equal(t, day(2026, 3, 10), days[0])
	require.Equal(t, day(2026, 3, 12), days[2])

	// Um único dia.
	days = DaysInRange(day(2026, 3, 10), day(2026, 3, 10))
	require.Len(t, days, 1)

	// Horários dentro do dia são truncados.
	days = DaysInRange(
		time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC),
		time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
	)
	require.Equal(t, []time.Time{day(2026, 3, 10), day(2026, 3, 11)}, days)

	// Range invertido: vazio, sem erro.
	require.Empty(t, DaysInRange(day(2026, 3, 12), day(2026, 3, 10)))
}
