package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
)

func newTestCache(ttl time.Duration) (*AvailabilityCache, *clock.Fixed) {
	clk := clock.NewFixed(time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC))
	return New(ttl, clk, metrics.NewUnregistered()), clk
}

func someDays(date string) []domain.DayAvailability {
	return []domain.DayAvailability{{Date: date, Slots: []domain.TimeSlot{}}}
}

func TestGetSetRoundtrip(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	key := Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}

	_, ok := c.Get(key)
	require.False(t, ok)

	c.Set(key, someDays("2026-03-10"))

	got, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, "2026-03-10", got[0].Date)
}

// A chave é a tupla literal: o mesmo dia consultado com range maior, ou
// com outra duração, é outra entrada.
func TestKeyIsLiteral(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	c.Set(Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}, someDays("2026-03-10"))

	_, ok := c.Get(Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-11", DurationMin: 30})
	require.False(t, ok)

	_, ok = c.Get(Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 60})
	require.False(t, ok)

	_, ok = c.Get(Key{BarberID: 2, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30})
	require.False(t, ok)
}

func TestTTLExpiry(t *testing.T) {
	c, clk := newTestCache(5 * time.Minute)

	key := Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}
	c.Set(key, someDays("2026-03-10"))

	clk.Advance(4 * time.Minute)
	_, ok := c.Get(key)
	require.True(t, ok)

	// Exatamente no TTL a entrada já não vale.
	clk.Advance(time.Minute)
	_, ok = c.Get(key)
	require.False(t, ok)
}

func TestInvalidateByDate(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	covering := Key{BarberID: 1, RangeStart: "2026-03-09", RangeEnd: "2026-03-11", DurationMin: 30}
	outside := Key{BarberID: 1, RangeStart: "2026-03-12", RangeEnd: "2026-03-14", DurationMin: 30}
	otherBarber := Key{BarberID: 2, RangeStart: "2026-03-09", RangeEnd: "2026-03-11", DurationMin: 30}

	c.Set(covering, someDays("2026-03-09"))
	c.Set(outside, someDays("2026-03-12"))
	c.Set(otherBarber, someDays("2026-03-09"))

	c.Invalidate(1, time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC))

	_, ok := c.Get(covering)
	require.False(t, ok)

	_, ok = c.Get(outside)
	require.True(t, ok)

	_, ok = c.Get(otherBarber)
	require.True(t, ok)
}

// Datas na borda do range contam como cobertas (range inclusivo).
func TestInvalidateRangeEdges(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	key := Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-12", DurationMin: 30}

	for _, d := range []time.Time{
		time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 12, 23, 59, 0, 0, time.UTC),
	} {
		c.Set(key, someDays("2026-03-10"))
		c.Invalidate(1, d)

		_, ok := c.Get(key)
		require.False(t, ok)
	}
}

func TestInvalidateBarber(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	a := Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}
	b := Key{BarberID: 1, RangeStart: "2026-04-01", RangeEnd: "2026-04-07", DurationMin: 60}
	other := Key{BarberID: 2, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}

	c.Set(a, someDays("2026-03-10"))
	c.Set(b, someDays("2026-04-01"))
	c.Set(other, someDays("2026-03-10"))

	c.InvalidateBarber(1)

	require.Equal(t, 1, c.Len())

	_, ok := c.Get(other)
	require.True(t, ok)
}

func TestHitRatio(t *testing.T) {
	c, _ := newTestCache(5 * time.Minute)

	key := Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}

	// 1 miss.
	c.Get(key)

	c.Set(key, someDays("2026-03-10"))

	// 3 hits.
	for i := 0; i < 3; i++ {
		_, ok := c.Get(key)
		require.True(t, ok)
	}

	require.InDelta(t, 0.75, c.HitRatio(), 1e-9)
}

func TestDefaultTTL(t *testing.T) {
	c, clk := newTestCache(0)

	key := Key{BarberID: 1, RangeStart: "2026-03-10", RangeEnd: "2026-03-10", DurationMin: 30}
	c.Set(key, someDays("2026-03-10"))

	clk.Advance(4 * time.Minute)
	_, ok := c.Get(key)
	require.True(t, ok)

	clk.Advance(2 * time.Minute)
	_, ok = c.Get(key)
	require.False(t, ok)
}
