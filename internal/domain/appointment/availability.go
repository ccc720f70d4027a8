package appointment

import (
	"sort"
	"time"
)

// ===============================
// Availability (derivado, nunca persistido)
// ===============================

// Window é um intervalo meio-aberto [Start, End).
type Window struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Overlaps: [a,b) cruza [c,d) sse a < d && c < b.
func (w Window) Overlaps(start, end time.Time) bool {
	return w.Start.Before(end) && start.Before(w.End)
}

type TimeSlot struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type DayAvailability struct {
	Date  string     `json:"date"` // YYYY-MM-DD
	Slots []TimeSlot `json:"slots"`
}

// DayWindows são as janelas de expediente de um barbeiro em um dia,
// fornecidas por colaborador externo (working hours).
type DayWindows struct {
	Date    time.Time
	Windows []Window
}

type AvailabilityInput struct {
	BarbershopID uint
	BarberID     uint
	ProductID    uint
	RangeStart   time.Time // dia inclusivo
	RangeEnd     time.Time // dia inclusivo
}

// ===============================
// Calculadora (pura, sem I/O)
// ===============================

// ComputeAvailability gera, para cada dia, os horários de início em que um
// serviço de durationMin cabe sem cruzar nenhum intervalo ocupado e sem
// ultrapassar a janela de expediente. Slots avançam em passos fixos de
// step a partir do início de cada janela.
//
// Entradas idênticas produzem saída idêntica e na mesma ordem: dias na
// ordem recebida, slots ascendentes. O cache depende disso.
//
// Dia sem janelas, duração não positiva ou duração maior que toda janela
// resultam em lista vazia, nunca em erro.
func ComputeAvailability(
	days []DayWindows,
	busy []Window,
	durationMin int,
	step time.Duration,
) []DayAvailability {

	out := make([]DayAvailability, 0, len(days))

	duration := time.Duration(durationMin) * time.Minute

	for _, day := range days {
		av := DayAvailability{
			Date:  day.Date.Format("2006-01-02"),
			Slots: []TimeSlot{},
		}

		if durationMin <= 0 || step <= 0 {
			out = append(out, av)
			continue
		}

		windows := make([]Window, len(day.Windows))
		copy(windows, day.Windows)
		sort.Slice(windows, func(i, j int) bool {
			return windows[i].Start.Before(windows[j].Start)
		})

		for _, w := range windows {
			for cur := w.Start; !cur.Add(duration).After(w.End); cur = cur.Add(step) {
				slotEnd := cur.Add(duration)

				if overlapsAny(cur, slotEnd, busy) {
					continue
				}

				av.Slots = append(av.Slots, TimeSlot{Start: cur, End: slotEnd})
			}
		}

		out = append(out, av)
	}

	return out
}

func overlapsAny(start, end time.Time, busy []Window) bool {
	for _, b := range busy {
		if b.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// DaysInRange expande [rangeStart, rangeEnd] em dias (meia-noite UTC),
// ascendente. Range invertido produz lista vazia, sem erro.
func DaysInRange(rangeStart, rangeEnd time.Time) []time.Time {
	start := truncateToDay(rangeStart)
	end := truncateToDay(rangeEnd)

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func truncateToDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
