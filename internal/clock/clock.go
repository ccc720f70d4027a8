package clock

import "time"

// Relógio canônico da plataforma: sempre UTC.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time {
	return time.Now().UTC()
}

func System() Clock {
	return systemClock{}
}

// Fixed é usado em testes para simular "agora".
type Fixed struct {
	Instant time.Time
}

func (f *Fixed) Now() time.Time {
	return f.Instant
}

func (f *Fixed) Advance(d time.Duration) {
	f.Instant = f.Instant.Add(d)
}

func NewFixed(t time.Time) *Fixed {
	return &Fixed{Instant: t.UTC()}
}
