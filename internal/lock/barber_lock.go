package lock

import (
	"context"
	"sync"
)

// BarberLocks serializa as escritas de agenda por barbeiro: o
// check-then-insert de conflito precisa ser atômico por barbeiro,
// mantendo barbeiros diferentes totalmente em paralelo.
type BarberLocks struct {
	mu    sync.Mutex
	slots map[uint]chan struct{}
}

func NewBarberLocks() *BarberLocks {
	return &BarberLocks{
		slots: make(map[uint]chan struct{}),
	}
}

func (l *BarberLocks) slot(barberID uint) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	s, ok := l.slots[barberID]
	if !ok {
		s = make(chan struct{}, 1)
		l.slots[barberID] = s
	}
	return s
}

// Acquire bloqueia até obter o lock do barbeiro ou o contexto ser
// cancelado. Cancelamento antes da aquisição não tem efeito colateral.
// O release retornado deve ser chamado exatamente uma vez.
func (l *BarberLocks) Acquire(ctx context.Context, barberID uint) (release func(), err error) {
	s := l.slot(barberID)

	select {
	case s <- struct{}{}:
		return func() { <-s }, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
