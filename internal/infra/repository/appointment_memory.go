package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// MemoryStore implementa domain.Store em memória. Usado nos testes e na
// suíte de concorrência; o contrato é o mesmo do store Postgres.
type MemoryStore struct {
	mu  sync.RWMutex
	aps map[string]models.Appointment
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		aps: make(map[string]models.Appointment),
	}
}

func (s *MemoryStore) FindOverlapping(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.aps {
		if ap.BarberID != barberID {
			continue
		}
		if !domain.Blocking(domain.Status(ap.Status)) {
			continue
		}
		if ap.StartTime.Before(end) && start.Before(ap.EndTime) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out, nil
}

func (s *MemoryStore) Save(ctx context.Context, ap *models.Appointment) error {
	s.mu.Lock()
	s.aps[ap.ID] = *ap
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*models.Appointment, error) {
	s.mu.RLock()
	ap, ok := s.aps[id]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrAppointmentNotFound
	}

	cp := ap
	return &cp, nil
}

func (s *MemoryStore) ListForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Appointment
	for _, ap := range s.aps {
		if ap.BarberID != barberID {
			continue
		}
		if !ap.StartTime.Before(start) && ap.StartTime.Before(end) {
			out = append(out, ap)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})

	return out, nil
}

// Compile-time check
var _ domain.Store = (*MemoryStore)(nil)
