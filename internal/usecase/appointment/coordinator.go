package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	"github.com/BruksfildServices01/barber-agenda/internal/cache"
	"github.com/BruksfildServices01/barber-agenda/internal/clock"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/lock"
	"github.com/BruksfildServices01/barber-agenda/internal/metrics"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// COORDINATOR
// ======================================================

// Coordinator é o único componente que muta agendamentos. Toda escrita
// passa pelo lock por barbeiro, pela máquina de estados do domínio e
// invalida o cache de disponibilidade antes de retornar.
type Coordinator struct {
	store   domain.Store
	dir     domain.Directory
	locks   *lock.BarberLocks
	cache   *cache.AvailabilityCache
	audit   *audit.Dispatcher
	metrics *metrics.Set
	clock   clock.Clock
}

func NewCoordinator(
	store domain.Store,
	dir domain.Directory,
	locks *lock.BarberLocks,
	availCache *cache.AvailabilityCache,
	auditDispatcher *audit.Dispatcher,
	metricsSet *metrics.Set,
	clk clock.Clock,
) *Coordinator {
	return &Coordinator{
		store:   store,
		dir:     dir,
		locks:   locks,
		cache:   availCache,
		audit:   auditDispatcher,
		metrics: metricsSet,
		clock:   clk,
	}
}

// ======================================================
// HELPERS
// ======================================================

// Falhas do store são retentadas uma vez, de forma transparente;
// a segunda falha vira StorageError.

func (c *Coordinator) saveWithRetry(ctx context.Context, ap *models.Appointment) error {
	if err := c.store.Save(ctx, ap); err != nil {
		if err = c.store.Save(ctx, ap); err != nil {
			return domain.StorageError{Err: err}
		}
	}
	return nil
}

func (c *Coordinator) getWithRetry(ctx context.Context, id string) (*models.Appointment, error) {
	ap, err := c.store.Get(ctx, id)
	if err == nil {
		return ap, nil
	}
	if err == domain.ErrAppointmentNotFound {
		return nil, err
	}

	ap, err = c.store.Get(ctx, id)
	if err == nil {
		return ap, nil
	}
	if err == domain.ErrAppointmentNotFound {
		return nil, err
	}
	return nil, domain.StorageError{Err: err}
}

func (c *Coordinator) findOverlappingWithRetry(
	ctx context.Context,
	barberID uint,
	start, end time.Time,
) ([]models.Appointment, error) {

	conflicts, err := c.store.FindOverlapping(ctx, barberID, start, end)
	if err != nil {
		conflicts, err = c.store.FindOverlapping(ctx, barberID, start, end)
		if err != nil {
			return nil, domain.StorageError{Err: err}
		}
	}
	return conflicts, nil
}

// invalidateFor remove as entradas de cache que cobrem o agendamento.
// Agendamentos podem atravessar a meia-noite; nesse caso as duas datas
// são invalidadas.
func (c *Coordinator) invalidateFor(ap *models.Appointment) {
	c.cache.Invalidate(ap.BarberID, ap.StartTime)

	if ap.EndTime.UTC().Format("2006-01-02") != ap.StartTime.UTC().Format("2006-01-02") {
		c.cache.Invalidate(ap.BarberID, ap.EndTime)
	}
}

func (c *Coordinator) dispatchAudit(ev audit.Event) {
	if c.audit != nil {
		c.audit.Dispatch(ev)
	}
}

// transition aplica uma operação da máquina de estados sob o lock do
// barbeiro. O agendamento é relido dentro da seção crítica para que a
// decisão use o status mais recente.
func (c *Coordinator) transition(
	ctx context.Context,
	id string,
	apply func(*models.Appointment, time.Time) error,
	action string,
) (*models.Appointment, error) {

	ap, err := c.getWithRetry(ctx, id)
	if err != nil {
		return nil, err
	}

	release, err := c.locks.Acquire(ctx, ap.BarberID)
	if err != nil {
		return nil, err
	}
	defer release()

	ap, err = c.getWithRetry(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := apply(ap, c.clock.Now()); err != nil {
		return nil, err
	}

	if err := c.saveWithRetry(ctx, ap); err != nil {
		return nil, err
	}

	c.invalidateFor(ap)

	c.dispatchAudit(audit.Event{
		BarbershopID: ap.BarbershopID,
		UserID:       &ap.BarberID,
		Action:       action,
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
