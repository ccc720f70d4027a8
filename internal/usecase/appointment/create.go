package appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/barber-agenda/internal/audit"
	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateInput struct {
	BarbershopID uint
	BarberID     uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	ProductID uint

	StartTime time.Time

	// Zero usa a duração atual do serviço. O valor efetivo fica
	// congelado no agendamento.
	DurationMin int

	Notes string
}

const (
	minDurationMin = 1
	maxDurationMin = 480
)

// ======================================================
// CREATE
// ======================================================

func (c *Coordinator) Create(
	ctx context.Context,
	in CreateInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Colaboradores (barbearia, barbeiro, serviço)
	// --------------------------------------------------
	if _, err := c.dir.GetBarbershopByID(ctx, in.BarbershopID); err != nil {
		return nil, domain.ErrValidation("barbershop_not_found")
	}

	barber, err := c.dir.GetBarber(ctx, in.BarbershopID, in.BarberID)
	if err != nil {
		return nil, domain.ErrValidation("barber_not_found")
	}
	if !barber.Active {
		return nil, domain.ErrValidation("barber_inactive")
	}

	product, err := c.dir.GetProduct(ctx, in.BarbershopID, in.ProductID)
	if err != nil {
		return nil, domain.ErrValidation("product_not_found")
	}

	durationMin := in.DurationMin
	if durationMin == 0 {
		durationMin = product.DurationMin
	}

	// --------------------------------------------------
	// 2. Validação temporal
	// --------------------------------------------------
	if durationMin < minDurationMin || durationMin > maxDurationMin {
		return nil, domain.ErrValidation("invalid_duration")
	}

	now := c.clock.Now()
	start := in.StartTime.UTC()

	// Estritamente no futuro: agendar para "agora" é inválido.
	if !start.After(now) {
		return nil, domain.ErrValidation("start_not_in_future")
	}

	end := start.Add(time.Duration(durationMin) * time.Minute)

	// --------------------------------------------------
	// 3. Cliente (get or create)
	// --------------------------------------------------
	client, err := c.dir.GetOrCreateClient(
		ctx,
		in.BarbershopID,
		in.ClientName,
		in.ClientPhone,
		in.ClientEmail,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 4. Check-then-insert atômico por barbeiro
	// --------------------------------------------------
	release, err := c.locks.Acquire(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}
	defer release()

	conflicts, err := c.findOverlappingWithRetry(ctx, in.BarberID, start, end)
	if err != nil {
		return nil, err
	}

	if len(conflicts) > 0 {
		if c.metrics != nil {
			c.metrics.BookingConflicts.Inc()
		}
		return nil, domain.DoubleBookingError{
			BarberID: in.BarberID,
			Start:    start,
			End:      end,
		}
	}

	ap := &models.Appointment{
		ID:              uuid.NewString(),
		BarbershopID:    in.BarbershopID,
		BarberID:        in.BarberID,
		ClientID:        client.ID,
		BarberProductID: product.ID,
		StartTime:       start,
		EndTime:         end,
		DurationMin:     durationMin,
		Status:          string(domain.InitialStatus()),
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := c.saveWithRetry(ctx, ap); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 5. Invalidação de cache + observabilidade
	// --------------------------------------------------
	c.invalidateFor(ap)

	if c.metrics != nil {
		c.metrics.AppointmentsCreated.Inc()
	}

	c.dispatchAudit(audit.Event{
		BarbershopID: in.BarbershopID,
		UserID:       &in.BarberID,
		Action:       "appointment_created",
		Entity:       "appointment",
		EntityID:     &ap.ID,
	})

	return ap, nil
}
