package appointment

import (
	"context"

	domain "github.com/BruksfildServices01/barber-agenda/internal/domain/appointment"
	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

func (c *Coordinator) Confirm(
	ctx context.Context,
	appointmentID string,
) (*models.Appointment, error) {

	ap, err := c.transition(ctx, appointmentID, domain.Confirm, "appointment_confirmed")
	if err != nil {
		return nil, err
	}

	if c.metrics != nil {
		c.metrics.AppointmentsConfirmed.Inc()
	}

	return ap, nil
}
