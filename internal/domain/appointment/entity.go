package appointment

import (
	"time"

	"github.com/BruksfildServices01/barber-agenda/internal/models"
)

// ===============================
// Domain Actions
// ===============================

// Cada transição grava o timestamp correspondente exatamente uma vez
// e avança UpdatedAt.

func Confirm(ap *models.Appointment, now time.Time) error {
	if err := CanConfirm(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusConfirmed)
	ap.ConfirmedAt = &now
	ap.UpdatedAt = now
	return nil
}

func Cancel(ap *models.Appointment, now time.Time) error {
	// Agendamento que já começou não pode mais ser cancelado,
	// independente do status.
	if !now.Before(ap.StartTime) {
		return ErrValidation("appointment_already_started")
	}

	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	ap.UpdatedAt = now
	return nil
}

func Complete(ap *models.Appointment, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}

	// Só é possível concluir depois que o horário de início passou.
	if now.Before(ap.StartTime) {
		return NotStartedError{StartTime: ap.StartTime}
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	ap.UpdatedAt = now
	return nil
}
