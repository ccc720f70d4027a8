package appointment

import (
	"errors"
	"fmt"
	"time"
)

var ErrAppointmentNotFound = errors.New("appointment_not_found")

// ValidationError: entrada malformada (duração fora do intervalo,
// horário no passado). Nunca é retentada pelo core.
type ValidationError struct {
	Code string
}

func (e ValidationError) Error() string {
	return e.Code
}

func ErrValidation(code string) error {
	return ValidationError{Code: code}
}

// DoubleBookingError: conflito de horário detectado na escrita.
// Condição pode persistir, então não há retry automático.
type DoubleBookingError struct {
	BarberID uint
	Start    time.Time
	End      time.Time
}

func (e DoubleBookingError) Error() string {
	return fmt.Sprintf(
		"time_conflict: barber %d já possui agendamento entre %s e %s",
		e.BarberID,
		e.Start.Format(time.RFC3339),
		e.End.Format(time.RFC3339),
	)
}

// InvalidTransitionError: a máquina de estados rejeitou a operação.
// Um retry da mesma transição re-levanta o mesmo erro, deterministicamente.
type InvalidTransitionError struct {
	Op      string
	Current Status
}

func (e InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid_transition: %s a partir de %q", e.Op, e.Current)
}

// NotStartedError: Complete antes do início do agendamento. O status é
// elegível; o chamador deve tentar de novo depois que o horário passar.
type NotStartedError struct {
	StartTime time.Time
}

func (e NotStartedError) Error() string {
	return fmt.Sprintf("not_started: agendamento começa em %s", e.StartTime.Format(time.RFC3339))
}

// StorageError: falha do store já retentada uma vez pelo coordinator.
type StorageError struct {
	Err error
}

func (e StorageError) Error() string {
	return "storage_error: " + e.Err.Error()
}

func (e StorageError) Unwrap() error {
	return e.Err
}

func IsDoubleBooking(err error) bool {
	var dbErr DoubleBookingError
	return errors.As(err, &dbErr)
}

func IsInvalidTransition(err error) bool {
	var trErr InvalidTransitionError
	return errors.As(err, &trErr)
}

func IsValidation(err error, code string) bool {
	var vErr ValidationError
	if errors.As(err, &vErr) {
		return code == "" || vErr.Code == code
	}
	return false
}

func IsNotStarted(err error) bool {
	var nsErr NotStartedError
	return errors.As(err, &nsErr)
}
