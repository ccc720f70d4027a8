package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Transições
// ===============================

// pending → confirmed → completed; pending|confirmed → cancelled.
// Nenhuma outra transição existe; estados terminais rejeitam tudo.

// CanConfirm define se um agendamento pode ser confirmado
func CanConfirm(current Status) error {
	if current != StatusPending {
		return InvalidTransitionError{Op: "confirm", Current: current}
	}
	return nil
}

// CanCancel define se um agendamento pode ser cancelado
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return InvalidTransitionError{Op: "cancel", Current: current}
	}
	return nil
}

// CanComplete define se um agendamento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusConfirmed {
		return InvalidTransitionError{Op: "complete", Current: current}
	}
	return nil
}

// Blocking informa se o status ainda ocupa horário na agenda.
// Cancelados e concluídos não bloqueiam slots.
func Blocking(current Status) bool {
	return current == StatusPending || current == StatusConfirmed
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}
