package queue

import "github.com/BruksfildServices01/barber-queue/internal/httperr"

// ===============================
// Queue Entry Status
// ===============================

type Status string

const (
	StatusWaiting    Status = "waiting"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCanceled   Status = "canceled"
)

// ===============================
// Transition guards
// ===============================

// CanStart define se um atendimento pode começar
func CanStart(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness("illegal_transition")
	}
	return nil
}

// CanCancel define se uma entrada pode ser cancelada.
// Uma entrada já em atendimento nunca é cancelada por este caminho.
func CanCancel(current Status) error {
	if current != StatusWaiting {
		return httperr.ErrBusiness("illegal_transition")
	}
	return nil
}

// CanComplete define se um atendimento pode ser concluído
func CanComplete(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("illegal_transition")
	}
	return nil
}

// CanSkip define se uma entrada pode voltar para a fila
func CanSkip(current Status) error {
	if current != StatusInProgress {
		return httperr.ErrBusiness("illegal_transition")
	}
	return nil
}

func InitialStatus() Status {
	return StatusWaiting
}
