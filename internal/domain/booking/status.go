package booking

import "github.com/BruksfildServices01/salon-scheduler/internal/httperr"

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ===============================
// Validations
// ===============================

// CanConfirm define se uma reserva pode ser confirmada
func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanCancel define se uma reserva pode ser cancelada.
// Cancelar depois de confirmada é permitido (cancelamento tardio).
func CanCancel(current Status) error {
	if current != StatusPending && current != StatusConfirmed {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// InitialStatus valida status inicial
func InitialStatus() Status {
	return StatusPending
}
