package booking

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Confirm(b *models.Booking, now time.Time) error {
	if err := CanConfirm(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusConfirmed)
	b.ConfirmedAt = &now
	return nil
}

func Cancel(b *models.Booking, now time.Time) error {
	if err := CanCancel(Status(b.Status)); err != nil {
		return err
	}

	b.Status = string(StatusCancelled)
	b.CancelledAt = &now
	return nil
}
