package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// StatusChange devolve o antes/depois para o chamador notificar.
type StatusChange struct {
	Booking  *models.Booking
	Previous domain.Status
	Current  domain.Status
}

type ConfirmBooking struct {
	repo   domain.Repository
	audit  Auditor
	notify Notifier
}

func NewConfirmBooking(
	repo domain.Repository,
	auditor Auditor,
	notifier Notifier,
) *ConfirmBooking {
	return &ConfirmBooking{
		repo:   repo,
		audit:  auditor,
		notify: notifier,
	}
}

func (uc *ConfirmBooking) Execute(
	ctx context.Context,
	shopID uint,
	userID uint,
	bookingID uint,
) (*StatusChange, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	b, err := uc.repo.GetBookingForShop(ctx, bookingID, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("booking_not_found")
	}

	previous := domain.Status(b.Status)

	now := timezone.NowIn(shop.Timezone)
	if err := domain.Confirm(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "booking_confirmed",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Dispatch(notify.FromBooking(notify.KindBookingConfirmed, shop, b))

	return &StatusChange{
		Booking:  b,
		Previous: previous,
		Current:  domain.Status(b.Status),
	}, nil
}
