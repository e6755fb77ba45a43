package booking

import (
	"context"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type CancelBooking struct {
	repo   domain.Repository
	audit  Auditor
	notify Notifier
}

func NewCancelBooking(
	repo domain.Repository,
	auditor Auditor,
	notifier Notifier,
) *CancelBooking {
	return &CancelBooking{
		repo:   repo,
		audit:  auditor,
		notify: notifier,
	}
}

func (uc *CancelBooking) Execute(
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
	if err := domain.Cancel(b, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateBooking(ctx, b); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		UserID:   &userID,
		Action:   "booking_cancelled",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Dispatch(notify.FromBooking(notify.KindBookingCancelled, shop, b))

	return &StatusChange{
		Booking:  b,
		Previous: previous,
		Current:  domain.Status(b.Status),
	}, nil
}
