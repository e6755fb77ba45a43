package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListBookingsByMonth struct {
	repo domain.Repository
}

func NewListBookingsByMonth(
	repo domain.Repository,
) *ListBookingsByMonth {
	return &ListBookingsByMonth{
		repo: repo,
	}
}

func (uc *ListBookingsByMonth) Execute(
	ctx context.Context,
	shopID uint,
	year int,
	month int,
) ([]models.Booking, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	start := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, loc)
	end := start.AddDate(0, 1, 0)

	return uc.repo.ListBookingsForPeriod(ctx, shopID, start, end)
}
