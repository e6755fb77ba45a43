package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type ListBookingsByDate struct {
	repo domain.Repository
}

func NewListBookingsByDate(
	repo domain.Repository,
) *ListBookingsByDate {
	return &ListBookingsByDate{
		repo: repo,
	}
}

func (uc *ListBookingsByDate) Execute(
	ctx context.Context,
	shopID uint,
	date time.Time,
) ([]dto.BookingListDTO, error) {

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, err
	}

	loc := timezone.Location(shop.Timezone)

	start := time.Date(
		date.Year(),
		date.Month(),
		date.Day(),
		0, 0, 0, 0,
		loc,
	)
	end := start.Add(24 * time.Hour)

	bookings, err := uc.repo.ListBookingsForPeriod(ctx, shopID, start, end)
	if err != nil {
		return nil, err
	}

	out := make([]dto.BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		row := dto.BookingListDTO{
			ID:               b.ID,
			BookingDate:      b.BookingDate,
			StartTime:        b.StartTime,
			EndTime:          b.EndTime,
			Status:           b.Status,
			CustomerName:     b.CustomerName,
			TotalDurationMin: b.TotalDurationMin,
			TotalPrice:       b.TotalPrice,
		}
		for _, s := range b.Services {
			row.Services = append(row.Services, s.Service.Name)
		}
		out = append(out, row)
	}

	return out, nil
}
