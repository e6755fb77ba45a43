package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

func (uc *GetAvailability) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) ([]domain.SlotView, error) {

	shop, err := uc.repo.GetShopByID(ctx, in.ShopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	loc := timezone.Location(shop.Timezone)
	date := in.Date.In(loc)

	eff, err := uc.resolveDay(ctx, in.ShopID, date, loc)
	if err != nil {
		return nil, err
	}
	if !eff.IsOpen {
		return []domain.SlotView{}, nil
	}

	durationMin, err := uc.totalDuration(ctx, in)
	if err != nil {
		return nil, err
	}

	bookings, err := uc.bookedIntervals(ctx, in.ShopID, eff)
	if err != nil {
		return nil, err
	}

	slots := slot.Generate(
		eff.Windows,
		bookings,
		time.Duration(durationMin)*time.Minute,
	)

	out := make([]domain.SlotView, 0, len(slots))
	for _, s := range slots {
		out = append(out, domain.SlotView{
			Time:      s.Time.In(loc).Format("15:04"),
			Available: s.Available,
		})
	}

	return out, nil
}

func (uc *GetAvailability) resolveDay(
	ctx context.Context,
	shopID uint,
	date time.Time,
	loc *time.Location,
) (schedule.EffectiveDay, error) {

	exc, err := uc.repo.GetScheduleException(
		ctx,
		shopID,
		date.Format(schedule.DateLayout),
	)
	if err != nil {
		return schedule.EffectiveDay{}, err
	}

	blocks, err := uc.repo.ListScheduleBlocks(ctx, shopID)
	if err != nil {
		return schedule.EffectiveDay{}, err
	}

	return schedule.ResolveDay(date, loc, blocks, exc), nil
}

// totalDuration soma as durações dos serviços pedidos mais minutos extras.
// Sem serviços, vale a duração padrão da grade.
func (uc *GetAvailability) totalDuration(
	ctx context.Context,
	in domain.AvailabilityInput,
) (int, error) {

	if len(in.ServiceIDs) == 0 {
		return slot.DefaultDurationMin + in.ExtraMinutes, nil
	}

	services, err := uc.repo.GetServices(ctx, in.ShopID, in.ServiceIDs)
	if err != nil {
		return 0, err
	}
	if len(services) != len(in.ServiceIDs) {
		return 0, httperr.ErrBusiness("service_not_found")
	}

	total := in.ExtraMinutes
	for _, s := range services {
		if !s.Active {
			return 0, httperr.ErrBusiness("service_not_found")
		}
		total += s.DurationMin
	}

	return total, nil
}

func (uc *GetAvailability) bookedIntervals(
	ctx context.Context,
	shopID uint,
	eff schedule.EffectiveDay,
) ([]slot.Interval, error) {

	rangeStart := eff.Windows[0].Start
	rangeEnd := eff.Windows[0].End
	for _, w := range eff.Windows[1:] {
		if w.Start.Before(rangeStart) {
			rangeStart = w.Start
		}
		if w.End.After(rangeEnd) {
			rangeEnd = w.End
		}
	}

	bookings, err := uc.repo.ListBookingsBetween(ctx, shopID, rangeStart, rangeEnd)
	if err != nil {
		return nil, err
	}

	intervals := make([]slot.Interval, 0, len(bookings))
	for _, b := range bookings {
		intervals = append(intervals, slot.Interval{
			Start: b.StartTime,
			End:   b.EndTime,
		})
	}

	return intervals, nil
}
