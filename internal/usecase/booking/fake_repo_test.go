package booking

import (
	"context"
	"errors"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
)

// fakeRepo implementa domain.Repository em memória para os testes de use case.
type fakeRepo struct {
	shop       *models.Shop
	link       *models.BookingLink
	blocks     []models.ScheduleBlock
	exceptions map[string]*models.ScheduleException
	services   []models.Service
	modifiers  []models.ServiceModifier
	customer   *models.Customer
	bookings   []models.Booking

	confirmedCount int64

	createdGroups []domain.BookingGroup
	createErr     error
	updated       []*models.Booking
}

var _ domain.Repository = (*fakeRepo)(nil)

func (f *fakeRepo) GetShopByID(_ context.Context, id uint) (*models.Shop, error) {
	if f.shop == nil || f.shop.ID != id {
		return nil, errors.New("record not found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetShopBySlug(_ context.Context, slug string) (*models.Shop, error) {
	if f.shop == nil || f.shop.Slug != slug {
		return nil, errors.New("record not found")
	}
	return f.shop, nil
}

func (f *fakeRepo) GetBookingLinkByToken(_ context.Context, token string) (*models.BookingLink, error) {
	if f.link == nil || f.link.Token != token {
		return nil, errors.New("record not found")
	}
	return f.link, nil
}

func (f *fakeRepo) ListScheduleBlocks(_ context.Context, shopID uint) ([]models.ScheduleBlock, error) {
	return f.blocks, nil
}

func (f *fakeRepo) GetScheduleException(_ context.Context, _ uint, date string) (*models.ScheduleException, error) {
	return f.exceptions[date], nil
}

func (f *fakeRepo) ListActiveServices(_ context.Context, _ uint) ([]models.Service, error) {
	var out []models.Service
	for _, s := range f.services {
		if s.Active {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetServices(_ context.Context, _ uint, ids []uint) ([]models.Service, error) {
	var out []models.Service
	for _, id := range ids {
		for _, s := range f.services {
			if s.ID == id {
				out = append(out, s)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) ListModifiersForServices(_ context.Context, serviceIDs []uint) ([]models.ServiceModifier, error) {
	var out []models.ServiceModifier
	for _, m := range f.modifiers {
		if !m.Active {
			continue
		}
		for _, id := range serviceIDs {
			if m.ServiceID == id {
				out = append(out, m)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) FindCustomerByEmail(_ context.Context, _ uint, email string) (*models.Customer, error) {
	if f.customer != nil && f.customer.Email == email {
		return f.customer, nil
	}
	return nil, nil
}

func (f *fakeRepo) CountConfirmedBookings(_ context.Context, _ uint) (int64, error) {
	return f.confirmedCount, nil
}

func (f *fakeRepo) GetOrCreateCustomer(
	_ context.Context,
	shopID uint,
	name, phone, email string,
	birthDate *time.Time,
) (*models.Customer, error) {
	if f.customer != nil && f.customer.Email == email {
		return f.customer, nil
	}
	f.customer = &models.Customer{
		ID:        7,
		ShopID:    shopID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		BirthDate: birthDate,
	}
	return f.customer, nil
}

func (f *fakeRepo) ListBookingsBetween(_ context.Context, _ uint, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if b.Status == "cancelled" {
			continue
		}
		if b.StartTime.Before(end) && b.EndTime.After(start) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListBookingsForPeriod(_ context.Context, _ uint, start, end time.Time) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.bookings {
		if !b.StartTime.Before(start) && b.StartTime.Before(end) {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetBookingForShop(_ context.Context, bookingID, shopID uint) (*models.Booking, error) {
	for i := range f.bookings {
		if f.bookings[i].ID == bookingID && f.bookings[i].ShopID == shopID {
			return &f.bookings[i], nil
		}
	}
	return nil, errors.New("record not found")
}

func (f *fakeRepo) CreateBookingGroup(_ context.Context, group domain.BookingGroup) error {
	if f.createErr != nil {
		return f.createErr
	}
	group.Booking.ID = uint(100 + len(f.createdGroups))
	f.createdGroups = append(f.createdGroups, group)
	f.bookings = append(f.bookings, *group.Booking)
	return nil
}

func (f *fakeRepo) UpdateBooking(_ context.Context, b *models.Booking) error {
	f.updated = append(f.updated, b)
	return nil
}

// --------- Colaboradores ---------

type fakeAuditor struct {
	events []audit.Event
}

func (f *fakeAuditor) Dispatch(ev audit.Event) {
	f.events = append(f.events, ev)
}

type fakeNotifier struct {
	payloads []notify.Payload
}

func (f *fakeNotifier) Dispatch(p notify.Payload) {
	f.payloads = append(f.payloads, p)
}

type fakeVerifier struct {
	err    error
	checks []string
}

func (f *fakeVerifier) Check(_ context.Context, email, token string) error {
	f.checks = append(f.checks, email+"|"+token)
	return f.err
}
