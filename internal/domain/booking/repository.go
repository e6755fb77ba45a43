package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// BookingGroup é a unidade atômica de criação: a reserva com seus itens
// congelados. Ou tudo entra, ou nada entra.
type BookingGroup struct {
	Booking   *models.Booking
	Services  []models.BookingService
	Modifiers []models.BookingModifier
}

type Repository interface {
	// -------- Shop --------
	GetShopByID(
		ctx context.Context,
		id uint,
	) (*models.Shop, error)

	GetShopBySlug(
		ctx context.Context,
		slug string,
	) (*models.Shop, error)

	// -------- Booking link --------
	GetBookingLinkByToken(
		ctx context.Context,
		token string,
	) (*models.BookingLink, error)

	// -------- Schedule --------
	ListScheduleBlocks(
		ctx context.Context,
		shopID uint,
	) ([]models.ScheduleBlock, error)

	GetScheduleException(
		ctx context.Context,
		shopID uint,
		date string,
	) (*models.ScheduleException, error)

	// -------- Services / modifiers --------
	ListActiveServices(
		ctx context.Context,
		shopID uint,
	) ([]models.Service, error)

	GetServices(
		ctx context.Context,
		shopID uint,
		ids []uint,
	) ([]models.Service, error)

	ListModifiersForServices(
		ctx context.Context,
		serviceIDs []uint,
	) ([]models.ServiceModifier, error)

	// -------- Customer --------
	FindCustomerByEmail(
		ctx context.Context,
		shopID uint,
		email string,
	) (*models.Customer, error)

	CountConfirmedBookings(
		ctx context.Context,
		customerID uint,
	) (int64, error)

	GetOrCreateCustomer(
		ctx context.Context,
		shopID uint,
		name string,
		phone string,
		email string,
		birthDate *time.Time,
	) (*models.Customer, error)

	// -------- Booking (read) --------
	ListBookingsBetween(
		ctx context.Context,
		shopID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	ListBookingsForPeriod(
		ctx context.Context,
		shopID uint,
		start time.Time,
		end time.Time,
	) ([]models.Booking, error)

	GetBookingForShop(
		ctx context.Context,
		bookingID uint,
		shopID uint,
	) (*models.Booking, error)

	// -------- Booking (write) --------
	CreateBookingGroup(
		ctx context.Context,
		group BookingGroup,
	) error

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error
}
