package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const granularityMin = 30

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Shop
// --------------------------------------------------

func (r *BookingGormRepository) GetShopByID(
	ctx context.Context,
	id uint,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).First(&shop, id).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

func (r *BookingGormRepository) GetShopBySlug(
	ctx context.Context,
	slug string,
) (*models.Shop, error) {

	var shop models.Shop
	if err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&shop).Error; err != nil {
		return nil, err
	}
	return &shop, nil
}

// --------------------------------------------------
// Booking link
// --------------------------------------------------

func (r *BookingGormRepository) GetBookingLinkByToken(
	ctx context.Context,
	token string,
) (*models.BookingLink, error) {

	var link models.BookingLink
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *BookingGormRepository) ListScheduleBlocks(
	ctx context.Context,
	shopID uint,
) ([]models.ScheduleBlock, error) {

	var blocks []models.ScheduleBlock
	if err := r.db.WithContext(ctx).
		Where("shop_id = ?", shopID).
		Order("weekday ASC, block_order ASC, open_time ASC").
		Find(&blocks).Error; err != nil {
		return nil, err
	}
	return blocks, nil
}

func (r *BookingGormRepository) GetScheduleException(
	ctx context.Context,
	shopID uint,
	date string,
) (*models.ScheduleException, error) {

	var exc models.ScheduleException
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND exception_date = ?", shopID, date).
		First(&exc).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &exc, nil
}

// --------------------------------------------------
// Services / modifiers
// --------------------------------------------------

func (r *BookingGormRepository) ListActiveServices(
	ctx context.Context,
	shopID uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND active = true", shopID).
		Order("id ASC").
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) GetServices(
	ctx context.Context,
	shopID uint,
	ids []uint,
) ([]models.Service, error) {

	var services []models.Service
	if err := r.db.WithContext(ctx).
		Where("shop_id = ? AND id IN ?", shopID, ids).
		Find(&services).Error; err != nil {
		return nil, err
	}
	return services, nil
}

func (r *BookingGormRepository) ListModifiersForServices(
	ctx context.Context,
	serviceIDs []uint,
) ([]models.ServiceModifier, error) {

	var mods []models.ServiceModifier
	if err := r.db.WithContext(ctx).
		Where("service_id IN ? AND active = true", serviceIDs).
		Order("id ASC").
		Find(&mods).Error; err != nil {
		return nil, err
	}
	return mods, nil
}

// --------------------------------------------------
// Customer
// --------------------------------------------------

func (r *BookingGormRepository) FindCustomerByEmail(
	ctx context.Context,
	shopID uint,
	email string,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Where("shop_id = ? AND LOWER(email) = ?", shopID, strings.ToLower(email)).
		First(&customer).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *BookingGormRepository) CountConfirmedBookings(
	ctx context.Context,
	customerID uint,
) (int64, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("customer_id = ? AND status = ?", customerID, "confirmed").
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *BookingGormRepository) GetOrCreateCustomer(
	ctx context.Context,
	shopID uint,
	name string,
	phone string,
	email string,
	birthDate *time.Time,
) (*models.Customer, error) {

	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("shop_id = ? AND LOWER(email) = ?", shopID, strings.ToLower(email)).
		First(&customer).Error

	if err == nil {
		if customer.BirthDate == nil && birthDate != nil {
			customer.BirthDate = birthDate
			r.db.WithContext(ctx).Save(&customer)
		}
		return &customer, nil
	}

	customer = models.Customer{
		ShopID:    shopID,
		Name:      name,
		Phone:     phone,
		Email:     email,
		BirthDate: birthDate,
	}

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return nil, err
	}

	return &customer, nil
}

// --------------------------------------------------
// Booking (read)
// --------------------------------------------------

func (r *BookingGormRepository) ListBookingsBetween(
	ctx context.Context,
	shopID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	if err := r.db.WithContext(ctx).
		Select("start_time", "end_time").
		Where(
			"shop_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
			shopID, "cancelled", end, start,
		).
		Order("start_time ASC").
		Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) ListBookingsForPeriod(
	ctx context.Context,
	shopID uint,
	start time.Time,
	end time.Time,
) ([]models.Booking, error) {

	var bookings []models.Booking
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Preload("Services.Service").
		Preload("Modifiers.ServiceModifier").
		Where(
			"shop_id = ? AND start_time >= ? AND start_time < ?",
			shopID, start, end,
		).
		Order("start_time ASC").
		Find(&bookings).Error

	if err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *BookingGormRepository) GetBookingForShop(
	ctx context.Context,
	bookingID uint,
	shopID uint,
) (*models.Booking, error) {

	var b models.Booking
	if err := r.db.WithContext(ctx).
		Preload("Services.Service").
		Preload("Modifiers.ServiceModifier").
		Where("id = ? AND shop_id = ?", bookingID, shopID).
		First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// --------------------------------------------------
// Booking (write)
// --------------------------------------------------

// CreateBookingGroup grava reserva, itens e uso do link em uma transação só.
// A sequência ler-validar-escrever é serializada por (salão, data) com um
// advisory lock transacional; o índice único (shop_id, booking_date,
// start_time) segura o que escapar dele.
func (r *BookingGormRepository) CreateBookingGroup(
	ctx context.Context,
	group domain.BookingGroup,
) error {

	b := group.Booking

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Exec(
			"SELECT pg_advisory_xact_lock(?, ?)",
			int64(b.ShopID),
			dateLockKey(b.BookingDate),
		).Error; err != nil {
			return err
		}

		// Revalida conflito sob o lock, contra o span de células reservadas.
		cells := (b.TotalDurationMin + granularityMin - 1) / granularityMin
		spanEnd := b.StartTime.Add(time.Duration(cells*granularityMin) * time.Minute)

		var conflicts int64
		if err := tx.
			Model(&models.Booking{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where(
				"shop_id = ? AND status <> ? AND start_time < ? AND end_time > ?",
				b.ShopID, "cancelled", spanEnd, b.StartTime,
			).
			Count(&conflicts).Error; err != nil {
			return err
		}

		if conflicts > 0 {
			return httperr.ErrBusiness("slot_unavailable")
		}

		if err := tx.Create(b).Error; err != nil {
			return err
		}

		for i := range group.Services {
			group.Services[i].BookingID = b.ID
		}
		if len(group.Services) > 0 {
			if err := tx.Create(&group.Services).Error; err != nil {
				return err
			}
		}

		for i := range group.Modifiers {
			group.Modifiers[i].BookingID = b.ID
		}
		if len(group.Modifiers) > 0 {
			if err := tx.Create(&group.Modifiers).Error; err != nil {
				return err
			}
		}

		if b.BookingLinkID != nil {
			res := tx.
				Model(&models.BookingLink{}).
				Where(
					"id = ? AND active = true AND (max_uses = 0 OR current_uses < max_uses)",
					*b.BookingLinkID,
				).
				UpdateColumn("current_uses", gorm.Expr("current_uses + 1"))

			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return httperr.ErrBusiness("invalid_link")
			}
		}

		return nil
	})
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Where("id = ?", b.ID).
		Updates(map[string]any{
			"status":       b.Status,
			"confirmed_at": b.ConfirmedAt,
			"cancelled_at": b.CancelledAt,
		}).Error
}

// dateLockKey reduz YYYY-MM-DD ao inteiro YYYYMMDD usado no advisory lock.
func dateLockKey(date string) int64 {
	digits := strings.ReplaceAll(date, "-", "")

	var n int64
	for _, r := range digits {
		if r < '0' || r > '9' {
			continue
		}
		n = n*10 + int64(r-'0')
	}
	return n
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
