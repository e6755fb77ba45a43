package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint `gorm:"index:idx_bookings_shop_date" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"shop"`

	CustomerID uint     `json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"customer"`

	// Data no fuso do salão; StartTime/EndTime são instantes absolutos.
	// A unicidade de (shop_id, booking_date, start_time) vale só para
	// reservas não canceladas: índice parcial criado em internal/db.
	BookingDate string    `gorm:"size:10;not null;index:idx_bookings_shop_date" json:"booking_date"`
	StartTime   time.Time `gorm:"not null" json:"start_time"`
	EndTime     time.Time `gorm:"not null" json:"end_time"`

	TotalDurationMin int     `json:"total_duration_min"`
	TotalPrice       float64 `json:"total_price"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CustomerName  string `gorm:"size:100;not null" json:"customer_name"`
	CustomerEmail string `gorm:"size:100" json:"customer_email"`
	CustomerPhone string `gorm:"size:20" json:"customer_phone"`
	Notes         string `gorm:"size:255" json:"notes"`

	BookingLinkID *uint `json:"booking_link_id"`

	ConfirmedAt *time.Time `json:"confirmed_at"`
	CancelledAt *time.Time `json:"cancelled_at"`

	Services  []BookingService  `gorm:"constraint:OnDelete:CASCADE;" json:"services"`
	Modifiers []BookingModifier `gorm:"constraint:OnDelete:CASCADE;" json:"modifiers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Itens da reserva com valores congelados no momento da criação;
// mudanças posteriores no serviço não alteram reservas antigas.
type BookingService struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	PriceAtBooking    float64 `json:"price_at_booking"`
	DurationAtBooking int     `json:"duration_at_booking"`

	CreatedAt time.Time `json:"created_at"`
}

type BookingModifier struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	BookingID uint `gorm:"index" json:"booking_id"`

	ServiceModifierID uint            `json:"service_modifier_id"`
	ServiceModifier   ServiceModifier `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service_modifier"`

	AppliedDuration int     `json:"applied_duration"`
	AppliedPrice    float64 `json:"applied_price"`

	CreatedAt time.Time `json:"created_at"`
}
