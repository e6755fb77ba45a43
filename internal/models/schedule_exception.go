package models

import "time"

// Exceção pontual de agenda. Quando existe, substitui todos os blocos
// recorrentes daquela data.
type ScheduleException struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index:idx_exceptions_shop_date,unique" json:"shop_id"`

	ExceptionDate string `gorm:"size:10;not null;index:idx_exceptions_shop_date,unique" json:"exception_date"` // YYYY-MM-DD
	IsClosed      bool   `gorm:"default:false" json:"is_closed"`
	OpenTime      string `gorm:"size:5" json:"open_time"`
	CloseTime     string `gorm:"size:5" json:"close_time"`
	Reason        string `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
