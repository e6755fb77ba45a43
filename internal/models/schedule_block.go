package models

import "time"

// Bloco recorrente de funcionamento. Vários blocos por dia são permitidos
// (ex: manhã e noite); close_time <= open_time indica fechamento no dia seguinte.
type ScheduleBlock struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index" json:"shop_id"`

	Weekday    int    `gorm:"not null" json:"weekday"` // 0=domingo .. 6=sábado
	OpenTime   string `gorm:"size:5;not null" json:"open_time"`
	CloseTime  string `gorm:"size:5;not null" json:"close_time"`
	BlockOrder int    `gorm:"default:0" json:"block_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
