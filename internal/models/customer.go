package models

import "time"

// Cliente simples, sem login, vinculado ao salão
type Customer struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index" json:"shop_id"`

	Name      string     `gorm:"size:100;not null" json:"name"`
	Phone     string     `gorm:"size:20" json:"phone"`
	Email     string     `gorm:"size:100" json:"email"`
	BirthDate *time.Time `json:"birth_date"`

	Tags []CustomerTag `gorm:"constraint:OnDelete:CASCADE;" json:"tags"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CustomerTag struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index" json:"customer_id"`

	Name  string `gorm:"size:50;not null" json:"name"`
	Value string `gorm:"size:100" json:"value"`

	CreatedAt time.Time `json:"created_at"`
}
