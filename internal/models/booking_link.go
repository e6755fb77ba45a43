package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Token opaco que dá acesso público ao fluxo de reserva de um salão.
// MaxUses = 0 significa sem limite de usos.
type BookingLink struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	ShopID uint `gorm:"index" json:"shop_id"`

	Token       string     `gorm:"size:36;uniqueIndex;not null" json:"token"`
	Label       string     `gorm:"size:100" json:"label"`
	ExpiresAt   *time.Time `json:"expires_at"`
	Active      bool       `gorm:"default:true" json:"active"`
	MaxUses     int        `gorm:"default:0" json:"max_uses"`
	CurrentUses int        `gorm:"default:0" json:"current_uses"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *BookingLink) BeforeCreate(tx *gorm.DB) error {
	if l.Token == "" {
		l.Token = uuid.NewString()
	}
	return nil
}

// IsUsable verifica validade, expiração e limite de usos.
func (l *BookingLink) IsUsable(now time.Time) bool {
	if !l.Active {
		return false
	}
	if l.ExpiresAt != nil && !now.Before(*l.ExpiresAt) {
		return false
	}
	if l.MaxUses > 0 && l.CurrentUses >= l.MaxUses {
		return false
	}
	return true
}
