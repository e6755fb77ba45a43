package models

import "time"

// Ajuste condicional de preço/duração de um serviço.
// ConditionValue guarda o parâmetro da condição em JSON
// (ex: {"tag":"vip"} ou {"min_age":60,"max_age":150}).
type ServiceModifier struct {
	ID        uint    `gorm:"primaryKey" json:"id"`
	ServiceID uint    `gorm:"index" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"service"`

	Name          string `gorm:"size:100;not null" json:"name"`
	ConditionType string `gorm:"size:20;not null" json:"condition_type"` // manual | customer_tag | age_range | first_visit
	ConditionValue string `gorm:"type:text" json:"condition_value"`

	DurationModifier int     `json:"duration_modifier"` // minutos, com sinal
	PriceModifier    float64 `json:"price_modifier"`

	AutoApply bool `gorm:"default:false" json:"auto_apply"`
	Active    bool `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
