package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/modifier"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ModifierHandler struct {
	db *gorm.DB
}

func NewModifierHandler(db *gorm.DB) *ModifierHandler {
	return &ModifierHandler{db: db}
}

// --------- Requests ---------

type CreateModifierRequest struct {
	Name             string  `json:"name" binding:"required"`
	ConditionType    string  `json:"condition_type" binding:"required"`
	ConditionValue   string  `json:"condition_value"`
	DurationModifier int     `json:"duration_modifier"`
	PriceModifier    float64 `json:"price_modifier"`
	AutoApply        bool    `json:"auto_apply"`
}

type UpdateModifierRequest struct {
	Name             *string  `json:"name,omitempty"`
	ConditionType    *string  `json:"condition_type,omitempty"`
	ConditionValue   *string  `json:"condition_value,omitempty"`
	DurationModifier *int     `json:"duration_modifier,omitempty"`
	PriceModifier    *float64 `json:"price_modifier,omitempty"`
	AutoApply        *bool    `json:"auto_apply,omitempty"`
	Active           *bool    `json:"active,omitempty"`
}

// --------- Helpers ---------

func (h *ModifierHandler) ownedService(c *gin.Context) (*models.Service, bool) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	serviceID := c.Param("serviceId")

	var service models.Service
	if err := h.db.
		Where("id = ? AND shop_id = ?", serviceID, shopID).
		First(&service).Error; err != nil {

		c.JSON(http.StatusNotFound, gin.H{"error": "service_not_found"})
		return nil, false
	}
	return &service, true
}

// --------- Handlers ---------

func (h *ModifierHandler) List(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var mods []models.ServiceModifier
	if err := h.db.
		Where("service_id = ?", service.ID).
		Order("id ASC").
		Find(&mods).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_list_modifiers"})
		return
	}

	c.JSON(http.StatusOK, mods)
}

func (h *ModifierHandler) Create(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var req CreateModifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if _, err := modifier.ParseCondition(req.ConditionType, req.ConditionValue); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_condition"})
		return
	}

	mod := models.ServiceModifier{
		ServiceID:        service.ID,
		Name:             req.Name,
		ConditionType:    req.ConditionType,
		ConditionValue:   req.ConditionValue,
		DurationModifier: req.DurationModifier,
		PriceModifier:    req.PriceModifier,
		AutoApply:        req.AutoApply,
		Active:           true,
	}

	if err := h.db.Create(&mod).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_create_modifier"})
		return
	}

	c.JSON(http.StatusCreated, mod)
}

func (h *ModifierHandler) Update(c *gin.Context) {
	service, ok := h.ownedService(c)
	if !ok {
		return
	}

	var mod models.ServiceModifier
	if err := h.db.
		Where("id = ? AND service_id = ?", c.Param("id"), service.ID).
		First(&mod).Error; err != nil {

		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "modifier_not_found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_modifier"})
		return
	}

	var req UpdateModifierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if req.Name != nil {
		mod.Name = *req.Name
	}
	if req.ConditionType != nil {
		mod.ConditionType = *req.ConditionType
	}
	if req.ConditionValue != nil {
		mod.ConditionValue = *req.ConditionValue
	}

	// Reavalia a condição resultante antes de salvar.
	if _, err := modifier.ParseCondition(mod.ConditionType, mod.ConditionValue); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_condition"})
		return
	}

	if req.DurationModifier != nil {
		mod.DurationModifier = *req.DurationModifier
	}
	if req.PriceModifier != nil {
		mod.PriceModifier = *req.PriceModifier
	}
	if req.AutoApply != nil {
		mod.AutoApply = *req.AutoApply
	}
	if req.Active != nil {
		mod.Active = *req.Active
	}

	if err := h.db.Save(&mod).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_update_modifier"})
		return
	}

	c.JSON(http.StatusOK, mod)
}
