package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type LinkHandler struct {
	db *gorm.DB
}

func NewLinkHandler(db *gorm.DB) *LinkHandler {
	return &LinkHandler{db: db}
}

type CreateLinkRequest struct {
	Label     string `json:"label"`
	ExpiresAt string `json:"expires_at"` // RFC 3339, opcional
	MaxUses   int    `json:"max_uses"`   // 0 = ilimitado
}

func (h *LinkHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var links []models.BookingLink
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("created_at DESC").
		Find(&links).Error; err != nil {

		httperr.Internal(c, "failed_to_list_links", "Erro ao listar links.")
		return
	}

	httpresp.List(c, links)
}

func (h *LinkHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if req.MaxUses < 0 {
		httperr.BadRequest(c, "invalid_max_uses", "Limite de usos deve ser zero ou positivo.")
		return
	}

	link := models.BookingLink{
		ShopID:  shopID,
		Label:   req.Label,
		Active:  true,
		MaxUses: req.MaxUses,
	}

	if req.ExpiresAt != "" {
		exp, err := time.Parse(time.RFC3339, req.ExpiresAt)
		if err != nil {
			httperr.BadRequest(c, "invalid_expires_at", "Data de expiração inválida.")
			return
		}
		link.ExpiresAt = &exp
	}

	if err := h.db.Create(&link).Error; err != nil {
		httperr.Internal(c, "failed_to_create_link", "Erro ao criar link.")
		return
	}

	c.JSON(http.StatusCreated, link)
}

// Revoke desativa o link sem apagar o histórico de reservas feitas por ele.
func (h *LinkHandler) Revoke(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	res := h.db.
		Model(&models.BookingLink{}).
		Where("id = ? AND shop_id = ?", c.Param("id"), shopID).
		Update("active", false)

	if res.Error != nil {
		httperr.Internal(c, "failed_to_revoke_link", "Erro ao revogar link.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "link_not_found", "Link não encontrado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
