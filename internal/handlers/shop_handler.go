package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ShopHandler struct {
	db *gorm.DB
}

func NewShopHandler(db *gorm.DB) *ShopHandler {
	return &ShopHandler{db: db}
}

type UpdateShopConfigRequest struct {
	Name              *string `json:"name"`
	Phone             *string `json:"phone"`
	Email             *string `json:"email"`
	Address           *string `json:"address"`
	Timezone          *string `json:"timezone"`
	MinAdvanceMinutes *int    `json:"min_advance_minutes"`
}

func (h *ShopHandler) GetMeShop(c *gin.Context) {
	shopIDVal, _ := c.Get(middleware.ContextShopID)
	shopID := shopIDVal.(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shop_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_shop", "Erro ao buscar dados do salão.")
		return
	}

	httpresp.OK(c, shop)
}

func (h *ShopHandler) UpdateMeShop(c *gin.Context) {
	shopIDVal, _ := c.Get(middleware.ContextShopID)
	shopID := shopIDVal.(uint)

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			httperr.NotFound(c, "shop_not_found", "Salão não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_get_shop", "Erro ao buscar dados do salão.")
		return
	}

	var req UpdateShopConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos na requisição.")
		return
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			httperr.BadRequest(c, "invalid_name", "Nome não pode ser vazio.")
			return
		}
		shop.Name = name
	}
	if req.Phone != nil {
		shop.Phone = *req.Phone
	}
	if req.Email != nil {
		shop.Email = *req.Email
	}
	if req.Address != nil {
		shop.Address = *req.Address
	}

	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if _, err := time.LoadLocation(tz); err != nil {
			httperr.BadRequest(c, "invalid_timezone", "Timezone inválido (use nomes IANA, ex: America/Sao_Paulo).")
			return
		}
		shop.Timezone = tz
	}

	if req.MinAdvanceMinutes != nil {
		if *req.MinAdvanceMinutes < 0 {
			httperr.BadRequest(c, "invalid_min_advance", "Antecedência mínima deve ser zero ou positiva (em minutos).")
			return
		}
		shop.MinAdvanceMinutes = *req.MinAdvanceMinutes
	}

	if err := h.db.Save(&shop).Error; err != nil {
		httperr.Internal(c, "failed_to_update_shop", "Erro ao salvar as configurações do salão.")
		return
	}

	httpresp.OK(c, shop)
}
