package handlers

import (
	"net/http"
	"sort"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ScheduleHandler struct {
	db *gorm.DB
}

func NewScheduleHandler(db *gorm.DB) *ScheduleHandler {
	return &ScheduleHandler{db: db}
}

type ScheduleBlockConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	OpenTime  string `json:"open_time" binding:"required"`
	CloseTime string `json:"close_time" binding:"required"`
}

type ScheduleUpdateRequest struct {
	Blocks []ScheduleBlockConfig `json:"blocks" binding:"required"`
}

func (h *ScheduleHandler) Get(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var blocks []models.ScheduleBlock
	if err := h.db.
		Where("shop_id = ?", shopID).
		Order("weekday ASC, block_order ASC").
		Find(&blocks).Error; err != nil {

		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed_to_get_schedule"})
		return
	}

	c.JSON(http.StatusOK, blocks)
}

// Update substitui a grade inteira do salão. A grade nova precisa ser
// consistente: horários válidos e blocos do mesmo dia sem sobreposição.
func (h *ScheduleHandler) Update(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req ScheduleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	if err := validateBlocks(req.Blocks); err != "" {
		httperr.BadRequest(c, err, "Grade de horários inválida.")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("shop_id = ?", shopID).
			Delete(&models.ScheduleBlock{}).Error; err != nil {
			return err
		}

		var toCreate []models.ScheduleBlock
		order := map[int]int{}
		for _, b := range req.Blocks {
			toCreate = append(toCreate, models.ScheduleBlock{
				ShopID:     shopID,
				Weekday:    b.Weekday,
				OpenTime:   b.OpenTime,
				CloseTime:  b.CloseTime,
				BlockOrder: order[b.Weekday],
			})
			order[b.Weekday]++
		}

		if len(toCreate) > 0 {
			if err := tx.Create(&toCreate).Error; err != nil {
				return err
			}
		}
		return nil
	})

	if err != nil {
		httperr.Internal(c, "failed_to_save_schedule", "Erro ao salvar grade de horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// validateBlocks devolve o código do erro ou "" quando a grade é válida.
// Um bloco com close <= open cruza a meia-noite e é aceito como último
// bloco do dia.
func validateBlocks(blocks []ScheduleBlockConfig) string {
	type span struct {
		open, close int // minutos desde 00:00; close > 1440 cruza o dia
	}

	byDay := map[int][]span{}

	for _, b := range blocks {
		open, ok1 := parseMinutes(b.OpenTime)
		closeAt, ok2 := parseMinutes(b.CloseTime)
		if !ok1 || !ok2 {
			return "invalid_time_format"
		}

		if closeAt <= open {
			closeAt += 24 * 60
		}

		byDay[b.Weekday] = append(byDay[b.Weekday], span{open, closeAt})
	}

	for _, spans := range byDay {
		sort.Slice(spans, func(i, j int) bool {
			return spans[i].open < spans[j].open
		})

		for i := 1; i < len(spans); i++ {
			if spans[i].open < spans[i-1].close {
				return "overlapping_blocks"
			}
		}
	}

	return ""
}

func parseMinutes(hm string) (int, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}
