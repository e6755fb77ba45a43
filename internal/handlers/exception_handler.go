package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type ExceptionHandler struct {
	db *gorm.DB
}

func NewExceptionHandler(db *gorm.DB) *ExceptionHandler {
	return &ExceptionHandler{db: db}
}

type UpsertExceptionRequest struct {
	Date      string `json:"date" binding:"required"` // YYYY-MM-DD
	IsClosed  bool   `json:"is_closed"`
	OpenTime  string `json:"open_time"`
	CloseTime string `json:"close_time"`
	Reason    string `json:"reason"`
}

func (h *ExceptionHandler) List(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	q := h.db.Where("shop_id = ?", shopID)

	if from := c.Query("from"); from != "" {
		q = q.Where("exception_date >= ?", from)
	}
	if to := c.Query("to"); to != "" {
		q = q.Where("exception_date <= ?", to)
	}

	var exceptions []models.ScheduleException
	if err := q.
		Order("exception_date ASC").
		Find(&exceptions).Error; err != nil {

		httperr.Internal(c, "failed_to_list_exceptions", "Erro ao listar exceções.")
		return
	}

	c.JSON(http.StatusOK, exceptions)
}

// Upsert grava a exceção da data; a última gravação de cada data vence.
func (h *ExceptionHandler) Upsert(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req UpsertExceptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	if !req.IsClosed {
		if _, ok := parseMinutes(req.OpenTime); !ok {
			httperr.BadRequest(c, "invalid_time_format", "Horário de abertura inválido.")
			return
		}
		if _, ok := parseMinutes(req.CloseTime); !ok {
			httperr.BadRequest(c, "invalid_time_format", "Horário de fechamento inválido.")
			return
		}
	}

	exc := models.ScheduleException{
		ShopID:        shopID,
		ExceptionDate: req.Date,
		IsClosed:      req.IsClosed,
		OpenTime:      req.OpenTime,
		CloseTime:     req.CloseTime,
		Reason:        req.Reason,
	}

	if err := h.db.
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "shop_id"}, {Name: "exception_date"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"is_closed", "open_time", "close_time", "reason", "updated_at",
			}),
		}).
		Create(&exc).Error; err != nil {

		httperr.Internal(c, "failed_to_save_exception", "Erro ao salvar exceção.")
		return
	}

	c.JSON(http.StatusOK, exc)
}

func (h *ExceptionHandler) Delete(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)
	date := c.Param("date")

	res := h.db.
		Where("shop_id = ? AND exception_date = ?", shopID, date).
		Delete(&models.ScheduleException{})

	if res.Error != nil {
		httperr.Internal(c, "failed_to_delete_exception", "Erro ao remover exceção.")
		return
	}
	if res.RowsAffected == 0 {
		httperr.NotFound(c, "exception_not_found", "Exceção não encontrada.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
