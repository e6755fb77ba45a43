package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
)

// ======================================================
// HANDLER
// ======================================================

type BookingHandler struct {
	db     *gorm.DB
	audit  *audit.Dispatcher
	notify *notify.Dispatcher
}

func NewBookingHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
) *BookingHandler {
	return &BookingHandler{
		db:     db,
		audit:  auditDispatcher,
		notify: notifyDispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	BirthDate     string `json:"birth_date"` // YYYY-MM-DD, opcional

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	ServiceIDs  []uint `json:"service_ids"`
	ModifierIDs []uint `json:"modifier_ids"`

	Notes string `json:"notes"`
}

// ======================================================
// HELPERS
// ======================================================

func parseUintList(raw string) []uint {
	if raw == "" {
		return nil
	}

	var out []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			continue
		}
		out = append(out, uint(v))
	}
	return out
}

// parseExtraMinutes lê o acréscimo opcional de duração da consulta de
// horários. Valores ausentes, inválidos ou negativos valem zero.
func parseExtraMinutes(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseBirthDate(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &t
}

// mapCreateErrors traduz os erros de negócio da criação para HTTP.
func mapCreateErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "invalid_link"):
		httperr.NotFound(c, "invalid_link", "Link de agendamento inválido ou esgotado.")

	case httperr.IsBusiness(err, "shop_not_found"):
		httperr.NotFound(c, "shop_not_found", "Salão não encontrado.")

	case httperr.IsBusiness(err, "invalid_request"):
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")

	case httperr.IsBusiness(err, "consent_required"):
		httperr.BadRequest(c, "consent_required", "É preciso aceitar os termos para agendar.")

	case httperr.IsBusiness(err, "verification_failed"):
		httperr.Unauthorized(c, "verification_failed", "Verificação de contato inválida ou expirada.")

	case httperr.IsBusiness(err, "invalid_date_or_time"):
		httperr.BadRequest(c, "invalid_date_or_time", "Data ou hora inválida.")

	case httperr.IsBusiness(err, "too_soon"):
		httperr.BadRequest(c, "too_soon", "Horário abaixo da antecedência mínima.")

	case httperr.IsBusiness(err, "service_not_found"):
		httperr.BadRequest(c, "service_not_found", "Serviço não encontrado.")

	case httperr.IsBusiness(err, "modifier_not_found"):
		httperr.BadRequest(c, "modifier_not_found", "Modificador não encontrado.")

	case httperr.IsBusiness(err, "slot_unavailable"):
		httperr.Conflict(c, "slot_unavailable", "Horário indisponível.")

	case httperr.IsBusiness(err, "persistence_failure"):
		httperr.Conflict(c, "persistence_failure", "Não foi possível gravar a reserva; tente outro horário.")

	default:
		httperr.Internal(c, "failed_to_create_booking", "Erro ao criar reserva.")
	}
}

// ======================================================
// AVAILABILITY (DONO)
// ======================================================

func (h *BookingHandler) Availability(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Salão não encontrado.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewGetAvailability(repo)

	slots, err := uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ShopID:       shopID,
			Date:         date,
			ServiceIDs:   parseUintList(c.Query("service_ids")),
			ExtraMinutes: parseExtraMinutes(c.Query("extra_minutes")),
		},
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.BadRequest(c, "service_not_found", "Serviço inválido.")
			return
		}
		httperr.Internal(c, "availability_failed", "Erro ao calcular horários.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// ======================================================
// CREATE (DONO, SEM VERIFICAÇÃO DE CONTATO)
// ======================================================

func (h *BookingHandler) Create(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewCreateBooking(repo, nil, h.audit, h.notify)

	b, err := uc.Execute(
		c.Request.Context(),
		booking.CreateBookingInput{
			ShopID:        shopID,
			CustomerName:  req.CustomerName,
			CustomerPhone: req.CustomerPhone,
			CustomerEmail: req.CustomerEmail,
			BirthDate:     parseBirthDate(req.BirthDate),
			Consent:       true, // registro presencial feito pelo dono
			Date:          req.Date,
			Time:          req.Time,
			ServiceIDs:    req.ServiceIDs,
			ModifierIDs:   req.ModifierIDs,
			Notes:         req.Notes,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, b)
}

// ======================================================
// LIST
// ======================================================

func (h *BookingHandler) ListByDate(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	var shop models.Shop
	if err := h.db.First(&shop, shopID).Error; err != nil {
		httperr.Internal(c, "shop_not_found", "Salão não encontrado.")
		return
	}

	date, err := parseDateInShop(&shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewListBookingsByDate(repo)

	bookings, err := uc.Execute(c.Request.Context(), shopID, date)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar reservas.")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) ListByMonth(c *gin.Context) {
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	yearStr := c.Query("year")
	monthStr := c.Query("month")

	if yearStr == "" || monthStr == "" {
		httperr.BadRequest(c, "missing_year_or_month", "Ano e mês são obrigatórios.")
		return
	}

	year, err := strconv.Atoi(yearStr)
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	month, err := strconv.Atoi(monthStr)
	if err != nil || month < 1 || month > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewListBookingsByMonth(repo)

	bookings, err := uc.Execute(c.Request.Context(), shopID, year, month)
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "Erro ao listar reservas.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":     year,
		"month":    month,
		"bookings": bookings,
	})
}

// ======================================================
// CONFIRM / CANCEL
// ======================================================

func (h *BookingHandler) Confirm(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Reserva inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewConfirmBooking(repo, h.audit, h.notify)

	change, err := uc.Execute(c.Request.Context(), shopID, userID, uint(bookingID))
	if err != nil {
		h.mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, change.Booking)
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID := c.MustGet(middleware.ContextUserID).(uint)
	shopID := c.MustGet(middleware.ContextShopID).(uint)

	bookingID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_booking_id", "Reserva inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewCancelBooking(repo, h.audit, h.notify)

	change, err := uc.Execute(c.Request.Context(), shopID, userID, uint(bookingID))
	if err != nil {
		h.mapStatusErrors(c, err)
		return
	}

	c.JSON(http.StatusOK, change.Booking)
}

func (h *BookingHandler) mapStatusErrors(c *gin.Context, err error) {
	switch {
	case httperr.IsBusiness(err, "booking_not_found"):
		httperr.NotFound(c, "booking_not_found", "Reserva não encontrada.")

	case httperr.IsBusiness(err, "invalid_state"):
		httperr.BadRequest(c, "invalid_state", "Reserva não permite essa transição.")

	default:
		httperr.Internal(c, "failed_to_update_booking", "Erro ao atualizar reserva.")
	}
}
