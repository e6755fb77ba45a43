package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	infraRepo "github.com/BruksfildServices01/salon-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/usecase/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
	"github.com/BruksfildServices01/salon-scheduler/internal/verification"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

type PublicHandler struct {
	db       *gorm.DB
	audit    *audit.Dispatcher
	notify   *notify.Dispatcher
	verifier *verification.Service
}

func NewPublicHandler(
	db *gorm.DB,
	auditDispatcher *audit.Dispatcher,
	notifyDispatcher *notify.Dispatcher,
	verifier *verification.Service,
) *PublicHandler {
	return &PublicHandler{
		db:       db,
		audit:    auditDispatcher,
		notify:   notifyDispatcher,
		verifier: verifier,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateBookingRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	BirthDate     string `json:"birth_date"`

	Consent           bool   `json:"consent"`
	VerificationToken string `json:"verification_token" binding:"required"`

	Date string `json:"date" binding:"required"` // YYYY-MM-DD
	Time string `json:"time" binding:"required"` // HH:mm

	ServiceIDs  []uint `json:"service_ids"`
	ModifierIDs []uint `json:"modifier_ids"`

	Notes string `json:"notes"`
}

type RequestVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type ConfirmVerificationRequest struct {
	Email string `json:"email" binding:"required,email"`
	Code  string `json:"code" binding:"required"`
}

////////////////////////////////////////////////////////
// LINK
////////////////////////////////////////////////////////

// resolveLink carrega o link do token e o salão dono dele.
func (h *PublicHandler) resolveLink(c *gin.Context) (*models.BookingLink, *models.Shop, bool) {
	token := c.Param("token")

	var link models.BookingLink
	if err := h.db.Where("token = ?", token).First(&link).Error; err != nil {
		httperr.NotFound(c, "invalid_link", "Link de agendamento inválido.")
		return nil, nil, false
	}

	var shop models.Shop
	if err := h.db.First(&shop, link.ShopID).Error; err != nil {
		httperr.NotFound(c, "shop_not_found", "Salão não encontrado.")
		return nil, nil, false
	}

	if !link.IsUsable(nowInShop(&shop)) {
		httperr.NotFound(c, "invalid_link", "Link de agendamento expirado ou esgotado.")
		return nil, nil, false
	}

	return &link, &shop, true
}

// GetLinkInfo devolve o salão e os serviços ativos para montar o fluxo público.
func (h *PublicHandler) GetLinkInfo(c *gin.Context) {
	_, shop, ok := h.resolveLink(c)
	if !ok {
		return
	}

	var services []models.Service
	if err := h.db.
		Where("shop_id = ? AND active = true", shop.ID).
		Order("id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"shop": gin.H{
			"name":     shop.Name,
			"phone":    shop.Phone,
			"address":  shop.Address,
			"timezone": shop.Timezone,
		},
		"services": services,
	})
}

////////////////////////////////////////////////////////
// MODIFIERS
////////////////////////////////////////////////////////

func (h *PublicHandler) ServiceModifiers(c *gin.Context) {
	_, shop, ok := h.resolveLink(c)
	if !ok {
		return
	}

	serviceIDs := parseUintList(c.Param("serviceId"))
	if len(serviceIDs) != 1 {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewGetServiceModifiers(repo)

	eval, err := uc.Execute(
		c.Request.Context(),
		shop.ID,
		serviceIDs[0],
		c.Query("email"),
		parseBirthDate(c.Query("birth_date")),
	)

	if err != nil {
		if httperr.IsBusiness(err, "service_not_found") {
			httperr.NotFound(c, "service_not_found", "Serviço não encontrado.")
			return
		}
		httperr.Internal(c, "failed_to_list_modifiers", "Erro ao listar modificadores.")
		return
	}

	c.JSON(http.StatusOK, eval)
}

////////////////////////////////////////////////////////
// AVAILABILITY (REUSO TOTAL DO USE CASE)
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	_, shop, ok := h.resolveLink(c)
	if !ok {
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "missing_date", "Data obrigatória.")
		return
	}

	date, err := parseDateInShop(shop, dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewGetAvailability(repo)

	slots, err := uc.Execute(
		c.Request.Context(),
		domain.AvailabilityInput{
			ShopID:       shop.ID,
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

////////////////////////////////////////////////////////
// VERIFICAÇÃO DE CONTATO
////////////////////////////////////////////////////////

func (h *PublicHandler) RequestVerification(c *gin.Context) {
	_, _, ok := h.resolveLink(c)
	if !ok {
		return
	}

	var req RequestVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "E-mail obrigatório.")
		return
	}

	if !validators.IsEmailDomainValid(req.Email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	if err := h.verifier.RequestCode(c.Request.Context(), req.Email); err != nil {
		httperr.Internal(c, "failed_to_send_code", "Erro ao enviar código de verificação.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "code_sent"})
}

func (h *PublicHandler) ConfirmVerification(c *gin.Context) {
	_, _, ok := h.resolveLink(c)
	if !ok {
		return
	}

	var req ConfirmVerificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "E-mail e código obrigatórios.")
		return
	}

	token, err := h.verifier.Verify(c.Request.Context(), req.Email, req.Code)
	if err != nil {
		httperr.Unauthorized(c, "verification_failed", "Código inválido ou expirado.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"verification_token": token})
}

////////////////////////////////////////////////////////
// CREATE BOOKING (PÚBLICO)
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateBooking(c *gin.Context) {
	token := c.Param("token")

	var req PublicCreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	repo := infraRepo.NewBookingGormRepository(h.db)
	uc := booking.NewCreateBooking(repo, h.verifier, h.audit, h.notify)

	b, err := uc.Execute(
		c.Request.Context(),
		booking.CreateBookingInput{
			LinkToken:         token,
			CustomerName:      req.CustomerName,
			CustomerPhone:     req.CustomerPhone,
			CustomerEmail:     req.CustomerEmail,
			BirthDate:         parseBirthDate(req.BirthDate),
			Consent:           req.Consent,
			VerificationToken: req.VerificationToken,
			Date:              req.Date,
			Time:              req.Time,
			ServiceIDs:        req.ServiceIDs,
			ModifierIDs:       req.ModifierIDs,
			Notes:             req.Notes,
		},
	)

	if err != nil {
		mapCreateErrors(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":           b.ID,
		"booking_date": b.BookingDate,
		"start_time":   b.StartTime,
		"end_time":     b.EndTime,
		"status":       b.Status,
		"total_price":  b.TotalPrice,
	})
}
