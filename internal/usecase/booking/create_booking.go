package booking

import (
	"context"
	"strings"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/modifier"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/slot"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/notify"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// ======================================================
// PORTS
// ======================================================

// Verifier é o colaborador externo de verificação de contato.
type Verifier interface {
	Check(ctx context.Context, email string, token string) error
}

// Auditor registra eventos sem bloquear o fluxo da reserva.
type Auditor interface {
	Dispatch(ev audit.Event)
}

// Notifier entrega a notificação pronta; falha dele nunca desfaz a reserva.
type Notifier interface {
	Dispatch(p notify.Payload)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ShopID    uint   // fluxo do dono
	LinkToken string // fluxo público via link

	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	BirthDate     *time.Time

	Consent           bool
	VerificationToken string

	Date string // YYYY-MM-DD
	Time string // HH:mm

	ServiceIDs  []uint
	ModifierIDs []uint

	Notes string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo     domain.Repository
	verifier Verifier
	audit    Auditor
	notify   Notifier
}

func NewCreateBooking(
	repo domain.Repository,
	verifier Verifier,
	auditor Auditor,
	notifier Notifier,
) *CreateBooking {
	return &CreateBooking{
		repo:     repo,
		verifier: verifier,
		audit:    auditor,
		notify:   notifier,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateBooking) Execute(
	ctx context.Context,
	in CreateBookingInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// 1. Link de reserva (quando o fluxo é público)
	// --------------------------------------------------
	var link *models.BookingLink
	shopID := in.ShopID

	if in.LinkToken != "" {
		l, err := uc.repo.GetBookingLinkByToken(ctx, in.LinkToken)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_link")
		}
		if !l.IsUsable(timezone.Now()) {
			return nil, httperr.ErrBusiness("invalid_link")
		}
		link = l
		shopID = l.ShopID
	}

	shop, err := uc.repo.GetShopByID(ctx, shopID)
	if err != nil {
		return nil, httperr.ErrBusiness("shop_not_found")
	}

	// --------------------------------------------------
	// 2. Identidade, consentimento e verificação de contato
	// --------------------------------------------------
	name := strings.TrimSpace(in.CustomerName)
	email := strings.ToLower(strings.TrimSpace(in.CustomerEmail))

	if name == "" || email == "" {
		return nil, httperr.ErrBusiness("invalid_request")
	}
	if !in.Consent {
		return nil, httperr.ErrBusiness("consent_required")
	}

	if uc.verifier != nil {
		if err := uc.verifier.Check(ctx, email, in.VerificationToken); err != nil {
			return nil, httperr.ErrBusiness("verification_failed")
		}
	}

	// --------------------------------------------------
	// 3. Data / hora no fuso do salão
	// --------------------------------------------------
	loc := timezone.Location(shop.Timezone)

	start, err := time.ParseInLocation("2006-01-02 15:04", in.Date+" "+in.Time, loc)
	if err != nil {
		return nil, httperr.ErrBusiness("invalid_date_or_time")
	}

	minAdvance := shop.MinAdvanceMinutes
	if minAdvance <= 0 {
		minAdvance = 120
	}

	now := timezone.NowIn(shop.Timezone)
	if start.Before(now.Add(time.Duration(minAdvance) * time.Minute)) {
		return nil, httperr.ErrBusiness("too_soon")
	}

	// --------------------------------------------------
	// 4. Serviços selecionados
	// --------------------------------------------------
	if len(in.ServiceIDs) == 0 {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	services, err := uc.repo.GetServices(ctx, shopID, in.ServiceIDs)
	if err != nil {
		return nil, err
	}
	if len(services) != len(in.ServiceIDs) {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	for _, s := range services {
		if !s.Active {
			return nil, httperr.ErrBusiness("service_not_found")
		}
	}

	// --------------------------------------------------
	// 5. Modificadores: auto-aplicados + selecionados
	// --------------------------------------------------
	applied, err := uc.appliedModifiers(ctx, shopID, email, in)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 6. Totais (mesma conta da validação e da gravação)
	// --------------------------------------------------
	serviceItems := make([]domain.LineItem, 0, len(services))
	for _, s := range services {
		serviceItems = append(serviceItems, domain.LineItem{
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}

	modifierItems := make([]domain.LineItem, 0, len(applied))
	for _, m := range applied {
		modifierItems = append(modifierItems, domain.LineItem{
			DurationMin: m.DurationModifier,
			Price:       m.PriceModifier,
		})
	}

	totals := domain.AggregateTotals(serviceItems, modifierItems)
	if totals.DurationMin <= 0 {
		return nil, httperr.ErrBusiness("invalid_request")
	}

	end := start.Add(time.Duration(totals.DurationMin) * time.Minute)

	// --------------------------------------------------
	// 7. O horário pedido precisa ser um slot disponível
	// --------------------------------------------------
	if err := uc.assertSlotAvailable(ctx, shopID, shop, start, totals.DurationMin); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 8. Cliente (get or create)
	// --------------------------------------------------
	customer, err := uc.repo.GetOrCreateCustomer(
		ctx,
		shopID,
		name,
		strings.TrimSpace(in.CustomerPhone),
		email,
		in.BirthDate,
	)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 9. Gravação atômica: reserva + itens + uso do link
	// --------------------------------------------------
	b := &models.Booking{
		ShopID:      shopID,
		CustomerID:  customer.ID,
		BookingDate: start.Format("2006-01-02"),
		StartTime:   start,
		EndTime:     end,

		TotalDurationMin: totals.DurationMin,
		TotalPrice:       totals.Price,

		Status: string(domain.InitialStatus()),

		CustomerName:  name,
		CustomerEmail: email,
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		Notes:         in.Notes,
	}
	if link != nil {
		b.BookingLinkID = &link.ID
	}

	group := domain.BookingGroup{Booking: b}
	for _, s := range services {
		group.Services = append(group.Services, models.BookingService{
			ServiceID:         s.ID,
			PriceAtBooking:    s.Price,
			DurationAtBooking: s.DurationMin,
		})
	}
	for _, m := range applied {
		group.Modifiers = append(group.Modifiers, models.BookingModifier{
			ServiceModifierID: m.ID,
			AppliedDuration:   m.DurationModifier,
			AppliedPrice:      m.PriceModifier,
		})
	}

	if err := uc.repo.CreateBookingGroup(ctx, group); err != nil {
		if httperr.IsExclusionConflict(err) {
			return nil, httperr.ErrBusiness("persistence_failure")
		}
		return nil, err
	}

	// --------------------------------------------------
	// 10. Auditoria + notificação (fire-and-forget)
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		ShopID:   shopID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	uc.notify.Dispatch(notify.BuildPayload(
		notify.KindBookingCreated,
		shop,
		b,
		payloadServices(services),
		payloadModifiers(applied),
	))

	return b, nil
}

// appliedModifiers resolve o conjunto aplicado: os selecionados pelo cliente
// mais os auto-aplicados cuja condição está satisfeita no contexto.
func (uc *CreateBooking) appliedModifiers(
	ctx context.Context,
	shopID uint,
	email string,
	in CreateBookingInput,
) ([]models.ServiceModifier, error) {

	mods, err := uc.repo.ListModifiersForServices(ctx, in.ServiceIDs)
	if err != nil {
		return nil, err
	}

	custCtx, err := customerContext(ctx, uc.repo, shopID, email, in.BirthDate)
	if err != nil {
		return nil, err
	}

	now := timezone.Now()
	ev := modifier.Evaluate(mods, custCtx, now)

	byID := make(map[uint]models.ServiceModifier, len(mods))
	for _, m := range mods {
		if m.Active {
			byID[m.ID] = m
		}
	}

	applied := make([]models.ServiceModifier, 0, len(ev.AutoApplied)+len(in.ModifierIDs))
	seen := make(map[uint]bool)

	for _, m := range ev.AutoApplied {
		applied = append(applied, m)
		seen[m.ID] = true
	}

	for _, id := range in.ModifierIDs {
		if seen[id] {
			continue
		}
		m, ok := byID[id]
		if !ok {
			return nil, httperr.ErrBusiness("modifier_not_found")
		}
		applied = append(applied, m)
		seen[id] = true
	}

	return applied, nil
}

// assertSlotAvailable refaz a conta de disponibilidade para o horário pedido.
func (uc *CreateBooking) assertSlotAvailable(
	ctx context.Context,
	shopID uint,
	shop *models.Shop,
	start time.Time,
	durationMin int,
) error {

	loc := timezone.Location(shop.Timezone)

	availabilityUC := NewGetAvailability(uc.repo)

	eff, err := availabilityUC.resolveDay(ctx, shopID, start.In(loc), loc)
	if err != nil {
		return err
	}
	if !eff.IsOpen {
		return httperr.ErrBusiness("slot_unavailable")
	}

	bookings, err := availabilityUC.bookedIntervals(ctx, shopID, eff)
	if err != nil {
		return err
	}

	slots := slot.Generate(
		eff.Windows,
		bookings,
		time.Duration(durationMin)*time.Minute,
	)

	s, ok := slot.FindAt(slots, start)
	if !ok || !s.Available {
		return httperr.ErrBusiness("slot_unavailable")
	}

	return nil
}

func payloadServices(services []models.Service) []notify.LineItem {
	items := make([]notify.LineItem, 0, len(services))
	for _, s := range services {
		items = append(items, notify.LineItem{
			Name:        s.Name,
			DurationMin: s.DurationMin,
			Price:       s.Price,
		})
	}
	return items
}

func payloadModifiers(mods []models.ServiceModifier) []notify.LineItem {
	items := make([]notify.LineItem, 0, len(mods))
	for _, m := range mods {
		items = append(items, notify.LineItem{
			Name:        m.Name,
			DurationMin: m.DurationModifier,
			Price:       m.PriceModifier,
		})
	}
	return items
}
