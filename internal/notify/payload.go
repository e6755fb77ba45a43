package notify

import (
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

type Kind string

const (
	KindBookingCreated   Kind = "booking_created"
	KindBookingConfirmed Kind = "booking_confirmed"
	KindBookingCancelled Kind = "booking_cancelled"
)

type LineItem struct {
	Name        string
	DurationMin int
	Price       float64
}

// Payload é a notificação completa entregue ao despachante: tudo que o
// e-mail precisa, sem voltar ao banco.
type Payload struct {
	Kind Kind

	ShopName    string
	ShopPhone   string
	ShopAddress string

	CustomerName  string
	CustomerEmail string

	Date      string
	StartTime string
	EndTime   string

	TotalDurationMin int
	TotalPrice       float64

	Services  []LineItem
	Modifiers []LineItem
}

// BuildPayload monta a notificação com os itens já em mãos (fluxo de criação,
// antes de existirem associações carregadas).
func BuildPayload(
	kind Kind,
	shop *models.Shop,
	b *models.Booking,
	services []LineItem,
	modifiers []LineItem,
) Payload {
	p := basePayload(kind, shop, b)
	p.Services = services
	p.Modifiers = modifiers
	return p
}

// FromBooking monta a notificação a partir de uma reserva com associações
// carregadas (fluxos de mudança de status).
func FromBooking(kind Kind, shop *models.Shop, b *models.Booking) Payload {
	p := basePayload(kind, shop, b)

	for _, s := range b.Services {
		p.Services = append(p.Services, LineItem{
			Name:        s.Service.Name,
			DurationMin: s.DurationAtBooking,
			Price:       s.PriceAtBooking,
		})
	}
	for _, m := range b.Modifiers {
		p.Modifiers = append(p.Modifiers, LineItem{
			Name:        m.ServiceModifier.Name,
			DurationMin: m.AppliedDuration,
			Price:       m.AppliedPrice,
		})
	}

	return p
}

func basePayload(kind Kind, shop *models.Shop, b *models.Booking) Payload {
	return Payload{
		Kind: kind,

		ShopName:    shop.Name,
		ShopPhone:   shop.Phone,
		ShopAddress: shop.Address,

		CustomerName:  b.CustomerName,
		CustomerEmail: b.CustomerEmail,

		Date:      b.BookingDate,
		StartTime: b.StartTime.Format("15:04"),
		EndTime:   b.EndTime.Format("15:04"),

		TotalDurationMin: b.TotalDurationMin,
		TotalPrice:       b.TotalPrice,
	}
}
