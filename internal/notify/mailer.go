package notify

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
)

type MailSender struct {
	dialer *gomail.Dialer
	from   string
}

func NewMailSender(cfg *config.Config) *MailSender {
	return &MailSender{
		dialer: gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass),
		from:   cfg.SMTPFrom,
	}
}

var subjects = map[Kind]string{
	KindBookingCreated:   "Recebemos sua reserva",
	KindBookingConfirmed: "Sua reserva foi confirmada",
	KindBookingCancelled: "Sua reserva foi cancelada",
}

func (s *MailSender) Send(p Payload) error {
	if p.CustomerEmail == "" {
		return nil
	}

	subject, ok := subjects[p.Kind]
	if !ok {
		return fmt.Errorf("unknown notification kind %q", p.Kind)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", p.CustomerEmail)
	m.SetHeader("Subject", fmt.Sprintf("%s - %s", p.ShopName, subject))
	m.SetBody("text/html", renderBody(p))

	return s.dialer.DialAndSend(m)
}

// SendCode envia o código de verificação de contato.
func (s *MailSender) SendCode(email string, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Seu código de verificação")
	m.SetBody("text/html", fmt.Sprintf(
		"<p>Use o código <strong>%s</strong> para confirmar seu contato.</p>",
		code,
	))

	return s.dialer.DialAndSend(m)
}

func renderBody(p Payload) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "<p>Olá %s,</p>", p.CustomerName)
	fmt.Fprintf(
		&sb,
		"<p>Reserva em <strong>%s</strong> no dia %s, das %s às %s (%d min).</p>",
		p.ShopName, p.Date, p.StartTime, p.EndTime, p.TotalDurationMin,
	)

	sb.WriteString("<ul>")
	for _, item := range p.Services {
		fmt.Fprintf(&sb, "<li>%s - %d min - R$ %.2f</li>", item.Name, item.DurationMin, item.Price)
	}
	for _, item := range p.Modifiers {
		fmt.Fprintf(&sb, "<li>%s - %+d min - R$ %+.2f</li>", item.Name, item.DurationMin, item.Price)
	}
	sb.WriteString("</ul>")

	fmt.Fprintf(&sb, "<p>Total: R$ %.2f</p>", p.TotalPrice)

	if p.ShopPhone != "" || p.ShopAddress != "" {
		fmt.Fprintf(&sb, "<p>%s · %s</p>", p.ShopPhone, p.ShopAddress)
	}

	return sb.String()
}
