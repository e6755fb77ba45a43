package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid confere se o domínio do e-mail existe de fato antes de
// gastarmos um envio de código de verificação: aceita quando há registro MX
// ou, na falta dele, quando o domínio resolve para algum IP.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := strings.ToLower(strings.TrimSpace(email[at+1:]))
	if domain == "" {
		return false
	}

	if mx, err := net.LookupMX(domain); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(domain)
	return err == nil && len(ips) > 0
}
