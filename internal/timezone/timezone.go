package timezone

import "time"

// Fuso usado por salões cadastrados sem timezone próprio.
const DefaultTimezone = "America/Sao_Paulo"

// Location resolve um nome IANA, caindo no fuso padrão quando o
// valor gravado no salão estiver vazio ou inválido.
func Location(tz string) *time.Location {
	if tz != "" {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func Now() time.Time {
	return time.Now().In(Location(DefaultTimezone))
}

// NowIn retorna o instante atual já no fuso do salão.
func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}
