package slot

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/domain/schedule"
)

// GranularityMin é o passo fixo da grade de horários.
const GranularityMin = 30

// DefaultDurationMin é usado quando a consulta não informa serviços.
const DefaultDurationMin = 60

// Interval é o período ocupado por uma reserva já confirmada ou pendente,
// tratado como meio-aberto [Start, End).
type Interval struct {
	Start time.Time
	End   time.Time
}

// Slot é uma candidata de início na grade, com a marcação de disponibilidade
// para a duração solicitada.
type Slot struct {
	Time      time.Time
	Available bool
}

type candidate struct {
	start     time.Time
	windowEnd time.Time
}

// Generate discretiza as janelas do dia em candidatas de 30 em 30 minutos
// e marca cada uma como disponível ou não para a duração pedida.
//
// Uma candidata é disponível quando todas as células necessárias
// (arredondando a duração para cima em múltiplos da grade) cabem na mesma
// janela da candidata e nenhuma célula colide com reserva existente.
// Reservas nunca atravessam o intervalo fechado entre dois blocos.
func Generate(windows []schedule.Window, bookings []Interval, duration time.Duration) []Slot {
	gran := GranularityMin * time.Minute
	if duration <= 0 {
		duration = DefaultDurationMin * time.Minute
	}

	cellsNeeded := int((duration + gran - 1) / gran)
	span := time.Duration(cellsNeeded) * gran

	seen := make(map[int64]bool)
	var cands []candidate

	for _, w := range windows {
		for cur := w.Start; cur.Before(w.End); cur = cur.Add(gran) {
			if seen[cur.Unix()] {
				continue
			}
			seen[cur.Unix()] = true
			cands = append(cands, candidate{start: cur, windowEnd: w.End})
		}
	}

	sort.Slice(cands, func(i, j int) bool {
		return cands[i].start.Before(cands[j].start)
	})

	slots := make([]Slot, 0, len(cands))
	for _, cand := range cands {
		slots = append(slots, Slot{
			Time:      cand.start,
			Available: fits(cand, span, bookings),
		})
	}

	return slots
}

func fits(cand candidate, span time.Duration, bookings []Interval) bool {
	end := cand.start.Add(span)

	if end.After(cand.windowEnd) {
		return false
	}

	for _, b := range bookings {
		if cand.start.Before(b.End) && end.After(b.Start) {
			return false
		}
	}

	return true
}

// FindAt localiza a candidata exatamente no instante pedido.
func FindAt(slots []Slot, at time.Time) (Slot, bool) {
	for _, s := range slots {
		if s.Time.Equal(at) {
			return s, true
		}
	}
	return Slot{}, false
}
