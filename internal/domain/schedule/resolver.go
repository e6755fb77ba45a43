package schedule

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const DateLayout = "2006-01-02"

// Window é uma faixa aberta de atendimento em instantes absolutos
// no fuso do salão. End pode cair no dia seguinte (bloco que cruza a meia-noite).
type Window struct {
	Start time.Time
	End   time.Time
}

// EffectiveDay é o resultado da agenda resolvida para uma data:
// exceção aplicada sobre os blocos recorrentes.
type EffectiveDay struct {
	Date    time.Time
	IsOpen  bool
	Windows []Window
}

// ResolveDay calcula as janelas efetivas de uma data.
// Exceção presente substitui integralmente os blocos recorrentes:
// fechada ⇒ dia sem janelas; aberta ⇒ somente o horário da exceção.
// Sem exceção, cada bloco do dia vira uma janela independente.
func ResolveDay(
	date time.Time,
	loc *time.Location,
	blocks []models.ScheduleBlock,
	exc *models.ScheduleException,
) EffectiveDay {

	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)

	if exc != nil {
		if exc.IsClosed {
			return EffectiveDay{Date: day, IsOpen: false}
		}

		w, ok := windowOnDate(day, loc, exc.OpenTime, exc.CloseTime)
		if !ok {
			return EffectiveDay{Date: day, IsOpen: false}
		}

		return EffectiveDay{Date: day, IsOpen: true, Windows: []Window{w}}
	}

	weekday := int(day.Weekday())

	var windows []Window
	for _, b := range blocks {
		if b.Weekday != weekday {
			continue
		}
		if w, ok := windowOnDate(day, loc, b.OpenTime, b.CloseTime); ok {
			windows = append(windows, w)
		}
	}

	if len(windows) == 0 {
		return EffectiveDay{Date: day, IsOpen: false}
	}

	sort.Slice(windows, func(i, j int) bool {
		return windows[i].Start.Before(windows[j].Start)
	})

	return EffectiveDay{Date: day, IsOpen: true, Windows: windows}
}

// ResolveRange resolve cada data do intervalo [start, start+days).
// exceptions indexadas por data "YYYY-MM-DD".
func ResolveRange(
	start time.Time,
	days int,
	loc *time.Location,
	blocks []models.ScheduleBlock,
	exceptions map[string]*models.ScheduleException,
) []EffectiveDay {

	out := make([]EffectiveDay, 0, days)
	for i := 0; i < days; i++ {
		date := start.AddDate(0, 0, i)
		exc := exceptions[date.In(loc).Format(DateLayout)]
		out = append(out, ResolveDay(date, loc, blocks, exc))
	}
	return out
}

// windowOnDate ancora "HH:MM" na data, no fuso informado.
// close <= open indica fechamento no dia seguinte; time.Date normaliza
// o dia extra respeitando transições de horário de verão.
func windowOnDate(day time.Time, loc *time.Location, open, close string) (Window, bool) {
	oh, om, ok := parseHM(open)
	if !ok {
		return Window{}, false
	}
	ch, cm, ok := parseHM(close)
	if !ok {
		return Window{}, false
	}

	start := time.Date(day.Year(), day.Month(), day.Day(), oh, om, 0, 0, loc)
	end := time.Date(day.Year(), day.Month(), day.Day(), ch, cm, 0, 0, loc)

	if !end.After(start) {
		end = time.Date(day.Year(), day.Month(), day.Day()+1, ch, cm, 0, 0, loc)
	}

	if !end.After(start) {
		return Window{}, false
	}

	return Window{Start: start, End: end}, true
}

func parseHM(hm string) (hour, min int, ok bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return 0, 0, false
	}
	return t.Hour(), t.Minute(), true
}
