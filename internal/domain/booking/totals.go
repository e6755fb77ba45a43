package booking

// LineItem é a contribuição de um serviço ou modificador para o total.
// Modificadores usam valores com sinal.
type LineItem struct {
	DurationMin int
	Price       float64
}

type Totals struct {
	DurationMin int
	Price       float64
}

// AggregateTotals soma serviços e deltas de modificadores.
// Função pura: é a única fonte dos totais usados na validação de horário,
// na gravação da reserva e no conteúdo da notificação.
func AggregateTotals(services []LineItem, modifiers []LineItem) Totals {
	var t Totals

	for _, s := range services {
		t.DurationMin += s.DurationMin
		t.Price += s.Price
	}

	for _, m := range modifiers {
		t.DurationMin += m.DurationMin
		t.Price += m.Price
	}

	return t
}
