package modifier

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

// Evaluation particiona os modificadores ativos de um serviço:
// AutoApplied entram sozinhos no total; Selectable ficam à escolha do cliente.
type Evaluation struct {
	AutoApplied []models.ServiceModifier `json:"auto_applied"`
	Selectable  []models.ServiceModifier `json:"selectable"`
}

// Evaluate classifica cada modificador ativo. Um modificador é auto-aplicado
// quando auto_apply está ligado e a condição está satisfeita no contexto;
// todo o resto permanece selecionável, inclusive condições que não puderam
// ser interpretadas.
func Evaluate(mods []models.ServiceModifier, ctx *CustomerContext, now time.Time) Evaluation {
	ev := Evaluation{
		AutoApplied: []models.ServiceModifier{},
		Selectable:  []models.ServiceModifier{},
	}

	for _, m := range mods {
		if !m.Active {
			continue
		}

		cond, err := ParseCondition(m.ConditionType, m.ConditionValue)
		if err != nil {
			ev.Selectable = append(ev.Selectable, m)
			continue
		}

		if m.AutoApply && cond.Satisfied(ctx, now) {
			ev.AutoApplied = append(ev.AutoApplied, m)
			continue
		}

		ev.Selectable = append(ev.Selectable, m)
	}

	return ev
}
