package booking

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/modifier"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

// GetServiceModifiers lista os modificadores de um serviço já particionados
// entre auto-aplicados e selecionáveis para o cliente informado.
type GetServiceModifiers struct {
	repo domain.Repository
}

func NewGetServiceModifiers(repo domain.Repository) *GetServiceModifiers {
	return &GetServiceModifiers{repo: repo}
}

func (uc *GetServiceModifiers) Execute(
	ctx context.Context,
	shopID uint,
	serviceID uint,
	customerEmail string,
	birthDate *time.Time,
) (modifier.Evaluation, error) {

	services, err := uc.repo.GetServices(ctx, shopID, []uint{serviceID})
	if err != nil || len(services) == 0 {
		return modifier.Evaluation{}, httperr.ErrBusiness("service_not_found")
	}

	mods, err := uc.repo.ListModifiersForServices(ctx, []uint{serviceID})
	if err != nil {
		return modifier.Evaluation{}, err
	}

	custCtx, err := customerContext(ctx, uc.repo, shopID, customerEmail, birthDate)
	if err != nil {
		return modifier.Evaluation{}, err
	}

	return modifier.Evaluate(mods, custCtx, timezone.Now()), nil
}

// customerContext monta o contexto do cliente a partir do histórico.
// Cliente desconhecido entra com histórico vazio (primeira visita);
// sem e-mail não há contexto nenhum.
func customerContext(
	ctx context.Context,
	repo domain.Repository,
	shopID uint,
	email string,
	birthDate *time.Time,
) (*modifier.CustomerContext, error) {

	if email == "" {
		return nil, nil
	}

	custCtx := &modifier.CustomerContext{
		Tags:      map[string]string{},
		BirthDate: birthDate,
	}

	customer, err := repo.FindCustomerByEmail(ctx, shopID, email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return custCtx, nil
	}

	for _, t := range customer.Tags {
		custCtx.Tags[t.Name] = t.Value
	}
	if custCtx.BirthDate == nil {
		custCtx.BirthDate = customer.BirthDate
	}

	confirmed, err := repo.CountConfirmedBookings(ctx, customer.ID)
	if err != nil {
		return nil, err
	}
	custCtx.ConfirmedBookings = int(confirmed)

	return custCtx, nil
}
