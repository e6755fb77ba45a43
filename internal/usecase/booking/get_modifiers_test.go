package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func modifiersRepo() *fakeRepo {
	return &fakeRepo{
		shop: testShop(),
		services: []models.Service{
			{ID: 1, ShopID: 1, Name: "Corte", DurationMin: 45, Price: 25, Active: true},
		},
		modifiers: []models.ServiceModifier{
			{
				ID: 10, ServiceID: 1, Name: "desconto fidelidade",
				ConditionType: "customer_tag", ConditionValue: `{"tag":"vip"}`,
				PriceModifier: -5, AutoApply: true, Active: true,
			},
			{
				ID: 11, ServiceID: 1, Name: "adicional barba",
				ConditionType:    "manual",
				DurationModifier: 30, PriceModifier: 15, Active: true,
			},
			{
				ID: 12, ServiceID: 1, Name: "brinde primeira visita",
				ConditionType: "first_visit",
				AutoApply:     true, Active: true,
			},
		},
	}
}

func TestGetServiceModifiers_KnownCustomer(t *testing.T) {
	repo := modifiersRepo()
	repo.customer = &models.Customer{
		ID: 7, ShopID: 1, Email: "maria@example.com",
		Tags: []models.CustomerTag{{Name: "vip"}},
	}
	repo.confirmedCount = 4

	uc := NewGetServiceModifiers(repo)

	eval, err := uc.Execute(context.Background(), 1, 1, "maria@example.com", nil)
	require.NoError(t, err)

	// vip auto-aplica; primeira visita não vale com histórico; manual fica à escolha
	require.Len(t, eval.AutoApplied, 1)
	assert.Equal(t, uint(10), eval.AutoApplied[0].ID)

	ids := []uint{}
	for _, m := range eval.Selectable {
		ids = append(ids, m.ID)
	}
	assert.ElementsMatch(t, []uint{11, 12}, ids)
}

func TestGetServiceModifiers_UnknownCustomerCountsAsFirstVisit(t *testing.T) {
	repo := modifiersRepo()

	uc := NewGetServiceModifiers(repo)

	eval, err := uc.Execute(context.Background(), 1, 1, "nova@example.com", nil)
	require.NoError(t, err)

	require.Len(t, eval.AutoApplied, 1)
	assert.Equal(t, uint(12), eval.AutoApplied[0].ID)
}

func TestGetServiceModifiers_NoEmailAutoAppliesNothing(t *testing.T) {
	repo := modifiersRepo()

	uc := NewGetServiceModifiers(repo)

	eval, err := uc.Execute(context.Background(), 1, 1, "", nil)
	require.NoError(t, err)

	assert.Empty(t, eval.AutoApplied)
	assert.Len(t, eval.Selectable, 3)
}

func TestGetServiceModifiers_BirthDateFromRequestWins(t *testing.T) {
	repo := modifiersRepo()
	repo.modifiers = append(repo.modifiers, models.ServiceModifier{
		ID: 13, ServiceID: 1, Name: "atendimento sênior",
		ConditionType: "age_range", ConditionValue: `{"min_age":60}`,
		AutoApply: true, Active: true,
	})

	uc := NewGetServiceModifiers(repo)

	bd := time.Date(1950, 1, 1, 0, 0, 0, 0, time.UTC)
	eval, err := uc.Execute(context.Background(), 1, 1, "nova@example.com", &bd)
	require.NoError(t, err)

	ids := []uint{}
	for _, m := range eval.AutoApplied {
		ids = append(ids, m.ID)
	}
	assert.Contains(t, ids, uint(13))
}

func TestGetServiceModifiers_UnknownService(t *testing.T) {
	repo := modifiersRepo()

	uc := NewGetServiceModifiers(repo)

	_, err := uc.Execute(context.Background(), 1, 42, "", nil)

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
