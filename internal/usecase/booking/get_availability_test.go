package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
)

func testShop() *models.Shop {
	return &models.Shop{
		ID:                1,
		Name:              "Studio Teste",
		Slug:              "studio-teste",
		Timezone:          "America/Sao_Paulo",
		MinAdvanceMinutes: 120,
	}
}

// blocos 09:00-18:00 para todos os dias da semana
func fullWeekBlocks() []models.ScheduleBlock {
	var blocks []models.ScheduleBlock
	for wd := 0; wd < 7; wd++ {
		blocks = append(blocks, models.ScheduleBlock{
			ShopID: 1, Weekday: wd, OpenTime: "09:00", CloseTime: "18:00",
		})
	}
	return blocks
}

func slotMap(slots []domain.SlotView) map[string]bool {
	out := map[string]bool{}
	for _, s := range slots {
		out[s.Time] = s.Available
	}
	return out
}

func TestGetAvailability_OpenDay(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		shop:   shop,
		blocks: fullWeekBlocks(),
		bookings: []models.Booking{
			{
				ID: 1, ShopID: 1, Status: "pending",
				StartTime: time.Date(2030, 6, 18, 10, 0, 0, 0, loc),
				EndTime:   time.Date(2030, 6, 18, 10, 45, 0, 0, loc),
			},
		},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID: 1,
		Date:   date,
	})
	require.NoError(t, err)

	byTime := slotMap(slots)

	// grade de 30 em 30, duração padrão de 60 minutos
	assert.True(t, byTime["09:00"])
	// 09:30 terminaria 10:30, dentro da reserva existente
	assert.False(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["11:00"])
	// último início que comporta 60 minutos antes das 18:00
	assert.True(t, byTime["17:00"])
	assert.False(t, byTime["17:30"])
}

func TestGetAvailability_ServiceDurationDrivesTheGrid(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		shop:   shop,
		blocks: fullWeekBlocks(),
		services: []models.Service{
			{ID: 1, ShopID: 1, Name: "Corte longo", DurationMin: 90, Price: 80, Active: true},
		},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID:     1,
		Date:       date,
		ServiceIDs: []uint{1},
	})
	require.NoError(t, err)

	byTime := slotMap(slots)

	// 90 minutos: 16:30 é o último início possível
	assert.True(t, byTime["16:30"])
	assert.False(t, byTime["17:00"])
	assert.False(t, byTime["17:30"])
}

func TestGetAvailability_ExtraMinutesExtendTheDuration(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		shop:   shop,
		blocks: fullWeekBlocks(),
		services: []models.Service{
			{ID: 1, ShopID: 1, Name: "Corte", DurationMin: 60, Price: 50, Active: true},
		},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID:       1,
		Date:         date,
		ServiceIDs:   []uint{1},
		ExtraMinutes: 30,
	})
	require.NoError(t, err)

	byTime := slotMap(slots)

	// 60 + 30 minutos: o último início recua de 17:00 para 16:30
	assert.True(t, byTime["16:30"])
	assert.False(t, byTime["17:00"])
	assert.False(t, byTime["17:30"])
}

func TestGetAvailability_ClosedExceptionYieldsEmptyList(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		shop:   shop,
		blocks: fullWeekBlocks(),
		exceptions: map[string]*models.ScheduleException{
			"2030-06-18": {ShopID: 1, ExceptionDate: "2030-06-18", IsClosed: true},
		},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID: 1,
		Date:   date,
	})

	require.NoError(t, err)
	assert.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestGetAvailability_ExceptionHoursReplaceBlocks(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		shop:   shop,
		blocks: fullWeekBlocks(),
		exceptions: map[string]*models.ScheduleException{
			"2030-06-18": {
				ShopID: 1, ExceptionDate: "2030-06-18",
				OpenTime: "13:00", CloseTime: "15:00",
			},
		},
	}

	uc := NewGetAvailability(repo)

	slots, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID: 1,
		Date:   date,
	})
	require.NoError(t, err)

	byTime := slotMap(slots)

	_, hasMorning := byTime["09:00"]
	assert.False(t, hasMorning)
	assert.True(t, byTime["13:00"])
	assert.True(t, byTime["14:00"])
	assert.False(t, byTime["14:30"])
}

func TestGetAvailability_UnknownServiceFails(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{shop: shop, blocks: fullWeekBlocks()}

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID:     1,
		Date:       date,
		ServiceIDs: []uint{42},
	})

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestGetAvailability_InactiveServiceFails(t *testing.T) {
	shop := testShop()
	loc := timezone.Location(shop.Timezone)
	date := time.Date(2030, 6, 18, 0, 0, 0, 0, loc)

	repo := &fakeRepo{
		shop:   shop,
		blocks: fullWeekBlocks(),
		services: []models.Service{
			{ID: 1, ShopID: 1, DurationMin: 30, Active: false},
		},
	}

	uc := NewGetAvailability(repo)

	_, err := uc.Execute(context.Background(), domain.AvailabilityInput{
		ShopID:     1,
		Date:       date,
		ServiceIDs: []uint{1},
	})

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}
