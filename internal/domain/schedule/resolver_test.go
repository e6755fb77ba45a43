package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

func mustLoc(t *testing.T, name string) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation(name)
	require.NoError(t, err)
	return loc
}

func TestResolveDay_RecurringBlocks(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")

	day := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	weekday := int(day.Weekday())

	blocks := []models.ScheduleBlock{
		{Weekday: weekday, OpenTime: "14:00", CloseTime: "18:00", BlockOrder: 1},
		{Weekday: weekday, OpenTime: "09:00", CloseTime: "12:00", BlockOrder: 0},
		{Weekday: (weekday + 1) % 7, OpenTime: "08:00", CloseTime: "20:00"},
	}

	eff := ResolveDay(day, loc, blocks, nil)

	require.True(t, eff.IsOpen)
	require.Len(t, eff.Windows, 2)

	// janelas ordenadas por início, só do weekday pedido
	assert.Equal(t, time.Date(2026, 9, 15, 9, 0, 0, 0, loc), eff.Windows[0].Start)
	assert.Equal(t, time.Date(2026, 9, 15, 12, 0, 0, 0, loc), eff.Windows[0].End)
	assert.Equal(t, time.Date(2026, 9, 15, 14, 0, 0, 0, loc), eff.Windows[1].Start)
	assert.Equal(t, time.Date(2026, 9, 15, 18, 0, 0, 0, loc), eff.Windows[1].End)
}

func TestResolveDay_NoBlocksMeansClosed(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)

	eff := ResolveDay(day, loc, nil, nil)

	assert.False(t, eff.IsOpen)
	assert.Empty(t, eff.Windows)
}

func TestResolveDay_ExceptionOverridesBlocks(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	weekday := int(day.Weekday())

	blocks := []models.ScheduleBlock{
		{Weekday: weekday, OpenTime: "09:00", CloseTime: "12:00"},
		{Weekday: weekday, OpenTime: "14:00", CloseTime: "18:00"},
	}

	t.Run("closed exception wins even with blocks", func(t *testing.T) {
		exc := &models.ScheduleException{
			ExceptionDate: "2026-09-15",
			IsClosed:      true,
		}

		eff := ResolveDay(day, loc, blocks, exc)

		assert.False(t, eff.IsOpen)
		assert.Empty(t, eff.Windows)
	})

	t.Run("open exception replaces all blocks", func(t *testing.T) {
		exc := &models.ScheduleException{
			ExceptionDate: "2026-09-15",
			OpenTime:      "10:00",
			CloseTime:     "16:00",
		}

		eff := ResolveDay(day, loc, blocks, exc)

		require.True(t, eff.IsOpen)
		require.Len(t, eff.Windows, 1)
		assert.Equal(t, time.Date(2026, 9, 15, 10, 0, 0, 0, loc), eff.Windows[0].Start)
		assert.Equal(t, time.Date(2026, 9, 15, 16, 0, 0, 0, loc), eff.Windows[0].End)
	})

	t.Run("resolution is idempotent", func(t *testing.T) {
		exc := &models.ScheduleException{
			ExceptionDate: "2026-09-15",
			OpenTime:      "10:00",
			CloseTime:     "16:00",
		}

		first := ResolveDay(day, loc, blocks, exc)
		second := ResolveDay(day, loc, blocks, exc)

		assert.Equal(t, first, second)
	})
}

func TestResolveDay_CrossMidnightBlock(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	weekday := int(day.Weekday())

	blocks := []models.ScheduleBlock{
		{Weekday: weekday, OpenTime: "20:00", CloseTime: "02:00"},
	}

	eff := ResolveDay(day, loc, blocks, nil)

	require.True(t, eff.IsOpen)
	require.Len(t, eff.Windows, 1)

	assert.Equal(t, time.Date(2026, 9, 15, 20, 0, 0, 0, loc), eff.Windows[0].Start)
	assert.Equal(t, time.Date(2026, 9, 16, 2, 0, 0, 0, loc), eff.Windows[0].End)
}

func TestResolveDay_InvalidTimesAreIgnored(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	day := time.Date(2026, 9, 15, 0, 0, 0, 0, loc)
	weekday := int(day.Weekday())

	blocks := []models.ScheduleBlock{
		{Weekday: weekday, OpenTime: "9h", CloseTime: "12:00"},
	}

	eff := ResolveDay(day, loc, blocks, nil)

	assert.False(t, eff.IsOpen)
}

func TestResolveRange_AppliesExceptionPerDate(t *testing.T) {
	loc := mustLoc(t, "America/Sao_Paulo")
	start := time.Date(2026, 9, 14, 0, 0, 0, 0, loc)

	var blocks []models.ScheduleBlock
	for wd := 0; wd < 7; wd++ {
		blocks = append(blocks, models.ScheduleBlock{
			Weekday: wd, OpenTime: "09:00", CloseTime: "18:00",
		})
	}

	exceptions := map[string]*models.ScheduleException{
		"2026-09-15": {ExceptionDate: "2026-09-15", IsClosed: true},
	}

	days := ResolveRange(start, 3, loc, blocks, exceptions)

	require.Len(t, days, 3)
	assert.True(t, days[0].IsOpen)
	assert.False(t, days[1].IsOpen)
	assert.True(t, days[2].IsOpen)
}
