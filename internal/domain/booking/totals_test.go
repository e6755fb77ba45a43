package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateTotals(t *testing.T) {
	t.Run("services plus signed modifier deltas", func(t *testing.T) {
		services := []LineItem{
			{DurationMin: 45, Price: 25.0},
		}
		modifiers := []LineItem{
			{DurationMin: 15, Price: 10.0},
		}

		got := AggregateTotals(services, modifiers)

		assert.Equal(t, 60, got.DurationMin)
		assert.Equal(t, 35.0, got.Price)
	})

	t.Run("negative modifiers reduce the total", func(t *testing.T) {
		services := []LineItem{
			{DurationMin: 30, Price: 50.0},
			{DurationMin: 60, Price: 80.0},
		}
		modifiers := []LineItem{
			{DurationMin: -15, Price: -20.0},
		}

		got := AggregateTotals(services, modifiers)

		assert.Equal(t, 75, got.DurationMin)
		assert.Equal(t, 110.0, got.Price)
	})

	t.Run("empty input totals zero", func(t *testing.T) {
		got := AggregateTotals(nil, nil)

		assert.Equal(t, 0, got.DurationMin)
		assert.Equal(t, 0.0, got.Price)
	})

	t.Run("same input always yields same totals", func(t *testing.T) {
		services := []LineItem{{DurationMin: 45, Price: 25.0}}
		modifiers := []LineItem{{DurationMin: 15, Price: 10.0}}

		first := AggregateTotals(services, modifiers)
		second := AggregateTotals(services, modifiers)

		assert.Equal(t, first, second)
	})
}
