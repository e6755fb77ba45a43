package handlers

import (
	"time"

	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const defaultTimezone = "America/Sao_Paulo"

// resolve o timezone oficial do salão
func locationFromShop(shop *models.Shop) *time.Location {
	if shop != nil && shop.Timezone != "" {
		if loc, err := time.LoadLocation(shop.Timezone); err == nil {
			return loc
		}
	}

	loc, _ := time.LoadLocation(defaultTimezone)
	return loc
}

func nowInShop(shop *models.Shop) time.Time {
	return time.Now().In(locationFromShop(shop))
}

func parseDateInShop(shop *models.Shop, dateStr string) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02",
		dateStr,
		locationFromShop(shop),
	)
}

func parseDateTimeInShop(
	shop *models.Shop,
	dateStr string,
	timeStr string,
) (time.Time, error) {
	return time.ParseInLocation(
		"2006-01-02 15:04",
		dateStr+" "+timeStr,
		locationFromShop(shop),
	)
}
