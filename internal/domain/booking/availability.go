package booking

import "time"

type AvailabilityInput struct {
	ShopID       uint
	Date         time.Time
	ServiceIDs   []uint
	ExtraMinutes int
}

type SlotView struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}
