package dto

import "time"

type BookingListDTO struct {
	ID               uint      `json:"id"`
	BookingDate      string    `json:"booking_date"`
	StartTime        time.Time `json:"start_time"`
	EndTime          time.Time `json:"end_time"`
	Status           string    `json:"status"`
	CustomerName     string    `json:"customer_name"`
	TotalDurationMin int       `json:"total_duration_min"`
	TotalPrice       float64   `json:"total_price"`
	Services         []string  `json:"services"`
}
