package dto

import "time"

type AppointmentListDTO struct {
	ID          string    `json:"id"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	DurationMin int       `json:"duration_min"`
	Status      string    `json:"status"`
	ClientName  string    `json:"client_name"`
	ProductName string    `json:"product_name"`
}
