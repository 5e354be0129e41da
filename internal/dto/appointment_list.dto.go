package dto

import "time"

type AppointmentListDTO struct {
	ID         uint      `json:"id"`
	SlotTime   time.Time `json:"slot_time"`
	Status     string    `json:"status"`
	ClientName string    `json:"client_name"`
	Services   []string  `json:"services"`
}
