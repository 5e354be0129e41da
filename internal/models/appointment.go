package models

import "time"

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `json:"client_id"`
	Client   Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"client"`

	SlotID uint `json:"slot_id"`
	Slot   Slot `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"slot"`

	// Serviços são fixados na criação (linhas de appointment_services imutáveis).
	Services []Service `gorm:"many2many:appointment_services;" json:"services"`

	Status string `gorm:"size:20;default:'active'" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
