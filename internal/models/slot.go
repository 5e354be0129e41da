package models

import "time"

// Um horário agendável. Criado pela gestão de agenda e nunca removido:
// reservar/liberar apenas alterna a flag Available.
type Slot struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Timestamp time.Time `gorm:"column:timestamp;index;not null" json:"timestamp"`
	Available bool      `gorm:"default:true" json:"available"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
