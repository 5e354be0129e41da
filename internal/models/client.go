package models

import "time"

// Cliente do WhatsApp, identificado pelo endereço do canal
// (ex: whatsapp:+5511999999999). Sem login.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name    string `gorm:"size:100;not null" json:"name"`
	Address string `gorm:"size:100;uniqueIndex;not null" json:"address"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
