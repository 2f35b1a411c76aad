package models

import "time"

type Payment struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	AppointmentID *uint `json:"appointment_id"`
	ClientID      *uint `json:"client_id"`

	Method string `gorm:"size:20;not null" json:"method"`
	Status string `gorm:"size:20;default:'pending'" json:"status"`

	AmountCents int64 `json:"amount_cents"`
	TipCents    int64 `gorm:"default:0" json:"tip_cents"`

	Provider    string `gorm:"size:30" json:"provider"`
	ProviderRef string `gorm:"size:100;index" json:"provider_ref"`

	GiftCardID *uint `json:"gift_card_id"`

	FailureReason string `gorm:"size:255" json:"failure_reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
