package models

import "time"

type GiftCard struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Code string `gorm:"size:40;uniqueIndex;not null" json:"code"`

	InitialCents int64 `json:"initial_cents"`
	BalanceCents int64 `json:"balance_cents"`

	Active bool `gorm:"default:true" json:"active"`

	PurchasedByClientID *uint `json:"purchased_by_client_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
