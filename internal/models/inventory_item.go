package models

import "time"

// Produto de varejo (prateleira), separado do catálogo de serviços.
type InventoryItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name       string `gorm:"size:100;not null" json:"name"`
	SKU        string `gorm:"size:50;index" json:"sku"`
	PriceCents int64  `json:"price_cents"`
	StockQty   int    `gorm:"default:0" json:"stock_qty"`
	Active     bool   `gorm:"default:true" json:"active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
