package models

import "time"

// WorkingWindow é uma janela semanal recorrente de disponibilidade de um
// profissional. Pode haver mais de uma janela por dia (turnos divididos).
// Blocked remove a janela inteira, nunca um recorte parcial.
type WorkingWindow struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	StaffID uint `json:"staff_id"`

	Weekday int `json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"` // HH:mm
	EndTime   string `gorm:"size:5" json:"end_time"`   // HH:mm

	EffectiveFrom  time.Time  `json:"effective_from"`
	EffectiveUntil *time.Time `json:"effective_until"`

	Blocked bool `gorm:"default:false" json:"blocked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
