package models

import "time"

// Service é um serviço agendável (corte, massagem, etc.)
type Service struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	SalonID uint `json:"salon_id"`

	Name        string `gorm:"size:100;not null" json:"name"`
	Description string `gorm:"size:255" json:"description"`

	DurationMin     int `json:"duration_min"`
	BufferBeforeMin int `gorm:"default:0" json:"buffer_before_min"`
	BufferAfterMin  int `gorm:"default:0" json:"buffer_after_min"`

	PriceCents int64  `json:"price_cents"`
	Active     bool   `gorm:"default:true" json:"active"`
	Category   string `gorm:"size:50" json:"category"`
	ImageURL   string `gorm:"size:255" json:"image_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalMinutes é o bloco contíguo que o serviço ocupa na agenda:
// duração + buffers, a partir do horário selecionado.
func (s *Service) TotalMinutes() int {
	return s.DurationMin + s.BufferBeforeMin + s.BufferAfterMin
}
