package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry. The cart never mutates products; cart lines
// carry their own snapshot of these fields taken at add-time.
type Product struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;index" json:"name"`
	Price       float64        `gorm:"not null" json:"price"`
	Image       string         `json:"image"`
	Description string         `gorm:"type:text" json:"description"`
	Category    string         `gorm:"index" json:"category"` // pendant, chain, bracelet
	Resonance   string         `json:"resonance"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
