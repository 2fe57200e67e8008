package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Subscriber is an email captured by the newsletter popup.
type Subscriber struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Source    string    `json:"source"` // popup, exit_intent, footer
	CreatedAt time.Time `json:"created_at"`
}

func (s *Subscriber) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
