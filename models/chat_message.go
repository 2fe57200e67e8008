package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ChatMessage is one turn of a support chatbot conversation, kept per cart
// key so a visitor's history survives page reloads.
type ChatMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CartKey   string    `gorm:"size:64;not null;index" json:"cart_key"`
	Sender    string    `gorm:"not null" json:"sender"` // user, bot
	Text      string    `gorm:"type:text;not null" json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

func (m *ChatMessage) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
