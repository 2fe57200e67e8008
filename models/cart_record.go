package models

import "time"

// CartRecord is the durable slot backing one visitor's cart. The whole line
// list is stored as a single JSON array under the visitor's cart key,
// mirroring the browser-local storage slot the storefront persists to.
// There is no version field; readers must treat unparseable content as an
// empty cart.
type CartRecord struct {
	CartKey   string    `gorm:"primaryKey;size:64" json:"cart_key"`
	Lines     string    `gorm:"type:text" json:"lines"`
	UpdatedAt time.Time `json:"updated_at"`
}
