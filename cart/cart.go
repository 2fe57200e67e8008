package cart

import (
	"github.com/Tomm10100/el-dorado-ecommerce/analytics"
	"github.com/Tomm10100/el-dorado-ecommerce/models"
)

// Line is one product-with-quantity entry in a cart. The product fields are
// a snapshot captured when the product was first added; later catalog edits
// never change what a line shows or charges.
type Line struct {
	ProductID   uint    `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	Description string  `json:"description"`
	Category    string  `json:"category"`
	Resonance   string  `json:"resonance"`
	Quantity    int     `json:"quantity"`
}

func snapshot(p models.Product) Line {
	return Line{
		ProductID:   p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Image:       p.Image,
		Description: p.Description,
		Category:    p.Category,
		Resonance:   p.Resonance,
		Quantity:    1,
	}
}

// Store holds one visitor's ordered line list. It is constructed per request
// with Load and handed by reference to whoever needs it; there is no ambient
// global instance. Every mutation persists the full line list and then
// notifies subscribers, so badge counts follow mutations instead of polling.
type Store struct {
	key         string
	lines       []Line
	persist     Persistence
	sink        *analytics.Sink
	subscribers []func()
}

// Load rehydrates the cart for key from persistence. A missing or corrupt
// stored value yields an empty cart; rehydration never fails the caller.
func Load(key string, persist Persistence, sink *analytics.Sink) *Store {
	lines, err := persist.Load(key)
	if err != nil {
		lines = nil
	}
	return &Store{key: key, lines: lines, persist: persist, sink: sink}
}

// Key returns the cart key this store is bound to.
func (s *Store) Key() string { return s.key }

// Lines returns a copy of the current line list.
func (s *Store) Lines() []Line {
	out := make([]Line, len(s.lines))
	copy(out, s.lines)
	return out
}

// Line returns the line for productID, if present.
func (s *Store) Line(productID uint) (Line, bool) {
	for _, l := range s.lines {
		if l.ProductID == productID {
			return l, true
		}
	}
	return Line{}, false
}

// IsEmpty reports whether the cart has no lines.
func (s *Store) IsEmpty() bool { return len(s.lines) == 0 }

// Total is the sum of price times quantity over all lines, recomputed fresh
// on every call.
func (s *Store) Total() float64 {
	var total float64
	for _, l := range s.lines {
		total += l.Price * float64(l.Quantity)
	}
	return total
}

// ItemCount is the sum of quantities over all lines.
func (s *Store) ItemCount() int {
	var count int
	for _, l := range s.lines {
		count += l.Quantity
	}
	return count
}

// Subscribe registers fn to run after every successful mutation.
func (s *Store) Subscribe(fn func()) {
	s.subscribers = append(s.subscribers, fn)
}

// AddItem puts one unit of product in the cart. An existing line for the
// product accumulates quantity; otherwise a new line is appended with a
// snapshot of the product and quantity 1. Emits an add_to_cart event.
func (s *Store) AddItem(p models.Product) error {
	found := false
	for i := range s.lines {
		if s.lines[i].ProductID == p.ID {
			s.lines[i].Quantity++
			found = true
			break
		}
	}
	if !found {
		s.lines = append(s.lines, snapshot(p))
	}

	if err := s.save(); err != nil {
		return err
	}

	s.sink.Track(analytics.Event{
		Name:    analytics.EventAddToCart,
		CartKey: s.key,
		Value:   p.Price,
		Items: []analytics.Item{
			{ProductID: p.ID, Name: p.Name, Price: p.Price, Quantity: 1},
		},
	})
	return nil
}

// RemoveItem deletes the line for productID. Removing an absent product is a
// no-op, not an error.
func (s *Store) RemoveItem(productID uint) error {
	kept := s.lines[:0]
	for _, l := range s.lines {
		if l.ProductID != productID {
			kept = append(kept, l)
		}
	}
	if len(kept) == len(s.lines) {
		return nil
	}
	s.lines = kept
	return s.save()
}

// UpdateQuantity sets the line's quantity, clamped to a minimum of 1.
// Removal is an explicit, separate operation and never a side effect of a
// quantity reaching zero. Updating an absent product is a no-op.
func (s *Store) UpdateQuantity(productID uint, quantity int) error {
	for i := range s.lines {
		if s.lines[i].ProductID == productID {
			if quantity < 1 {
				quantity = 1
			}
			s.lines[i].Quantity = quantity
			return s.save()
		}
	}
	return nil
}

// Clear empties the cart.
func (s *Store) Clear() error {
	s.lines = nil
	return s.save()
}

func (s *Store) save() error {
	if err := s.persist.Save(s.key, s.lines); err != nil {
		return err
	}
	for _, fn := range s.subscribers {
		fn()
	}
	return nil
}
