package cart

import (
	"errors"

	"github.com/Lixing-Zhang/foodie-storefront/internal/models"
)

var (
	ErrLineNotFound    = errors.New("cart line not found")
	ErrInvalidQuantity = errors.New("quantity must be positive")
)

// Cart is a visitor's list of line items
type Cart struct {
	ID    string            `json:"id"`
	Lines []models.CartLine `json:"items"`
}

// New returns an empty cart with the given ID
func New(id string) *Cart {
	return &Cart{ID: id, Lines: []models.CartLine{}}
}

// Add merges line into the cart. An existing line with the same ID has its
// quantity increased, otherwise the line is appended.
func (c *Cart) Add(line models.CartLine) error {
	if line.Quantity < 1 {
		return ErrInvalidQuantity
	}
	for i := range c.Lines {
		if c.Lines[i].ID == line.ID {
			c.Lines[i].Quantity += line.Quantity
			return nil
		}
	}
	c.Lines = append(c.Lines, line)
	return nil
}

// UpdateQuantity sets the quantity of a line. Quantities below 1 remove
// the line instead.
func (c *Cart) UpdateQuantity(id string, quantity int) error {
	if quantity < 1 {
		return c.Remove(id)
	}
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines[i].Quantity = quantity
			return nil
		}
	}
	return ErrLineNotFound
}

// Increment raises a line's quantity by one
func (c *Cart) Increment(id string) error {
	line, ok := c.Line(id)
	if !ok {
		return ErrLineNotFound
	}
	return c.UpdateQuantity(id, line.Quantity+1)
}

// Decrement lowers a line's quantity by one, removing it at zero
func (c *Cart) Decrement(id string) error {
	line, ok := c.Line(id)
	if !ok {
		return ErrLineNotFound
	}
	return c.UpdateQuantity(id, line.Quantity-1)
}

// Remove deletes a line from the cart
func (c *Cart) Remove(id string) error {
	for i := range c.Lines {
		if c.Lines[i].ID == id {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return nil
		}
	}
	return ErrLineNotFound
}

// Line returns the line with the given ID
func (c *Cart) Line(id string) (models.CartLine, bool) {
	for _, l := range c.Lines {
		if l.ID == id {
			return l, true
		}
	}
	return models.CartLine{}, false
}

// ItemCount returns the total number of units across all lines
func (c *Cart) ItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Totals computes the cart's price breakdown
func (c *Cart) Totals() Totals {
	return Compute(c.Lines)
}
