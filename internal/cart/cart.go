// Package cart implements the public shopping cart: an in-memory line
// collection with merge-by-identity adds, stock-ceiling enforcement and
// derived totals. A Cart belongs to one shopper session and is not safe for
// concurrent use.
package cart

import (
	"github.com/varmina/backend/internal/entity"
)

// Cart holds the lines a shopper has selected.
type Cart struct {
	lines []entity.CartLine
}

// New creates an empty cart.
func New() *Cart {
	return &Cart{}
}

// FromLines rebuilds a cart from a stored snapshot.
func FromLines(lines []entity.CartLine) *Cart {
	c := &Cart{lines: make([]entity.CartLine, len(lines))}
	copy(c.lines, lines)
	return c
}

// stockCeiling returns the maximum quantity addable for the selection:
// variant stock when a variant is chosen, else product stock. A negative
// value means inventory is untracked and there is no ceiling.
func stockCeiling(p *entity.Product, v *entity.Variant) int {
	if v != nil {
		return v.Stock
	}
	if p.Stock == nil {
		return -1
	}
	return *p.Stock
}

// AddItem merges the selection into the cart, incrementing quantity by one.
// If the resulting quantity would exceed the applicable stock ceiling the
// cart is left unchanged and entity.ErrCapacityExceeded is returned. The
// ceiling applies to the first add as well.
func (c *Cart) AddItem(p entity.Product, v *entity.Variant) error {
	ceiling := stockCeiling(&p, v)

	variantName := ""
	if v != nil {
		variantName = v.Name
	}

	for i := range c.lines {
		line := &c.lines[i]
		if line.Product.ID == p.ID && line.VariantName() == variantName {
			if ceiling >= 0 && line.Quantity+1 > ceiling {
				return entity.ErrCapacityExceeded
			}
			line.Quantity++
			return nil
		}
	}

	if ceiling == 0 {
		return entity.ErrCapacityExceeded
	}

	c.lines = append(c.lines, entity.CartLine{Product: p, Variant: v, Quantity: 1})
	return nil
}

// RemoveItem deletes the line matching (productID, variantName). No-op when
// no line matches.
func (c *Cart) RemoveItem(productID, variantName string) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID && c.lines[i].VariantName() == variantName {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// UpdateQuantity sets the quantity of the first line for productID directly.
// The engine does not enforce a ceiling here and does not auto-remove on
// non-positive values; treating zero as removal intent is the caller's
// convention.
func (c *Cart) UpdateQuantity(productID string, quantity int) {
	for i := range c.lines {
		if c.lines[i].Product.ID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveLineAt deletes the line at the given position. No-op when out of
// range.
func (c *Cart) RemoveLineAt(i int) {
	if i < 0 || i >= len(c.lines) {
		return
	}
	c.lines = append(c.lines[:i], c.lines[i+1:]...)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.lines = nil
}

// Lines returns a copy of the current lines.
func (c *Cart) Lines() []entity.CartLine {
	out := make([]entity.CartLine, len(c.lines))
	copy(out, c.lines)
	return out
}

// TotalItems is the sum of quantities across all lines.
func (c *Cart) TotalItems() int {
	var total int
	for i := range c.lines {
		total += c.lines[i].Quantity
	}
	return total
}

// TotalPrice is the sum of line subtotals in CLP.
func (c *Cart) TotalPrice() float64 {
	var total float64
	for i := range c.lines {
		total += c.lines[i].Subtotal()
	}
	return total
}
