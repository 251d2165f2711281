// Package cart implements the per-session cart ledger.
package cart

import (
	"sync"

	"artisan/internal/models"
)

// Line pairs a catalog product with a quantity of at least one.
type Line struct {
	Product  *models.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Subtotal is price times quantity for the line.
func (l Line) Subtotal() float64 {
	return l.Product.Price * float64(l.Quantity)
}

// Ledger is an insertion-ordered collection of lines, at most one per
// product id. Totals are recomputed on every read.
type Ledger struct {
	mu    sync.RWMutex
	lines []Line
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) indexOf(productID string) int {
	for i, line := range l.lines {
		if line.Product.ID == productID {
			return i
		}
	}
	return -1
}

// AddItem increments the existing line for product by quantity, or appends
// a new line. Non-positive quantities are ignored.
func (l *Ledger) AddItem(product *models.Product, quantity int) {
	if product == nil || quantity <= 0 {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(product.ID); i >= 0 {
		l.lines[i].Quantity += quantity
		return
	}
	l.lines = append(l.lines, Line{Product: product, Quantity: quantity})
}

// UpdateQuantity sets the line quantity to exactly quantity. A quantity of
// zero or less removes the line.
func (l *Ledger) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		l.RemoveItem(productID)
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(productID); i >= 0 {
		l.lines[i].Quantity = quantity
	}
}

// RemoveItem deletes the line for productID if present.
func (l *Ledger) RemoveItem(productID string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if i := l.indexOf(productID); i >= 0 {
		l.lines = append(l.lines[:i], l.lines[i+1:]...)
	}
}

// Subtract takes the quantities in taken out of the ledger, line by line.
// Lines that drop to zero are removed; lines added since taken was read are
// left alone.
func (l *Ledger) Subtract(taken []Line) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for _, t := range taken {
		i := l.indexOf(t.Product.ID)
		if i < 0 {
			continue
		}
		l.lines[i].Quantity -= t.Quantity
		if l.lines[i].Quantity <= 0 {
			l.lines = append(l.lines[:i], l.lines[i+1:]...)
		}
	}
}

func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.lines = nil
}

// Lines returns a copy of the lines in insertion order.
func (l *Ledger) Lines() []Line {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Line, len(l.lines))
	copy(out, l.lines)
	return out
}

func (l *Ledger) Line(productID string) (Line, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if i := l.indexOf(productID); i >= 0 {
		return l.lines[i], true
	}
	return Line{}, false
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.lines)
}

// TotalItems is the sum of all line quantities.
func (l *Ledger) TotalItems() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := 0
	for _, line := range l.lines {
		n += line.Quantity
	}
	return n
}

// TotalPrice is the sum of price times quantity over all lines.
func (l *Ledger) TotalPrice() float64 {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var total float64
	for _, line := range l.lines {
		total += line.Subtotal()
	}
	return total
}
