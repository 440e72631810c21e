// Package domain holds the per-session cart aggregate. A Cart is owned by a
// single session and is not safe for concurrent use.
package domain

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var ErrInvalidQuantity = errors.New("quantity must be at least 1")

type Supplier struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Location string    `json:"location"`
	Rating   float64   `json:"rating"`
}

type CatalogItem struct {
	ID                uint     `json:"id"`
	Name              string   `json:"name"`
	Price             float64  `json:"price"`
	Unit              string   `json:"unit"`
	AvailableQuantity int      `json:"available_quantity"`
	Category          string   `json:"category"`
	Supplier          Supplier `json:"supplier"`
}

type CartLine struct {
	Item     CatalogItem `json:"item"`
	Quantity int         `json:"quantity"`
}

func (l CartLine) LineTotal() float64 {
	return l.Item.Price * float64(l.Quantity)
}

type OrderLine struct {
	ItemID    uint    `json:"item_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Unit      string  `json:"unit"`
	Price     float64 `json:"price"`
	LineTotal float64 `json:"line_total"`
}

type SupplierOrderGroup struct {
	Supplier Supplier    `json:"supplier"`
	Items    []OrderLine `json:"items"`
	Total    float64     `json:"total"`
}

type SupplierOrder struct {
	SupplierOrderGroup
	Notes string `json:"notes"`
}

// Cart keeps lines in insertion order, at most one per item id.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

func (c *Cart) Add(item CatalogItem, quantity int) error {
	if quantity < 1 {
		return fmt.Errorf("add item %d: %w", item.ID, ErrInvalidQuantity)
	}
	if i := c.index(item.ID); i >= 0 {
		c.Lines[i].Quantity += quantity
		return nil
	}
	c.Lines = append(c.Lines, CartLine{Item: item, Quantity: quantity})
	return nil
}

// UpdateQuantity sets the quantity of an existing line. Non-positive values
// remove the line; unknown ids are ignored.
func (c *Cart) UpdateQuantity(itemID uint, quantity int) {
	if quantity <= 0 {
		c.Remove(itemID)
		return
	}
	if i := c.index(itemID); i >= 0 {
		c.Lines[i].Quantity = quantity
	}
}

func (c *Cart) Remove(itemID uint) {
	if i := c.index(itemID); i >= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

func (c *Cart) Clear() {
	c.Lines = nil
}

func (c *Cart) Line(itemID uint) (CartLine, bool) {
	if i := c.index(itemID); i >= 0 {
		return c.Lines[i], true
	}
	return CartLine{}, false
}

func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

func (c *Cart) TotalItemCount() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

func (c *Cart) TotalValue() float64 {
	var total float64
	for _, l := range c.Lines {
		total += l.LineTotal()
	}
	return total
}

// GroupBySupplier partitions the lines by supplier id. Groups come out in the
// order their supplier was first seen.
func (c *Cart) GroupBySupplier() []SupplierOrderGroup {
	var groups []SupplierOrderGroup
	pos := map[uuid.UUID]int{}

	for _, l := range c.Lines {
		i, ok := pos[l.Item.Supplier.ID]
		if !ok {
			i = len(groups)
			pos[l.Item.Supplier.ID] = i
			groups = append(groups, SupplierOrderGroup{Supplier: l.Item.Supplier})
		}
		total := l.LineTotal()
		groups[i].Items = append(groups[i].Items, OrderLine{
			ItemID:    l.Item.ID,
			Name:      l.Item.Name,
			Quantity:  l.Quantity,
			Unit:      l.Item.Unit,
			Price:     l.Item.Price,
			LineTotal: total,
		})
		groups[i].Total += total
	}
	return groups
}

// Orders builds one outbound order per supplier group without touching the cart.
func (c *Cart) Orders(notes string) []SupplierOrder {
	groups := c.GroupBySupplier()
	orders := make([]SupplierOrder, 0, len(groups))
	for _, g := range groups {
		orders = append(orders, SupplierOrder{SupplierOrderGroup: g, Notes: notes})
	}
	return orders
}

// PlaceOrder returns the supplier orders and empties the cart.
func (c *Cart) PlaceOrder(notes string) []SupplierOrder {
	orders := c.Orders(notes)
	c.Clear()
	return orders
}

func (c *Cart) index(itemID uint) int {
	for i, l := range c.Lines {
		if l.Item.ID == itemID {
			return i
		}
	}
	return -1
}
