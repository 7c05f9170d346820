package domain

import "strings"

// CartItem is one service of a composed appointment, with the price and
// duration captured at composition time.
type CartItem struct {
	ServiceID       int64
	ServiceName     string
	Price           float64
	DurationMinutes int
}

// Cart is an ordered list of services composed into one appointment.
// Cart values are immutable: Add and Remove return a new cart and never
// touch the receiver, so a held cart stays valid.
type Cart struct {
	Items []CartItem
}

// NewCart returns an empty cart.
func NewCart() Cart {
	return Cart{}
}

// BuildCart composes a cart from services in the given order.
func BuildCart(services []*Service) Cart {
	cart := NewCart()
	for _, svc := range services {
		cart = cart.Add(svc)
	}

	return cart
}

// Add returns a new cart with the service appended. The same service may
// be added more than once: each occurrence keeps its own item.
func (c Cart) Add(svc *Service) Cart {
	items := make([]CartItem, 0, len(c.Items)+1)
	items = append(items, c.Items...)
	items = append(items, CartItem{
		ServiceID:       svc.ID,
		ServiceName:     svc.Name,
		Price:           svc.Price,
		DurationMinutes: svc.DurationMinutes,
	})

	return Cart{Items: items}
}

// Remove returns a new cart without the item at index, preserving the
// order of the rest. Returns false if the index is out of range.
func (c Cart) Remove(index int) (Cart, bool) {
	if index < 0 || index >= len(c.Items) {
		return c, false
	}

	items := make([]CartItem, 0, len(c.Items)-1)
	items = append(items, c.Items[:index]...)
	items = append(items, c.Items[index+1:]...)

	return Cart{Items: items}, true
}

// IsEmpty returns true if the cart holds no services.
func (c Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalDurationMinutes returns the summed duration of all items.
func (c Cart) TotalDurationMinutes() int {
	total := 0
	for _, item := range c.Items {
		total += item.DurationMinutes
	}

	return total
}

// TotalPrice returns the summed price of all items.
func (c Cart) TotalPrice() float64 {
	total := 0.0
	for _, item := range c.Items {
		total += item.Price
	}

	return total
}

// Summary returns the service names joined in cart order.
func (c Cart) Summary() string {
	if c.IsEmpty() {
		return ""
	}

	names := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		names = append(names, item.ServiceName)
	}

	return strings.Join(names, ", ")
}
