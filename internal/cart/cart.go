// Package cart models a shopping cart as an immutable value: every operation
// returns a new cart and persistence is left to a Store.
package cart

// StorageKey is the fixed key the cart is persisted under.
const StorageKey = "kwaMugishaCart"

// Product is the product data copied into a cart line.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Item is one cart line.
type Item struct {
	Product
	Quantity int `json:"quantity"`
}

// Cart is an ordered list of lines, at most one per product id.
type Cart struct {
	Items []Item
}

// Add returns a cart with one more unit of p.
func (c Cart) Add(p Product) Cart {
	items := make([]Item, 0, len(c.Items)+1)
	found := false
	for _, it := range c.Items {
		if it.ID == p.ID {
			it.Quantity++
			found = true
		}
		items = append(items, it)
	}
	if !found {
		items = append(items, Item{Product: p, Quantity: 1})
	}
	return Cart{Items: items}
}

// Remove returns a cart without the line for id.
func (c Cart) Remove(id string) Cart {
	items := make([]Item, 0, len(c.Items))
	for _, it := range c.Items {
		if it.ID != id {
			items = append(items, it)
		}
	}
	return Cart{Items: items}
}

// Clear returns an empty cart.
func (c Cart) Clear() Cart { return Cart{Items: []Item{}} }

// Total is the sum of price × quantity.
func (c Cart) Total() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.Price * int64(it.Quantity)
	}
	return total
}

// Count is the number of units in the cart.
func (c Cart) Count() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}
