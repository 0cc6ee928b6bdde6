package models

import "time"

// Order is the backend's view of a placed order. Status is free-form text
// ("Pending", "Shipped", ...), the client only displays and searches it.
type Order struct {
	ID             string      `json:"id"`
	Status         string      `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	Total          float64     `json:"total_amount"`
	Items          []OrderItem `json:"items"`
	TrackingNumber string      `json:"tracking_number,omitempty"`
}

// OrderItem is a single line of an order.
type OrderItem struct {
	ProductID string  `json:"product_id"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// ItemCount returns the total quantity across all lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}
