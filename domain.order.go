package main

import "context"

// OrderStatus represents the lifecycle state of an order.
type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusProcessing OrderStatus = "PROCESSING"
	OrderStatusShipped    OrderStatus = "SHIPPED"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

// IsValid tells if the status is one of the known lifecycle states.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem is one purchased line of an order. Price is the catalog
// price at order time, set by the order service and never by the client.
type OrderItem struct {
	BookID    string  `json:"bookId"`
	BookTitle string  `json:"bookTitle"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
	Subtotal  float64 `json:"subtotal"`
}

// Order represents a placed order entity.
type Order struct {
	ID              string      `json:"id"`
	OrderNumber     string      `json:"orderNumber"`
	UserID          string      `json:"userId"`
	Username        string      `json:"username"`
	Status          OrderStatus `json:"status"`
	ShippingAddress string      `json:"shippingAddress"`
	TotalAmount     float64     `json:"totalAmount"`
	Items           []OrderItem `json:"items"`
	CreatedAt       string      `json:"createdAt"`
	UpdatedAt       string      `json:"updatedAt"`
}

// OrderItemRequest is the only thing a client states about a purchased
// line: which book and how many units. Pricing is resolved server side.
type OrderItemRequest struct {
	BookID   string `json:"bookId"`
	Quantity int    `json:"quantity"`
}

// CreateOrderRequest is the checkout payload handed to the order service.
type CreateOrderRequest struct {
	ShippingAddress string             `json:"shippingAddress"`
	Items           []OrderItemRequest `json:"items"`
}

// OrderStorage defines possible operations on order entity.
type OrderStorage interface {
	Add(ctx context.Context, id string, order Order) error
	GetOne(ctx context.Context, id string) (Order, error)
	Update(ctx context.Context, id string, order Order) (Order, error)
	GetAll(ctx context.Context) ([]Order, error)
	GetByUser(ctx context.Context, userID string) ([]Order, error)
}
