package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// OrderServiceProvider is the authoritative side of checkout. Pricing,
// stock movements and order numbers are decided here, never by the
// client-held cart.
type OrderServiceProvider interface {
	Create(ctx context.Context, userID string, req CreateOrderRequest) (Order, error)
	GetOne(ctx context.Context, id string) (Order, error)
	ListForUser(ctx context.Context, userID string) ([]Order, error)
	ListAll(ctx context.Context) ([]Order, error)
	Cancel(ctx context.Context, id string) (Order, error)
	UpdateStatus(ctx context.Context, id string, status OrderStatus) (Order, error)
}

type OrderService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	ids     UIDHandler
	storage OrderStorage
	books   BookStorage
	users   UserStorage
	queue   Queuer
}

func NewOrderService(logger *zap.Logger, config *Config, clock Clocker, ids UIDHandler,
	storage OrderStorage, books BookStorage, users UserStorage, queue Queuer,
) OrderServiceProvider {
	return &OrderService{
		logger:  logger,
		config:  config,
		clock:   clock,
		ids:     ids,
		storage: storage,
		books:   books,
		users:   users,
		queue:   queue,
	}
}

// Create places an order. Each requested book is checked against the
// live catalog: the current price is snapshotted, the stock must cover
// the requested quantity and is decremented on acceptance. Any failure
// aborts the whole order so the caller keeps its cart for a retry.
func (os *OrderService) Create(ctx context.Context, userID string, req CreateOrderRequest) (Order, error) {
	if len(strings.TrimSpace(req.ShippingAddress)) == 0 {
		return Order{}, missingFieldError("shippingAddress")
	}
	if len(req.Items) == 0 {
		return Order{}, missingFieldError("items")
	}

	user, err := os.users.GetOne(ctx, userID)
	if err != nil {
		return Order{}, err
	}

	id := os.ids.Generate(OrderIDPrefix)
	now := os.clock.Now().UTC()
	order := Order{
		ID:              id,
		OrderNumber:     buildOrderNumber(id),
		UserID:          user.ID,
		Username:        user.Username,
		Status:          OrderStatusPending,
		ShippingAddress: req.ShippingAddress,
		CreatedAt:       now.String(),
		UpdatedAt:       now.String(),
	}

	// First pass only validates and prices. No stock moves until every
	// requested line is accepted, so a rejected order leaves the catalog
	// exactly as it was.
	updated := make([]Book, 0, len(req.Items))
	for _, item := range req.Items {
		if item.Quantity < 1 {
			return Order{}, fmt.Errorf("invalid quantity %d for book %s", item.Quantity, item.BookID)
		}
		book, err := os.books.GetOne(ctx, item.BookID)
		if err != nil {
			return Order{}, err
		}
		if book.Stock < item.Quantity {
			return Order{}, fmt.Errorf("%w for book: %s", ErrInsufficientStock, book.Title)
		}

		subtotal := book.Price * float64(item.Quantity)
		order.Items = append(order.Items, OrderItem{
			BookID:    book.ID,
			BookTitle: book.Title,
			Quantity:  item.Quantity,
			Price:     book.Price,
			Subtotal:  subtotal,
		})
		order.TotalAmount += subtotal

		book.Stock -= item.Quantity
		book.UpdatedAt = now.String()
		updated = append(updated, book)
	}

	if err = os.storage.Add(ctx, order.ID, order); err != nil {
		return Order{}, err
	}

	for i, book := range updated {
		if _, err = os.books.Update(ctx, book.ID, book); err != nil {
			os.abortCreate(ctx, order, updated[:i])
			return Order{}, err
		}
	}

	os.publish(ctx, OrderCreatedQueue, order)
	return order, nil
}

// abortCreate voids an order whose stock movements could not all be
// applied. The decrements already written are put back and the stored
// order is marked cancelled so it never ships.
func (os *OrderService) abortCreate(ctx context.Context, order Order, applied []Book) {
	for i, book := range applied {
		book.Stock += order.Items[i].Quantity
		if _, err := os.books.Update(ctx, book.ID, book); err != nil {
			os.logger.Error("order: create: failed to restore stock for aborted order",
				zap.String("order.id", order.ID), zap.String("book.id", book.ID), zap.Error(err))
		}
	}

	order.Status = OrderStatusCancelled
	order.UpdatedAt = os.clock.Now().UTC().String()
	if _, err := os.storage.Update(ctx, order.ID, order); err != nil {
		os.logger.Error("order: create: failed to void aborted order",
			zap.String("order.id", order.ID), zap.Error(err))
	}
}

// GetOne retrieves an order based on its ID.
func (os *OrderService) GetOne(ctx context.Context, id string) (Order, error) {
	order, err := os.storage.GetOne(ctx, id)
	return order, err
}

// ListForUser retrieves the orders placed by one user.
func (os *OrderService) ListForUser(ctx context.Context, userID string) ([]Order, error) {
	orders, err := os.storage.GetByUser(ctx, userID)
	return orders, err
}

// ListAll retrieves every order. Reserved to admin callers.
func (os *OrderService) ListAll(ctx context.Context) ([]Order, error) {
	orders, err := os.storage.GetAll(ctx)
	return orders, err
}

// Cancel voids an order and puts the purchased stock back into the
// catalog. A delivered order cannot be cancelled anymore.
func (os *OrderService) Cancel(ctx context.Context, id string) (Order, error) {
	order, err := os.storage.GetOne(ctx, id)
	if err != nil {
		return Order{}, err
	}

	if order.Status == OrderStatusDelivered {
		return order, ErrOrderNotCancellable
	}

	now := os.clock.Now().UTC()
	for _, item := range order.Items {
		book, err := os.books.GetOne(ctx, item.BookID)
		if err != nil {
			// the book left the catalog since the purchase, nothing to restore.
			os.logger.Warn("order: cancel: book no longer in catalog",
				zap.String("order.id", order.ID), zap.String("book.id", item.BookID), zap.Error(err))
			continue
		}
		book.Stock += item.Quantity
		book.UpdatedAt = now.String()
		if _, err = os.books.Update(ctx, book.ID, book); err != nil {
			return Order{}, err
		}
	}

	order.Status = OrderStatusCancelled
	order.UpdatedAt = now.String()
	order, err = os.storage.Update(ctx, order.ID, order)
	if err != nil {
		return Order{}, err
	}

	os.publish(ctx, OrderCancelledQueue, order)
	return order, nil
}

// UpdateStatus moves an order to a new lifecycle state. Admin only.
func (os *OrderService) UpdateStatus(ctx context.Context, id string, status OrderStatus) (Order, error) {
	if !status.IsValid() {
		return Order{}, fmt.Errorf("unknown order status: %s", status)
	}

	order, err := os.storage.GetOne(ctx, id)
	if err != nil {
		return Order{}, err
	}

	order.Status = status
	order.UpdatedAt = os.clock.Now().UTC().String()
	order, err = os.storage.Update(ctx, order.ID, order)
	if err != nil {
		return Order{}, err
	}

	os.publish(ctx, OrderStatusQueue, order)
	return order, nil
}

// publish pushes an order event to the given queue. A queue failure
// never fails the order operation itself, it is only logged.
func (os *OrderService) publish(ctx context.Context, qid string, order Order) {
	event := OrderEvent{
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		UserID:      order.UserID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
		At:          os.clock.Now().UTC().UnixNano(),
	}
	if err := os.queue.Push(ctx, qid, event); err != nil {
		os.logger.Error("service: failed to push order event to queue", zap.String("qid", qid), zap.Error(err))
	}
}

// buildOrderNumber derives the customer facing order number from the
// internal order id.
func buildOrderNumber(id string) string {
	raw := strings.TrimPrefix(id, OrderIDPrefix+":")
	raw = strings.ReplaceAll(raw, "-", "")
	if len(raw) > 12 {
		raw = raw[:12]
	}
	return "ORD-" + strings.ToUpper(raw)
}
