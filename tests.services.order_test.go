package main

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newOrderServiceForTest(books *MockBookStorage, orders *MockOrderStorage, users *MockUserStorage, queue *MockQueuer) OrderServiceProvider {
	if users == nil {
		users = &MockUserStorage{
			GetOneFunc: func(ctx context.Context, id string) (User, error) {
				return User{ID: id, Username: "reader"}, nil
			},
		}
	}
	if queue == nil {
		queue = &MockQueuer{
			PushFunc: func(ctx context.Context, qid string, event OrderEvent) error {
				return nil
			},
		}
	}
	return NewOrderService(zap.NewNop(), nil, NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true), orders, books, users, queue)
}

// TestOrderServiceCreate ensures an order snapshots prices and moves stock.
func TestOrderServiceCreate(t *testing.T) {
	t.Run("should price from the catalog and decrement stock", func(t *testing.T) {
		catalog := map[string]Book{
			"b:1": {ID: "b:1", Title: "Dune", Price: 10.00, Stock: 5},
			"b:2": {ID: "b:2", Title: "Emma", Price: 5.00, Stock: 2},
		}
		books := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				book, ok := catalog[id]
				if !ok {
					return Book{}, ErrBookNotFound
				}
				return book, nil
			},
			UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
				catalog[id] = book
				return book, nil
			},
		}
		var stored Order
		orders := &MockOrderStorage{
			AddFunc: func(ctx context.Context, id string, order Order) error {
				stored = order
				return nil
			},
		}
		os := newOrderServiceForTest(books, orders, nil, nil)

		order, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "221B Baker Street, London",
			Items: []OrderItemRequest{
				{BookID: "b:1", Quantity: 2},
				{BookID: "b:2", Quantity: 1},
			},
		})
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusPending, order.Status)
		assert.Equal(t, 25.00, order.TotalAmount)
		assert.Len(t, order.Items, 2)
		assert.Equal(t, 20.00, order.Items[0].Subtotal)
		assert.Equal(t, "ORD-CB8F2136FAE4", order.OrderNumber)
		assert.Equal(t, 3, catalog["b:1"].Stock)
		assert.Equal(t, 1, catalog["b:2"].Stock)
		assert.Equal(t, order.ID, stored.ID)
	})

	t.Run("should reject an order exceeding the stock", func(t *testing.T) {
		books := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				return Book{ID: id, Title: "Dune", Price: 10.00, Stock: 1}, nil
			},
			UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
				return book, nil
			},
		}
		orders := &MockOrderStorage{
			AddFunc: func(ctx context.Context, id string, order Order) error {
				t.Fatal("an out of stock order must not be stored")
				return nil
			},
		}
		os := newOrderServiceForTest(books, orders, nil, nil)

		_, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "221B Baker Street, London",
			Items:           []OrderItemRequest{{BookID: "b:1", Quantity: 2}},
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
	})

	t.Run("should leave all stock untouched when a later item is out of stock", func(t *testing.T) {
		catalog := map[string]Book{
			"b:1": {ID: "b:1", Title: "Dune", Price: 10.00, Stock: 3},
			"b:2": {ID: "b:2", Title: "Emma", Price: 5.00, Stock: 0},
		}
		books := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				book, ok := catalog[id]
				if !ok {
					return Book{}, ErrBookNotFound
				}
				return book, nil
			},
			UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
				t.Fatal("a rejected order must not move any stock")
				return book, nil
			},
		}
		orders := &MockOrderStorage{
			AddFunc: func(ctx context.Context, id string, order Order) error {
				t.Fatal("a rejected order must not be stored")
				return nil
			},
		}
		os := newOrderServiceForTest(books, orders, nil, nil)

		_, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "221B Baker Street, London",
			Items: []OrderItemRequest{
				{BookID: "b:1", Quantity: 2},
				{BookID: "b:2", Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Equal(t, 3, catalog["b:1"].Stock)
		assert.Equal(t, 0, catalog["b:2"].Stock)
	})

	t.Run("should leave all stock untouched when a later item left the catalog", func(t *testing.T) {
		books := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				if id == "b:404" {
					return Book{}, ErrBookNotFound
				}
				return Book{ID: id, Title: "Dune", Price: 10.00, Stock: 5}, nil
			},
			UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
				t.Fatal("a rejected order must not move any stock")
				return book, nil
			},
		}
		orders := &MockOrderStorage{
			AddFunc: func(ctx context.Context, id string, order Order) error {
				t.Fatal("a rejected order must not be stored")
				return nil
			},
		}
		os := newOrderServiceForTest(books, orders, nil, nil)

		_, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "221B Baker Street, London",
			Items: []OrderItemRequest{
				{BookID: "b:1", Quantity: 2},
				{BookID: "b:404", Quantity: 1},
			},
		})
		assert.ErrorIs(t, err, ErrBookNotFound)
	})

	t.Run("should restore applied stock and void the order on a late storage failure", func(t *testing.T) {
		catalog := map[string]Book{
			"b:1": {ID: "b:1", Title: "Dune", Price: 10.00, Stock: 5},
			"b:2": {ID: "b:2", Title: "Emma", Price: 5.00, Stock: 2},
		}
		books := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				return catalog[id], nil
			},
			UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
				if book.ID == "b:2" {
					return Book{}, errors.New("redis write failed")
				}
				catalog[book.ID] = book
				return book, nil
			},
		}
		var voided Order
		orders := &MockOrderStorage{
			AddFunc: func(ctx context.Context, id string, order Order) error {
				return nil
			},
			UpdateFunc: func(ctx context.Context, id string, order Order) (Order, error) {
				voided = order
				return order, nil
			},
		}
		os := newOrderServiceForTest(books, orders, nil, nil)

		_, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "221B Baker Street, London",
			Items: []OrderItemRequest{
				{BookID: "b:1", Quantity: 2},
				{BookID: "b:2", Quantity: 1},
			},
		})
		assert.Error(t, err)
		assert.Equal(t, 5, catalog["b:1"].Stock)
		assert.Equal(t, OrderStatusCancelled, voided.Status)
	})

	t.Run("should reject a blank shipping address", func(t *testing.T) {
		os := newOrderServiceForTest(nil, nil, nil, nil)
		_, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "   ",
			Items:           []OrderItemRequest{{BookID: "b:1", Quantity: 1}},
		})
		assert.EqualError(t, err, "shippingAddress is required")
	})

	t.Run("should reject an order without items", func(t *testing.T) {
		os := newOrderServiceForTest(nil, nil, nil, nil)
		_, err := os.Create(context.Background(), "u:1", CreateOrderRequest{
			ShippingAddress: "221B Baker Street, London",
		})
		assert.EqualError(t, err, "items is required")
	})
}

// TestOrderServiceCancel ensures a cancellation restores the stock.
func TestOrderServiceCancel(t *testing.T) {
	t.Run("should restore the stock and mark the order cancelled", func(t *testing.T) {
		catalog := map[string]Book{
			"b:1": {ID: "b:1", Title: "Dune", Price: 10.00, Stock: 3},
		}
		books := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				return catalog[id], nil
			},
			UpdateFunc: func(ctx context.Context, id string, book Book) (Book, error) {
				catalog[id] = book
				return book, nil
			},
		}
		orders := &MockOrderStorage{
			GetOneFunc: func(ctx context.Context, id string) (Order, error) {
				return Order{
					ID:     id,
					Status: OrderStatusPending,
					Items:  []OrderItem{{BookID: "b:1", Quantity: 2}},
				}, nil
			},
			UpdateFunc: func(ctx context.Context, id string, order Order) (Order, error) {
				return order, nil
			},
		}
		os := newOrderServiceForTest(books, orders, nil, nil)

		order, err := os.Cancel(context.Background(), "o:1")
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusCancelled, order.Status)
		assert.Equal(t, 5, catalog["b:1"].Stock)
	})

	t.Run("should refuse to cancel a delivered order", func(t *testing.T) {
		orders := &MockOrderStorage{
			GetOneFunc: func(ctx context.Context, id string) (Order, error) {
				return Order{ID: id, Status: OrderStatusDelivered}, nil
			},
		}
		os := newOrderServiceForTest(nil, orders, nil, nil)

		_, err := os.Cancel(context.Background(), "o:1")
		assert.ErrorIs(t, err, ErrOrderNotCancellable)
	})
}

// TestOrderServiceUpdateStatus ensures only known statuses are accepted.
func TestOrderServiceUpdateStatus(t *testing.T) {
	t.Run("should move the order to the new status", func(t *testing.T) {
		orders := &MockOrderStorage{
			GetOneFunc: func(ctx context.Context, id string) (Order, error) {
				return Order{ID: id, Status: OrderStatusPending}, nil
			},
			UpdateFunc: func(ctx context.Context, id string, order Order) (Order, error) {
				return order, nil
			},
		}
		os := newOrderServiceForTest(nil, orders, nil, nil)

		order, err := os.UpdateStatus(context.Background(), "o:1", OrderStatusShipped)
		assert.NoError(t, err)
		assert.Equal(t, OrderStatusShipped, order.Status)
	})

	t.Run("should reject an unknown status", func(t *testing.T) {
		os := newOrderServiceForTest(nil, nil, nil, nil)
		_, err := os.UpdateStatus(context.Background(), "o:1", OrderStatus("LOST"))
		assert.Error(t, err)
	})
}

// TestBuildOrderNumber ensures the customer facing number derivation.
func TestBuildOrderNumber(t *testing.T) {
	assert.Equal(t, "ORD-CB8F2136FAE4", buildOrderNumber("o:cb8f2136-fae4-4200-85d9-3533c7f8c70d"))
	assert.Equal(t, "ORD-ABC", buildOrderNumber("o:abc"))
}
