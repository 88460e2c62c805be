package main

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const HOrders string = "orders"

type redisOrderStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisOrderStorage provides an instance of redis-based order storage.
func NewRedisOrderStorage(logger *zap.Logger, client *redis.Client) OrderStorage {
	return &redisOrderStorage{
		logger: logger,
		client: client,
	}
}

// Add inserts a new order record.
func (rs *redisOrderStorage) Add(ctx context.Context, id string, order Order) error {
	orderBytes, err := json.Marshal(order)
	if err != nil {
		return err
	}
	return rs.client.HSet(ctx, HOrders, id, orderBytes).Err()
}

// GetOne retrieves an order record based on its ID.
func (rs *redisOrderStorage) GetOne(ctx context.Context, id string) (Order, error) {
	var order Order
	orderJSONString, err := rs.client.HGet(ctx, HOrders, id).Result()
	if err == redis.Nil {
		return order, ErrOrderNotFound
	}
	if err != nil {
		return order, err
	}
	err = json.Unmarshal([]byte(orderJSONString), &order)
	return order, err
}

// Update replaces existing order record data.
func (rs *redisOrderStorage) Update(ctx context.Context, id string, order Order) (Order, error) {
	orderBytes, err := json.Marshal(order)
	if err != nil {
		return order, err
	}
	err = rs.client.HSet(ctx, HOrders, id, orderBytes).Err()
	return order, err
}

// GetAll retrieves a list of all orders stored in the redis database.
func (rs *redisOrderStorage) GetAll(ctx context.Context) ([]Order, error) {
	mapOrders, err := rs.client.HVals(ctx, HOrders).Result()
	if err != nil {
		return nil, err
	}
	orders := []Order{}
	for _, orderJSONString := range mapOrders {
		var order Order
		if err = json.Unmarshal([]byte(orderJSONString), &order); err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, nil
}

// GetByUser retrieves the orders placed by the given user.
func (rs *redisOrderStorage) GetByUser(ctx context.Context, userID string) ([]Order, error) {
	all, err := rs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	orders := []Order{}
	for _, order := range all {
		if order.UserID == userID {
			orders = append(orders, order)
		}
	}
	return orders, nil
}
