package main

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

// Predefinied Queue IDs.
const (
	OrderCreatedQueue   = "order.created"
	OrderCancelledQueue = "order.cancelled"
	OrderStatusQueue    = "order.status"
)

// OrderEvent describes one order lifecycle transition pushed to a queue.
type OrderEvent struct {
	OrderID     string      `json:"orderId"`
	OrderNumber string      `json:"orderNumber"`
	UserID      string      `json:"userId"`
	Status      OrderStatus `json:"status"`
	TotalAmount float64     `json:"totalAmount"`
	At          int64       `json:"at"`
}

// Ensure *redisQueue implements Queuer.
var _ Queuer = (*redisQueue)(nil)

// Queuer describes a queue of order events.
type Queuer interface {
	Push(ctx context.Context, qid string, event OrderEvent) error
	Pop(ctx context.Context, qids ...string) (string, OrderEvent, error)
}

// redisQueue represents a queue which implements the Queuer interface.
type redisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) Queuer {
	return &redisQueue{client: client}
}

// Push enqueues an order event onto the queue identified by qid.
func (q *redisQueue) Push(ctx context.Context, qid string, event OrderEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return q.client.RPush(ctx, qid, eventBytes).Err()
}

// Pop returns the first dequeued order event from the list of queue ids.
func (q *redisQueue) Pop(ctx context.Context, qids ...string) (string, OrderEvent, error) {
	var event OrderEvent
	var qid string
	infos, err := q.client.BLPop(ctx, 0*time.Second, qids...).Result()
	if err != nil {
		return qid, event, err
	}

	if err = json.Unmarshal([]byte(infos[1]), &event); err != nil {
		return qid, event, err
	}
	qid = infos[0]
	return qid, event, nil
}
