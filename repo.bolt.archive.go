package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// OrderArchiver persists order events for audit purpose.
type OrderArchiver interface {
	Archive(ctx context.Context, event OrderEvent) error
	GetByOrder(ctx context.Context, orderID string) ([]OrderEvent, error)
}

// boltOrderArchive keeps an append-only audit trail of order events
// inside a local boltdb bucket. Keys are orderID:timestamp so a prefix
// scan returns the full history of one order in time order.
type boltOrderArchive struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// NewBoltOrderArchive provides an instance of bolt-based order events archive.
func NewBoltOrderArchive(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) OrderArchiver {
	return &boltOrderArchive{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Archive appends one order event to the audit trail.
func (oa *boltOrderArchive) Archive(_ context.Context, event OrderEvent) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("%s:%019d", event.OrderID, event.At)
	return oa.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(oa.config.ArchiveBucket)).Put([]byte(key), eventBytes)
	})
}

// GetByOrder retrieves all archived events of one order in time order.
func (oa *boltOrderArchive) GetByOrder(_ context.Context, orderID string) ([]OrderEvent, error) {
	tx, err := oa.client.Begin(false)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	c := tx.Bucket([]byte(oa.config.ArchiveBucket)).Cursor()
	prefix := []byte(orderID + ":")

	events := []OrderEvent{}
	for k, v := c.Seek(prefix); k != nil && len(k) > len(prefix) && string(k[:len(prefix)]) == string(prefix); k, v = c.Next() {
		var event OrderEvent
		if err = json.Unmarshal(v, &event); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}
