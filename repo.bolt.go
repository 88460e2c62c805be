package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

// boltCartStore persists one cart per user profile inside a local
// boltdb bucket. The value under each user key is the serialized
// ordered list of cart lines.
type boltCartStore struct {
	logger *zap.Logger
	client *bolt.DB
	config *BoltDBConfig
}

// GetBoltDBClient setup the database and the buckets then provides a ready to use client.
func GetBoltDBClient(config *Config) (*bolt.DB, error) {
	db, err := bolt.Open(config.BoltDB.FilePath, 0o600, &bolt.Options{Timeout: config.BoltDB.Timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open the database, %v", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.CartsBucket)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.CartsBucket, errB)
		}
		if _, errB := tx.CreateBucketIfNotExists([]byte(config.BoltDB.ArchiveBucket)); errB != nil {
			return fmt.Errorf("failed to create %s bucket: %v", config.BoltDB.ArchiveBucket, errB)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to set up buckets: %v", err)
	}
	return db, nil
}

// NewBoltCartStore provides an instance of bolt-based cart store.
func NewBoltCartStore(logger *zap.Logger, boltConfig *BoltDBConfig, client *bolt.DB) CartStore {
	return &boltCartStore{
		logger: logger,
		client: client,
		config: boltConfig,
	}
}

// Close shuts down the bolt-based cart store.
func (cs *boltCartStore) Close() error {
	return cs.client.Close()
}

// Save rewrites the whole persisted cart of a user with the given state.
func (cs *boltCartStore) Save(_ context.Context, userID string, cart Cart) error {
	cartBytes, err := json.Marshal(cart.Lines)
	if err != nil {
		return err
	}
	return cs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cs.config.CartsBucket)).Put([]byte(userID), cartBytes)
	})
}

// Load reconstructs the persisted cart of a user. A missing record
// yields an empty cart. A record which cannot be decoded yields an
// empty cart along with ErrCartCorrupt so the caller can log and reset.
func (cs *boltCartStore) Load(_ context.Context, userID string) (Cart, error) {
	var cart Cart
	// initialize a readable transaction.
	tx, err := cs.client.Begin(false)
	if err != nil {
		return cart, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(cs.config.CartsBucket)).Get([]byte(userID))
	if result == nil {
		return cart, nil
	}
	if err = json.Unmarshal(result, &cart.Lines); err != nil {
		return Cart{}, ErrCartCorrupt
	}
	return cart, nil
}

// Delete removes the persisted cart of a user.
func (cs *boltCartStore) Delete(_ context.Context, userID string) error {
	return cs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cs.config.CartsBucket)).Delete([]byte(userID))
	})
}
