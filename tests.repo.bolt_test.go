package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a new instance of the cart store in a temporary path.
func newTestBoltStore() (*boltCartStore, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:      f.Name(),
			Timeout:       5 * time.Second,
			CartsBucket:   "test.carts",
			ArchiveBucket: "test.archive",
		},
	}

	client, err := GetBoltDBClient(testConfig)

	return &boltCartStore{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}, err
}

// closeTestBoltStore closes the temporary bolt store and removes the underlying data file.
func (cs *boltCartStore) closeTestBoltStore() error {
	defer os.Remove(cs.config.FilePath)
	return cs.Close()
}

// Ensure the bolt store round-trips a cart unchanged.
func TestBoltCartStore_SaveAndLoad(t *testing.T) {
	cs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer cs.closeTestBoltStore()

	cart := Cart{}
	_ = cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, Stock: 5})
	_ = cart.Add(CartLine{BookID: "b:2", Title: "Emma", Price: 5.00, Stock: 2})
	require.NoError(t, cart.UpdateQuantity("b:1", 3))

	err = cs.Save(context.TODO(), "u:1", cart)
	assert.NoError(t, err)

	restored, err := cs.Load(context.TODO(), "u:1")
	assert.NoError(t, err)
	assert.Equal(t, cart.Lines, restored.Lines)
	assert.Equal(t, 35.00, restored.Total())
	assert.Equal(t, 4, restored.ItemCount())
}

// Ensure a user without a persisted cart starts empty.
func TestBoltCartStore_LoadMissing(t *testing.T) {
	cs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer cs.closeTestBoltStore()

	cart, err := cs.Load(context.TODO(), "u:404")
	assert.NoError(t, err)
	assert.True(t, cart.IsEmpty())
}

// Ensure an undecodable persisted payload is flagged as corrupted.
func TestBoltCartStore_LoadCorrupt(t *testing.T) {
	cs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer cs.closeTestBoltStore()

	err = cs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cs.config.CartsBucket)).Put([]byte("u:1"), []byte("not json"))
	})
	require.NoError(t, err)

	cart, err := cs.Load(context.TODO(), "u:1")
	assert.ErrorIs(t, err, ErrCartCorrupt)
	assert.True(t, cart.IsEmpty())
}

// Ensure deleting a cart removes the persisted record.
func TestBoltCartStore_Delete(t *testing.T) {
	cs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer cs.closeTestBoltStore()

	cart := Cart{}
	_ = cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, Stock: 5})
	require.NoError(t, cs.Save(context.TODO(), "u:1", cart))

	assert.NoError(t, cs.Delete(context.TODO(), "u:1"))

	restored, err := cs.Load(context.TODO(), "u:1")
	assert.NoError(t, err)
	assert.True(t, restored.IsEmpty())
}

// Ensure the order archive keeps every event of one order in push order.
func TestBoltOrderArchive(t *testing.T) {
	cs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer cs.closeTestBoltStore()

	archive := NewBoltOrderArchive(zap.NewNop(), cs.config, cs.client)

	events := []OrderEvent{
		{OrderID: "o:1", OrderNumber: "ORD-1", UserID: "u:1", Status: OrderStatusPending, TotalAmount: 20.00, At: 1},
		{OrderID: "o:1", OrderNumber: "ORD-1", UserID: "u:1", Status: OrderStatusCancelled, TotalAmount: 20.00, At: 2},
		{OrderID: "o:2", OrderNumber: "ORD-2", UserID: "u:2", Status: OrderStatusPending, TotalAmount: 5.00, At: 3},
	}
	for _, event := range events {
		require.NoError(t, archive.Archive(context.TODO(), event))
	}

	archived, err := archive.GetByOrder(context.TODO(), "o:1")
	assert.NoError(t, err)
	require.Len(t, archived, 2)
	assert.Equal(t, OrderStatusPending, archived[0].Status)
	assert.Equal(t, OrderStatusCancelled, archived[1].Status)

	archived, err = archive.GetByOrder(context.TODO(), "o:2")
	assert.NoError(t, err)
	assert.Len(t, archived, 1)
}
