package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestCartAdd ensures repeated adds cap the quantity at the stock snapshot.
func TestCartAdd(t *testing.T) {
	t.Run("should insert a new line with quantity one", func(t *testing.T) {
		cart := Cart{}
		err := cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 12.50, Stock: 3})
		assert.NoError(t, err)
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	})

	t.Run("should cap repeated adds at the stock snapshot", func(t *testing.T) {
		cart := Cart{}
		line := CartLine{BookID: "b:1", Title: "Dune", Price: 12.50, Stock: 3}
		for i := 0; i < 3; i++ {
			assert.NoError(t, cart.Add(line))
		}
		err := cart.Add(line)
		assert.ErrorIs(t, err, ErrStockExceeded)
		assert.Equal(t, 3, cart.Lines[0].Quantity)
	})

	t.Run("should ignore a book with no stock left", func(t *testing.T) {
		cart := Cart{}
		err := cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 12.50, Stock: 0})
		assert.NoError(t, err)
		assert.True(t, cart.IsEmpty())
	})

	t.Run("should keep the add-time price snapshot on an existing line", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, ImageURL: "/dune.jpg", Stock: 3}))
		assert.NoError(t, cart.Add(CartLine{BookID: "b:1", Title: "Dune (new ed.)", Price: 14.00, ImageURL: "/dune-v2.jpg", Stock: 5}))
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 2, cart.Lines[0].Quantity)
		assert.Equal(t, "Dune", cart.Lines[0].Title)
		assert.Equal(t, 10.00, cart.Lines[0].Price)
		assert.Equal(t, "/dune.jpg", cart.Lines[0].ImageURL)
		assert.Equal(t, 20.00, cart.Total())
	})

	t.Run("should refresh the stock ceiling of an existing line", func(t *testing.T) {
		cart := Cart{}
		assert.NoError(t, cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, Stock: 3}))
		assert.NoError(t, cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, Stock: 5}))
		assert.Equal(t, 5, cart.Lines[0].Stock)
		assert.NoError(t, cart.UpdateQuantity("b:1", 5))
	})
}

// TestCartUpdateQuantity ensures quantity edits stay inside the stock bounds.
func TestCartUpdateQuantity(t *testing.T) {
	newCart := func() Cart {
		cart := Cart{}
		_ = cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 12.50, Stock: 5})
		return cart
	}

	t.Run("should set the quantity inside the stock bound", func(t *testing.T) {
		cart := newCart()
		assert.NoError(t, cart.UpdateQuantity("b:1", 5))
		assert.Equal(t, 5, cart.Lines[0].Quantity)
	})

	t.Run("should reject a quantity above the stock bound without mutation", func(t *testing.T) {
		cart := newCart()
		err := cart.UpdateQuantity("b:1", 6)
		assert.ErrorIs(t, err, ErrStockExceeded)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	})

	t.Run("should remove the line on a zero quantity", func(t *testing.T) {
		cart := newCart()
		assert.NoError(t, cart.UpdateQuantity("b:1", 0))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("should remove the line on a negative quantity", func(t *testing.T) {
		cart := newCart()
		assert.NoError(t, cart.UpdateQuantity("b:1", -1))
		assert.True(t, cart.IsEmpty())
	})

	t.Run("should ignore an absent line", func(t *testing.T) {
		cart := newCart()
		assert.NoError(t, cart.UpdateQuantity("b:404", 2))
		assert.Len(t, cart.Lines, 1)
		assert.Equal(t, 1, cart.Lines[0].Quantity)
	})
}

// TestCartRemove ensures line removal is idempotent.
func TestCartRemove(t *testing.T) {
	cart := Cart{}
	_ = cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 12.50, Stock: 5})
	_ = cart.Add(CartLine{BookID: "b:2", Title: "Emma", Price: 5.00, Stock: 2})

	cart.Remove("b:1")
	assert.Len(t, cart.Lines, 1)
	assert.Equal(t, "b:2", cart.Lines[0].BookID)

	cart.Remove("b:1")
	assert.Len(t, cart.Lines, 1)
}

// TestCartTotals ensures the derived totals always match the lines.
func TestCartTotals(t *testing.T) {
	t.Run("should compute totals from the lines", func(t *testing.T) {
		cart := Cart{}
		_ = cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, Stock: 5})
		assert.NoError(t, cart.UpdateQuantity("b:1", 2))
		_ = cart.Add(CartLine{BookID: "b:2", Title: "Emma", Price: 5.00, Stock: 2})

		assert.Equal(t, 25.00, cart.Total())
		assert.Equal(t, 3, cart.ItemCount())
	})

	t.Run("should report zeros for an empty cart", func(t *testing.T) {
		cart := Cart{}
		assert.Equal(t, 0.00, cart.Total())
		assert.Equal(t, 0, cart.ItemCount())
		assert.True(t, cart.IsEmpty())
	})

	t.Run("should keep the insertion order of the lines", func(t *testing.T) {
		cart := Cart{}
		_ = cart.Add(CartLine{BookID: "b:2", Title: "Emma", Price: 5.00, Stock: 2})
		_ = cart.Add(CartLine{BookID: "b:1", Title: "Dune", Price: 10.00, Stock: 5})
		_ = cart.Add(CartLine{BookID: "b:2", Title: "Emma", Price: 5.00, Stock: 2})
		assert.Equal(t, "b:2", cart.Lines[0].BookID)
		assert.Equal(t, "b:1", cart.Lines[1].BookID)
	})
}

// TestCartView ensures the wire shape never serializes null lines.
func TestCartView(t *testing.T) {
	view := CartView(Cart{})
	assert.NotNil(t, view.Lines)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0.00, view.Total)
	assert.Equal(t, 0, view.ItemCount)
}
