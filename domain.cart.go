package main

import "context"

// CartLine is one book entry inside a cart. Title, price and image are
// snapshots captured from the catalog when the line was first added and
// are not refreshed while the line sits in the cart. The stock field is
// refreshed on every touch and acts as a soft upper bound for local
// quantity edits, it is not a reservation against the catalog.
type CartLine struct {
	BookID   string  `json:"bookId"`
	Title    string  `json:"title"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	ImageURL string  `json:"imageUrl,omitempty"`
	Stock    int     `json:"stock"`
}

// Cart is the ordered quantity ledger owned by a single user profile.
// Insertion order of lines is preserved for stable display. A cart never
// holds two lines for the same book and never holds a line with a
// quantity below 1 or above its stock snapshot.
type Cart struct {
	Lines []CartLine `json:"lines"`
}

// find returns the index of the line holding the given book.
func (c *Cart) find(bookID string) (int, bool) {
	for i := range c.Lines {
		if c.Lines[i].BookID == bookID {
			return i, true
		}
	}
	return 0, false
}

// Add inserts a new line with quantity 1 or increments an existing one.
// Inserting a book with no stock left is a silent no-op. Incrementing
// past the stock ceiling is rejected with ErrStockExceeded and leaves
// the quantity unchanged. On an existing line only the quantity and the
// stock ceiling move: title, price and image stay as captured when the
// line was first added.
func (c *Cart) Add(item CartLine) error {
	if i, ok := c.find(item.BookID); ok {
		if c.Lines[i].Quantity+1 > item.Stock {
			return ErrStockExceeded
		}
		c.Lines[i].Quantity++
		c.Lines[i].Stock = item.Stock
		return nil
	}
	if item.Stock < 1 {
		return nil
	}
	item.Quantity = 1
	c.Lines = append(c.Lines, item)
	return nil
}

// UpdateQuantity sets the quantity of an existing line. A target of zero
// or less removes the line. A target above the line stock snapshot is
// rejected with ErrStockExceeded without any mutation. Updating an
// absent line is a no-op.
func (c *Cart) UpdateQuantity(bookID string, quantity int) error {
	if quantity <= 0 {
		c.Remove(bookID)
		return nil
	}
	i, ok := c.find(bookID)
	if !ok {
		return nil
	}
	if quantity > c.Lines[i].Stock {
		return ErrStockExceeded
	}
	c.Lines[i].Quantity = quantity
	return nil
}

// Remove deletes the line holding the given book. Removing an absent
// line is a no-op, not an error.
func (c *Cart) Remove(bookID string) {
	if i, ok := c.find(bookID); ok {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
}

// Clear empties the cart unconditionally.
func (c *Cart) Clear() {
	c.Lines = nil
}

// IsEmpty tells if the cart holds no line.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// Total computes the sum of price times quantity over all lines. It is
// recomputed on every call, never cached.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// ItemCount computes the total number of units across all lines.
func (c *Cart) ItemCount() int {
	var count int
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// CartSummary is the wire shape of a cart. The totals are derived from
// the lines at response time so they can never drift from the ledger.
type CartSummary struct {
	Lines     []CartLine `json:"lines"`
	Total     float64    `json:"total"`
	ItemCount int        `json:"itemCount"`
}

// CartView derives the wire shape of a cart. An empty cart serializes
// with an empty lines array rather than null.
func CartView(cart Cart) CartSummary {
	lines := cart.Lines
	if lines == nil {
		lines = []CartLine{}
	}
	return CartSummary{
		Lines:     lines,
		Total:     cart.Total(),
		ItemCount: cart.ItemCount(),
	}
}

// CartStore persists one cart per user profile. Load returns an empty
// cart when nothing was persisted yet, and ErrCartCorrupt when the
// persisted payload cannot be decoded.
type CartStore interface {
	Save(ctx context.Context, userID string, cart Cart) error
	Load(ctx context.Context, userID string) (Cart, error)
	Delete(ctx context.Context, userID string) error
}
