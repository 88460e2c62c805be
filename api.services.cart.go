package main

import (
	"context"

	"go.uber.org/zap"
)

// CartServiceProvider is the cart manager. It owns the per-user quantity
// ledger: every mutation goes through it, every committed mutation is
// persisted as a whole, and every read reconstructs the ledger from the
// store so a process restart never loses a cart.
type CartServiceProvider interface {
	Get(ctx context.Context, userID string) (Cart, error)
	AddItem(ctx context.Context, userID string, item CartLine) (Cart, error)
	UpdateQuantity(ctx context.Context, userID, bookID string, quantity int) (Cart, error)
	RemoveItem(ctx context.Context, userID, bookID string) (Cart, error)
	Clear(ctx context.Context, userID string) error
}

type CartService struct {
	logger *zap.Logger
	config *Config
	store  CartStore
}

func NewCartService(logger *zap.Logger, config *Config, store CartStore) CartServiceProvider {
	return &CartService{
		logger: logger,
		config: config,
		store:  store,
	}
}

// load restores the persisted cart of a user. A corrupted payload is
// not an error for the caller: the cart resets to empty and the
// incident is only logged.
func (cs *CartService) load(ctx context.Context, userID string) (Cart, error) {
	cart, err := cs.store.Load(ctx, userID)
	if err == ErrCartCorrupt {
		cs.logger.Error("cart: persisted payload corrupted, resetting to empty",
			zap.String("user.id", userID))
		return Cart{}, nil
	}
	if err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// Get returns the current cart of a user.
func (cs *CartService) Get(ctx context.Context, userID string) (Cart, error) {
	return cs.load(ctx, userID)
}

// AddItem puts one unit of a book into the cart, or bumps the quantity
// of its existing line up to the stock snapshot. The whole cart is
// persisted after the mutation. ErrStockExceeded leaves both the
// in-memory and the persisted state untouched.
func (cs *CartService) AddItem(ctx context.Context, userID string, item CartLine) (Cart, error) {
	cart, err := cs.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	if err = cart.Add(item); err != nil {
		return cart, err
	}

	if err = cs.store.Save(ctx, userID, cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// UpdateQuantity sets the quantity of one cart line. A target of zero
// or less deletes the line, a target above the stock snapshot is
// rejected without mutation.
func (cs *CartService) UpdateQuantity(ctx context.Context, userID, bookID string, quantity int) (Cart, error) {
	cart, err := cs.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	if err = cart.UpdateQuantity(bookID, quantity); err != nil {
		return cart, err
	}

	if err = cs.store.Save(ctx, userID, cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// RemoveItem deletes one cart line. Removing an absent line succeeds.
func (cs *CartService) RemoveItem(ctx context.Context, userID, bookID string) (Cart, error) {
	cart, err := cs.load(ctx, userID)
	if err != nil {
		return Cart{}, err
	}

	cart.Remove(bookID)

	if err = cs.store.Save(ctx, userID, cart); err != nil {
		return Cart{}, err
	}
	return cart, nil
}

// Clear empties the cart of a user unconditionally.
func (cs *CartService) Clear(ctx context.Context, userID string) error {
	return cs.store.Delete(ctx, userID)
}
