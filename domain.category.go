package main

import "context"

// Category represents a catalog category entity. Category names are
// unique across the store.
type Category struct {
	ID          string `json:"id" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"createdAt"`
	UpdatedAt   string `json:"updatedAt"`
}

// CategoryStorage defines possible operations on category entity.
type CategoryStorage interface {
	Add(ctx context.Context, id string, category Category) error
	GetOne(ctx context.Context, id string) (Category, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, category Category) (Category, error)
	GetAll(ctx context.Context) ([]Category, error)
}
