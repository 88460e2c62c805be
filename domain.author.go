package main

import "context"

// Author represents a catalog author entity.
type Author struct {
	ID        string `json:"id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Biography string `json:"biography,omitempty"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// AuthorStorage defines possible operations on author entity.
type AuthorStorage interface {
	Add(ctx context.Context, id string, author Author) error
	GetOne(ctx context.Context, id string) (Author, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, author Author) (Author, error)
	GetAll(ctx context.Context) ([]Author, error)
}
