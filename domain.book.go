package main

import "context"

// Book represents a catalog book entity.
type Book struct {
	ID          string  `json:"id" binding:"required"`
	Title       string  `json:"title" binding:"required"`
	Description string  `json:"description"`
	Author      string  `json:"author" binding:"required"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	ImageURL    string  `json:"imageUrl"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

// IsAvailable tells if at least one copy can still be sold.
func (b Book) IsAvailable() bool {
	return b.Stock > 0
}

// BookStorage defines possible operations on book entity.
type BookStorage interface {
	Add(ctx context.Context, id string, book Book) error
	GetOne(ctx context.Context, id string) (Book, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, book Book) (Book, error)
	GetAll(ctx context.Context) ([]Book, error)
	GetAvailable(ctx context.Context) ([]Book, error)
	SearchByTitle(ctx context.Context, title string) ([]Book, error)
	GetByAuthor(ctx context.Context, author string) ([]Book, error)
	GetByCategory(ctx context.Context, category string) ([]Book, error)
	DeleteAll(ctx context.Context) error
}
