package main

import (
	"context"

	"go.uber.org/zap"
)

// AuthorServiceProvider manages the author records shown on the
// storefront and administered from the back office.
type AuthorServiceProvider interface {
	Add(ctx context.Context, id string, author Author) error
	GetOne(ctx context.Context, id string) (Author, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, author Author) (Author, error)
	GetAll(ctx context.Context) ([]Author, error)
}

type AuthorService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage AuthorStorage
}

func NewAuthorService(logger *zap.Logger, config *Config, clock Clocker, storage AuthorStorage) AuthorServiceProvider {
	return &AuthorService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
	}
}

func (as *AuthorService) Add(ctx context.Context, id string, author Author) error {
	return as.storage.Add(ctx, id, author)
}

func (as *AuthorService) GetOne(ctx context.Context, id string) (Author, error) {
	author, err := as.storage.GetOne(ctx, id)
	return author, err
}

func (as *AuthorService) Delete(ctx context.Context, id string) error {
	return as.storage.Delete(ctx, id)
}

func (as *AuthorService) Update(ctx context.Context, id string, author Author) (Author, error) {
	author.UpdatedAt = as.clock.Now().UTC().String()
	return as.storage.Update(ctx, id, author)
}

func (as *AuthorService) GetAll(ctx context.Context) ([]Author, error) {
	authors, err := as.storage.GetAll(ctx)
	return authors, err
}
