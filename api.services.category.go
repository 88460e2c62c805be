package main

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// CategoryServiceProvider manages the category records used to file
// catalog books. Category names are kept unique.
type CategoryServiceProvider interface {
	Add(ctx context.Context, id string, category Category) error
	GetOne(ctx context.Context, id string) (Category, error)
	Delete(ctx context.Context, id string) error
	Update(ctx context.Context, id string, category Category) (Category, error)
	GetAll(ctx context.Context) ([]Category, error)
}

type CategoryService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	storage CategoryStorage
}

func NewCategoryService(logger *zap.Logger, config *Config, clock Clocker, storage CategoryStorage) CategoryServiceProvider {
	return &CategoryService{
		logger:  logger,
		config:  config,
		clock:   clock,
		storage: storage,
	}
}

// Add inserts a new category after checking no stored category already
// carries the same name. The match is case-insensitive.
func (cs *CategoryService) Add(ctx context.Context, id string, category Category) error {
	existing, err := cs.storage.GetAll(ctx)
	if err != nil {
		return err
	}
	for _, record := range existing {
		if strings.EqualFold(record.Name, category.Name) {
			return ErrCategoryAlreadyExists
		}
	}
	return cs.storage.Add(ctx, id, category)
}

func (cs *CategoryService) GetOne(ctx context.Context, id string) (Category, error) {
	category, err := cs.storage.GetOne(ctx, id)
	return category, err
}

func (cs *CategoryService) Delete(ctx context.Context, id string) error {
	return cs.storage.Delete(ctx, id)
}

func (cs *CategoryService) Update(ctx context.Context, id string, category Category) (Category, error) {
	category.UpdatedAt = cs.clock.Now().UTC().String()
	return cs.storage.Update(ctx, id, category)
}

func (cs *CategoryService) GetAll(ctx context.Context) ([]Category, error) {
	categories, err := cs.storage.GetAll(ctx)
	return categories, err
}
