package main

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const HCategories string = "categories"

type redisCategoryStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisCategoryStorage provides an instance of redis-based category storage.
func NewRedisCategoryStorage(logger *zap.Logger, client *redis.Client) CategoryStorage {
	return &redisCategoryStorage{
		logger: logger,
		client: client,
	}
}

// Add inserts a new category record.
func (rs *redisCategoryStorage) Add(ctx context.Context, id string, category Category) error {
	categoryBytes, err := json.Marshal(category)
	if err != nil {
		return err
	}
	return rs.client.HSet(ctx, HCategories, id, categoryBytes).Err()
}

// GetOne retrieves a category record based on its ID.
func (rs *redisCategoryStorage) GetOne(ctx context.Context, id string) (Category, error) {
	var category Category
	categoryJSONString, err := rs.client.HGet(ctx, HCategories, id).Result()
	if err == redis.Nil {
		return category, ErrCategoryNotFound
	}
	if err != nil {
		return category, err
	}
	err = json.Unmarshal([]byte(categoryJSONString), &category)
	return category, err
}

// Delete removes a category record based on its ID.
func (rs *redisCategoryStorage) Delete(ctx context.Context, id string) error {
	n, err := rs.client.HDel(ctx, HCategories, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// Update replaces existing category record data or inserts a new category if does not exist.
func (rs *redisCategoryStorage) Update(ctx context.Context, id string, category Category) (Category, error) {
	categoryBytes, err := json.Marshal(category)
	if err != nil {
		return category, err
	}
	err = rs.client.HSet(ctx, HCategories, id, categoryBytes).Err()
	return category, err
}

// GetAll retrieves a list of all categories stored in the redis database.
func (rs *redisCategoryStorage) GetAll(ctx context.Context) ([]Category, error) {
	mapCategories, err := rs.client.HVals(ctx, HCategories).Result()
	if err != nil {
		return nil, err
	}
	categories := []Category{}
	for _, categoryJSONString := range mapCategories {
		var category Category
		if err = json.Unmarshal([]byte(categoryJSONString), &category); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, nil
}
