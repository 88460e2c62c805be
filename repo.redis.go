package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const HBooks string = "books"

type redisBookStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisBookStorage provides an instance of redis-based book storage.
func NewRedisBookStorage(logger *zap.Logger, client *redis.Client) BookStorage {
	return &redisBookStorage{
		logger: logger,
		client: client,
	}
}

// GetRedisClient provides a ready to use redis client.
func GetRedisClient(config *Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.Host, config.Redis.Port),
		DialTimeout:  config.Redis.DialTimeout,
		ReadTimeout:  config.Redis.ReadTimeout,
		WriteTimeout: config.Redis.WriteTimeout,
		PoolSize:     config.Redis.PoolSize,
		PoolTimeout:  config.Redis.PoolTimeout,
		Password:     config.Redis.Password,
		Username:     config.Redis.Username,
		DB:           config.Redis.DatabaseIndex,
	})

	// test connection.
	if pong, err := client.Ping(context.Background()).Result(); pong != "PONG" || err != nil {
		return client, fmt.Errorf("test connection failed: %v", err)
	}
	return client, nil
}

// Add inserts a new book record.
func (rs *redisBookStorage) Add(ctx context.Context, id string, book Book) error {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return err
	}
	return rs.client.HSet(ctx, HBooks, id, bookBytes).Err()
}

// GetOne retrieves a book record based on its ID.
func (rs *redisBookStorage) GetOne(ctx context.Context, id string) (Book, error) {
	var book Book
	bookJSONString, err := rs.client.HGet(ctx, HBooks, id).Result()
	if err == redis.Nil {
		return book, ErrBookNotFound
	}
	if err != nil {
		return book, err
	}
	err = json.Unmarshal([]byte(bookJSONString), &book)
	return book, err
}

// Delete removes a book record based on its ID.
func (rs *redisBookStorage) Delete(ctx context.Context, id string) error {
	n, err := rs.client.HDel(ctx, HBooks, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBookNotFound
	}
	return nil
}

// Update replaces existing book record data or inserts a new book if does not exist.
func (rs *redisBookStorage) Update(ctx context.Context, id string, book Book) (Book, error) {
	bookBytes, err := json.Marshal(book)
	if err != nil {
		return book, err
	}
	err = rs.client.HSet(ctx, HBooks, id, bookBytes).Err()
	return book, err
}

// GetAll retrieves a list of all books stored in the redis database.
func (rs *redisBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	mapBooks, err := rs.client.HVals(ctx, HBooks).Result()
	if err != nil {
		return nil, err
	}
	books := []Book{}
	for _, bookJSONString := range mapBooks {
		var book Book
		if err = json.Unmarshal([]byte(bookJSONString), &book); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, nil
}

// GetAvailable retrieves the books with at least one copy in stock.
func (rs *redisBookStorage) GetAvailable(ctx context.Context) ([]Book, error) {
	return rs.getFiltered(ctx, func(b Book) bool {
		return b.IsAvailable()
	})
}

// SearchByTitle retrieves the books whose title contains the given text.
// The match is case-insensitive.
func (rs *redisBookStorage) SearchByTitle(ctx context.Context, title string) ([]Book, error) {
	title = strings.ToLower(title)
	return rs.getFiltered(ctx, func(b Book) bool {
		return strings.Contains(strings.ToLower(b.Title), title)
	})
}

// GetByAuthor retrieves the books written by the given author.
func (rs *redisBookStorage) GetByAuthor(ctx context.Context, author string) ([]Book, error) {
	return rs.getFiltered(ctx, func(b Book) bool {
		return strings.EqualFold(b.Author, author)
	})
}

// GetByCategory retrieves the books filed under the given category.
func (rs *redisBookStorage) GetByCategory(ctx context.Context, category string) ([]Book, error) {
	return rs.getFiltered(ctx, func(b Book) bool {
		return strings.EqualFold(b.Category, category)
	})
}

// DeleteAll removes the whole books hash.
func (rs *redisBookStorage) DeleteAll(ctx context.Context) error {
	return rs.client.Del(ctx, HBooks).Err()
}

// getFiltered scans the books hash and keeps the records matching the predicate.
func (rs *redisBookStorage) getFiltered(ctx context.Context, keep func(Book) bool) ([]Book, error) {
	all, err := rs.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	books := []Book{}
	for _, book := range all {
		if keep(book) {
			books = append(books, book)
		}
	}
	return books, nil
}
