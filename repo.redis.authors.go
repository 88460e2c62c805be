package main

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const HAuthors string = "authors"

type redisAuthorStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisAuthorStorage provides an instance of redis-based author storage.
func NewRedisAuthorStorage(logger *zap.Logger, client *redis.Client) AuthorStorage {
	return &redisAuthorStorage{
		logger: logger,
		client: client,
	}
}

// Add inserts a new author record.
func (rs *redisAuthorStorage) Add(ctx context.Context, id string, author Author) error {
	authorBytes, err := json.Marshal(author)
	if err != nil {
		return err
	}
	return rs.client.HSet(ctx, HAuthors, id, authorBytes).Err()
}

// GetOne retrieves an author record based on its ID.
func (rs *redisAuthorStorage) GetOne(ctx context.Context, id string) (Author, error) {
	var author Author
	authorJSONString, err := rs.client.HGet(ctx, HAuthors, id).Result()
	if err == redis.Nil {
		return author, ErrAuthorNotFound
	}
	if err != nil {
		return author, err
	}
	err = json.Unmarshal([]byte(authorJSONString), &author)
	return author, err
}

// Delete removes an author record based on its ID.
func (rs *redisAuthorStorage) Delete(ctx context.Context, id string) error {
	n, err := rs.client.HDel(ctx, HAuthors, id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAuthorNotFound
	}
	return nil
}

// Update replaces existing author record data or inserts a new author if does not exist.
func (rs *redisAuthorStorage) Update(ctx context.Context, id string, author Author) (Author, error) {
	authorBytes, err := json.Marshal(author)
	if err != nil {
		return author, err
	}
	err = rs.client.HSet(ctx, HAuthors, id, authorBytes).Err()
	return author, err
}

// GetAll retrieves a list of all authors stored in the redis database.
func (rs *redisAuthorStorage) GetAll(ctx context.Context) ([]Author, error) {
	mapAuthors, err := rs.client.HVals(ctx, HAuthors).Result()
	if err != nil {
		return nil, err
	}
	authors := []Author{}
	for _, authorJSONString := range mapAuthors {
		var author Author
		if err = json.Unmarshal([]byte(authorJSONString), &author); err != nil {
			return nil, err
		}
		authors = append(authors, author)
	}
	return authors, nil
}
