package main

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// HUsers holds user records by id, HUsersIndex maps usernames to ids.
const (
	HUsers      string = "users"
	HUsersIndex string = "users.index"
)

type redisUserStorage struct {
	logger *zap.Logger
	client *redis.Client
}

// NewRedisUserStorage provides an instance of redis-based user storage.
func NewRedisUserStorage(logger *zap.Logger, client *redis.Client) UserStorage {
	return &redisUserStorage{
		logger: logger,
		client: client,
	}
}

// Add inserts a new user record and indexes its username.
func (rs *redisUserStorage) Add(ctx context.Context, id string, user User) error {
	userBytes, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err = rs.client.HSet(ctx, HUsers, id, userBytes).Err(); err != nil {
		return err
	}
	return rs.client.HSet(ctx, HUsersIndex, user.Username, id).Err()
}

// GetOne retrieves a user record based on its ID.
func (rs *redisUserStorage) GetOne(ctx context.Context, id string) (User, error) {
	var user User
	userJSONString, err := rs.client.HGet(ctx, HUsers, id).Result()
	if err == redis.Nil {
		return user, ErrUserNotFound
	}
	if err != nil {
		return user, err
	}
	err = json.Unmarshal([]byte(userJSONString), &user)
	return user, err
}

// GetByUsername retrieves a user record based on its unique username.
func (rs *redisUserStorage) GetByUsername(ctx context.Context, username string) (User, error) {
	id, err := rs.client.HGet(ctx, HUsersIndex, username).Result()
	if err == redis.Nil {
		return User{}, ErrUserNotFound
	}
	if err != nil {
		return User{}, err
	}
	return rs.GetOne(ctx, id)
}

// Update replaces existing user record data.
func (rs *redisUserStorage) Update(ctx context.Context, id string, user User) (User, error) {
	userBytes, err := json.Marshal(user)
	if err != nil {
		return user, err
	}
	err = rs.client.HSet(ctx, HUsers, id, userBytes).Err()
	return user, err
}

// GetAll retrieves a list of all users stored in the redis database.
func (rs *redisUserStorage) GetAll(ctx context.Context) ([]User, error) {
	mapUsers, err := rs.client.HVals(ctx, HUsers).Result()
	if err != nil {
		return nil, err
	}
	users := []User{}
	for _, userJSONString := range mapUsers {
		var user User
		if err = json.Unmarshal([]byte(userJSONString), &user); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}
