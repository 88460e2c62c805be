package main

import (
	"context"

	"go.uber.org/zap"
)

// AuthServiceProvider manages accounts and bearer tokens. The cart and
// checkout endpoints are gated on the tokens it issues.
type AuthServiceProvider interface {
	Register(ctx context.Context, req RegisterRequest) (User, error)
	Login(ctx context.Context, username, password string) (string, User, error)
	GetUser(ctx context.Context, id string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
}

type AuthService struct {
	logger  *zap.Logger
	config  *Config
	clock   Clocker
	ids     UIDHandler
	storage UserStorage
}

func NewAuthService(logger *zap.Logger, config *Config, clock Clocker, ids UIDHandler, storage UserStorage) AuthServiceProvider {
	return &AuthService{
		logger:  logger,
		config:  config,
		clock:   clock,
		ids:     ids,
		storage: storage,
	}
}

// Register creates a new enabled account with the USER role. The clear
// text password never reaches the storage, only its bcrypt hash does.
func (as *AuthService) Register(ctx context.Context, req RegisterRequest) (User, error) {
	if _, err := as.storage.GetByUsername(ctx, req.Username); err == nil {
		return User{}, ErrUserAlreadyExists
	} else if err != ErrUserNotFound {
		return User{}, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return User{}, err
	}

	now := as.clock.Now().UTC().String()
	user := User{
		ID:           as.ids.Generate(UserIDPrefix),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PhoneNumber:  req.PhoneNumber,
		Address:      req.Address,
		Role:         RoleUser,
		Enabled:      true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err = as.storage.Add(ctx, user.ID, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Login checks the credentials and issues a signed access token. A
// missing account and a wrong password are indistinguishable for the
// caller.
func (as *AuthService) Login(ctx context.Context, username, password string) (string, User, error) {
	user, err := as.storage.GetByUsername(ctx, username)
	if err == ErrUserNotFound {
		return "", User{}, ErrBadCredentials
	}
	if err != nil {
		return "", User{}, err
	}

	if !user.Enabled || !CheckPassword(user.PasswordHash, password) {
		return "", User{}, ErrBadCredentials
	}

	token, err := NewAccessToken(as.config.Auth.Secret, user.ID, user.Role, as.config.Auth.TokenTTL, as.clock.Now().UTC())
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

// GetUser retrieves an account based on its ID.
func (as *AuthService) GetUser(ctx context.Context, id string) (User, error) {
	user, err := as.storage.GetOne(ctx, id)
	return user, err
}

// ListUsers retrieves every registered account. Serialized users never
// carry the password hash.
func (as *AuthService) ListUsers(ctx context.Context) ([]User, error) {
	users, err := as.storage.GetAll(ctx)
	return users, err
}
