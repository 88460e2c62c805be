package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestMiddlewaresStacks ensures we get the public, authenticated, admin and ops
// middlewares stacks with exact number of elements in those stacks.
func TestMiddlewaresStacks(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", true), nil, nil, nil, nil, nil, nil)
	pub, auth, admin, ops := api.MiddlewaresStacks()
	assert.Equal(t, 6, len(*pub))
	assert.Equal(t, 7, len(*auth))
	assert.Equal(t, 8, len(*admin))
	assert.Equal(t, 4, len(*ops))
}

// TestChain ensures each middleware in the stack is called as well the handler.
func TestChain(t *testing.T) {
	var ca, cb, cc, ch bool
	queue := make(chan int, 4)

	middlewareA := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 1
			ca = true
			next(w, r, ps)
		}
	}
	middlewareB := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 2
			cb = true
			next(w, r, ps)
		}
	}
	middlewareC := func(next httprouter.Handle) httprouter.Handle {
		return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
			queue <- 3
			cc = true
			next(w, r, ps)
		}
	}
	middlewares := Middlewares{
		middlewareA,
		middlewareB,
		middlewareC,
	}

	handler := func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		queue <- 4
		ch = true
	}

	chained := (&middlewares).Chain(handler)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	chained(w, req, nil)

	t.Run("check calling", func(t *testing.T) {
		assert.Equal(t, true, ca)
		assert.Equal(t, true, cb)
		assert.Equal(t, true, cc)
		assert.Equal(t, true, ch)
	})

	t.Run("check ordering", func(t *testing.T) {
		assert.Equal(t, 1, <-queue)
		assert.Equal(t, 2, <-queue)
		assert.Equal(t, 3, <-queue)
		assert.Equal(t, 4, <-queue)
	})
}

// TestRequestsCounterMiddleware ensures the request counter increment.
func TestRequestsCounterMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: NewMockClocker().Now(), called: 0}, NewMockClocker(), NewMockUIDHandler("abc", true), nil, nil, nil, nil, nil, nil)
	req := httptest.NewRequest("GET", "/v1/books", nil)
	w := httptest.NewRecorder()
	var called bool
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
	}
	wrapped := api.RequestsCounterMiddleware(handler)
	wrapped(w, req, nil)
	assert.Equal(t, true, called)
	assert.Equal(t, uint64(1), api.stats.called)
}

// TestRequestIDMiddleware ensures each request gets a unique id into its context.
func TestRequestIDMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", true), nil, nil, nil, nil, nil, nil)
	req := httptest.NewRequest("GET", "/v1/cart", nil)
	w := httptest.NewRecorder()
	var gotID string
	handler := func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		gotID = GetValueFromContext(req.Context(), ContextRequestID)
	}
	wrapped := api.RequestIDMiddleware(handler)
	wrapped(w, req, nil)
	assert.Equal(t, "r:abc", gotID)
}

// TestAuthMiddleware ensures requests without a valid bearer token are rejected
// with 401 and that a valid token injects the user id and role into the context.
func TestAuthMiddleware(t *testing.T) {
	config := &Config{Auth: AuthConfig{Secret: "unit-tests-secret"}}
	api := NewAPIHandler(zap.NewNop(), config, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", true), nil, nil, nil, nil, nil, nil)

	t.Run("missing authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/cart", nil)
		w := httptest.NewRecorder()
		var called bool
		wrapped := api.AuthMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			called = true
		})
		wrapped(w, req, nil)
		assert.Equal(t, false, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "please login to access this resource")
	})

	t.Run("malformed authorization header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/cart", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()
		var called bool
		wrapped := api.AuthMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			called = true
		})
		wrapped(w, req, nil)
		assert.Equal(t, false, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer not.a.token")
		w := httptest.NewRecorder()
		var called bool
		wrapped := api.AuthMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			called = true
		})
		wrapped(w, req, nil)
		assert.Equal(t, false, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := NewAccessToken("some-other-secret", "u:cb8f2136", RoleUser, time.Hour, NewMockClocker().Now())
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		var called bool
		wrapped := api.AuthMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			called = true
		})
		wrapped(w, req, nil)
		assert.Equal(t, false, called)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := NewAccessToken(config.Auth.Secret, "u:cb8f2136", RoleUser, time.Hour, time.Now())
		require.NoError(t, err)
		req := httptest.NewRequest("GET", "/v1/cart", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		var gotUserID, gotRole string
		wrapped := api.AuthMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			gotUserID = GetValueFromContext(req.Context(), ContextUserID)
			gotRole = GetValueFromContext(req.Context(), ContextUserRole)
		})
		wrapped(w, req, nil)
		assert.Equal(t, "u:cb8f2136", gotUserID)
		assert.Equal(t, RoleUser, gotRole)
	})
}

// TestAdminOnlyMiddleware ensures only requests carrying the admin role pass through.
func TestAdminOnlyMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", true), nil, nil, nil, nil, nil, nil)

	t.Run("user role rejected", func(t *testing.T) {
		req := requestWithUser(httptest.NewRequest("DELETE", "/v1/books/b:1", nil), "u:1")
		w := httptest.NewRecorder()
		var called bool
		wrapped := api.AdminOnlyMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			called = true
		})
		wrapped(w, req, nil)
		assert.Equal(t, false, called)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "you are not allowed to access this resource")
	})

	t.Run("admin role passes", func(t *testing.T) {
		req := httptest.NewRequest("DELETE", "/v1/books/b:1", nil)
		ctx := context.WithValue(req.Context(), ContextUserID, "u:1")
		ctx = context.WithValue(ctx, ContextUserRole, RoleAdmin)
		req = req.WithContext(ctx)
		w := httptest.NewRecorder()
		var called bool
		wrapped := api.AdminOnlyMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
			called = true
		})
		wrapped(w, req, nil)
		assert.Equal(t, true, called)
	})
}

// TestMaintenanceMiddleware ensures public requests are short-circuited with 503
// while maintenance mode is enabled and pass through once disabled.
func TestMaintenanceMiddleware(t *testing.T) {
	api := NewAPIHandler(zap.NewNop(), &Config{}, &Statistics{started: NewMockClocker().Now()}, NewMockClocker(), NewMockUIDHandler("abc", true), nil, nil, nil, nil, nil, nil)
	var called bool
	wrapped := api.MaintenanceMiddleware(func(w http.ResponseWriter, req *http.Request, ps httprouter.Params) {
		called = true
	})

	api.mode.enabled.Store(true)
	api.mode.message = "upgrading the catalog"
	w := httptest.NewRecorder()
	wrapped(w, httptest.NewRequest("GET", "/v1/books", nil), nil)
	assert.Equal(t, false, called)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "upgrading the catalog")

	api.mode.enabled.Store(false)
	w = httptest.NewRecorder()
	wrapped(w, httptest.NewRequest("GET", "/v1/books", nil), nil)
	assert.Equal(t, true, called)
}
