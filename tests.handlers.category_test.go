package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newCategoryAPIForTest(categories CategoryStorage) *APIHandler {
	cats := NewCategoryService(zap.NewNop(), nil, NewMockClocker(), categories)
	return NewAPIHandler(zap.NewNop(), nil, &Statistics{started: NewMockClocker().Now()},
		NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true), nil, nil, nil, nil, nil, cats)
}

// TestCreateCategoryHandler ensures api handler can create a category and
// rejects a name already in use.
func TestCreateCategoryHandler(t *testing.T) {
	t.Run("should pass: valid payload", func(t *testing.T) {
		mockRepo := &MockCategoryStorage{
			GetAllFunc: func(ctx context.Context) ([]Category, error) {
				return []Category{}, nil
			},
			AddFunc: func(ctx context.Context, id string, category Category) error {
				return nil
			},
		}
		api := newCategoryAPIForTest(mockRepo)

		payload, err := json.Marshal(Category{Name: "Novel", Description: "Long form fiction."})
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/categories", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateCategory(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusCreated, res.StatusCode)
	})

	t.Run("should fail: name already in use", func(t *testing.T) {
		mockRepo := &MockCategoryStorage{
			GetAllFunc: func(ctx context.Context) ([]Category, error) {
				return []Category{{ID: "c:1", Name: "Novel"}}, nil
			},
			AddFunc: func(ctx context.Context, id string, category Category) error {
				t.Fatal("a duplicated category name must not reach the storage")
				return nil
			},
		}
		api := newCategoryAPIForTest(mockRepo)

		payload, err := json.Marshal(Category{Name: "novel"})
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/categories", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateCategory(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusConflict, res.StatusCode)
	})

	t.Run("should fail: missing name", func(t *testing.T) {
		api := newCategoryAPIForTest(&MockCategoryStorage{})

		payload, err := json.Marshal(Category{Description: "No name."})
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/categories", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateCategory(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}
