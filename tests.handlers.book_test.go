package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func newBookAPIForTest(books BookStorage) *APIHandler {
	bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), books)
	return NewAPIHandler(zap.NewNop(), nil, &Statistics{started: NewMockClocker().Now()},
		NewMockClocker(), NewMockUIDHandler("cb8f2136-fae4-4200-85d9-3533c7f8c70d", true), bs, nil, nil, nil, nil, nil)
}

// TestStatusHandler ensures api handler can provides its status.
func TestStatusHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()
	api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: NewMockClocker().Now()},
		NewMockClocker(), NewMockUIDHandler("", true), nil, nil, nil, nil, nil, nil)
	api.Status(w, req, httprouter.Params{})
	res := w.Result()
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
	m := make(map[string]interface{})
	err = json.Unmarshal(data, &m)
	assert.NoError(t, err)

	_, ok := m["requestid"]
	assert.True(t, ok)

	v, ok := m["status"]
	assert.True(t, ok)
	assert.Equal(t, "up & running since 0 mins", v)

	v, ok = m["message"]
	assert.True(t, ok)
	assert.Equal(t, v, "Hello. Bookstore api is available. Enjoy :)")
}

// TestCreateBookHandler ensures api handler can create a book.
//
//nolint:funlen
func TestCreateBookHandler(t *testing.T) {
	mockRepo := &MockBookStorage{
		AddFunc: func(ctx context.Context, id string, book Book) error {
			return nil
		},
	}
	api := newBookAPIForTest(mockRepo)

	t.Run("should pass: valid payload", func(t *testing.T) {
		book := Book{
			Title:       "Test book title",
			Description: "Test book description",
			Author:      "Jane Austen",
			Category:    "Novel",
			Price:       10.00,
			Stock:       4,
		}
		payload, err := json.Marshal(book)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusCreated, res.StatusCode)
		assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))

		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)

		_, ok := resultMap["requestid"]
		assert.True(t, ok)

		v, ok := resultMap["status"]
		assert.True(t, ok)
		assert.Equal(t, float64(http.StatusCreated), v)

		v, ok = resultMap["message"]
		assert.True(t, ok)
		assert.Equal(t, "Book created successfully.", v)

		v, ok = resultMap["data"]
		assert.True(t, ok)

		bookMap, ok := v.(map[string]interface{})
		assert.True(t, ok)
		assert.Equal(t, "b:cb8f2136-fae4-4200-85d9-3533c7f8c70d", bookMap["id"])
		assert.Equal(t, "Test book title", bookMap["title"])
		assert.Equal(t, "Test book description", bookMap["description"])
		assert.Equal(t, "Jane Austen", bookMap["author"])
		assert.Equal(t, 10.00, bookMap["price"])
		assert.Equal(t, float64(4), bookMap["stock"])

		assert.NotEmpty(t, bookMap["createdAt"])
		assert.NotEmpty(t, bookMap["updatedAt"])
	})

	t.Run("should fail: storage insertion failure", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			AddFunc: func(ctx context.Context, id string, book Book) error {
				return errors.New("storage failure")
			},
		}
		api := newBookAPIForTest(mockRepo)

		book := Book{
			Title:  "Test book title",
			Author: "Jane Austen",
			Price:  10.00,
			Stock:  4,
		}
		payload, err := json.Marshal(book)
		assert.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(payload))
		w := httptest.NewRecorder()
		api.CreateBook(w, req, httprouter.Params{})
		res := w.Result()
		defer res.Body.Close()
		data, err := io.ReadAll(res.Body)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

		resultMap := make(map[string]interface{})
		err = json.Unmarshal(data, &resultMap)
		assert.NoError(t, err)

		v, ok := resultMap["message"]
		assert.True(t, ok)
		assert.Equal(t, "failed to create the book", v)
	})

	t.Run("should fail: required field in payload", func(t *testing.T) {
		testCases := []struct {
			name     string
			payload  []byte
			expected string
		}{
			{
				name:     "empty title",
				payload:  []byte(`{"title":"", "author":"Jane Austen", "price":10.00, "stock":4}`),
				expected: "title is required",
			},
			{
				name:     "missing author",
				payload:  []byte(`{"title":"Test book title", "price":10.00, "stock":4}`),
				expected: "author is required",
			},
			{
				name:     "negative price",
				payload:  []byte(`{"title":"Test book title", "author":"Jane Austen", "price":-1.00, "stock":4}`),
				expected: "price must not be negative",
			},
			{
				name:     "negative stock",
				payload:  []byte(`{"title":"Test book title", "author":"Jane Austen", "price":10.00, "stock":-1}`),
				expected: "stock must not be negative",
			},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				req := httptest.NewRequest(http.MethodPost, "/v1/books", bytes.NewBuffer(tc.payload))
				w := httptest.NewRecorder()
				api.CreateBook(w, req, httprouter.Params{})
				res := w.Result()
				defer res.Body.Close()
				assert.Equal(t, http.StatusBadRequest, res.StatusCode)
				data, err := io.ReadAll(res.Body)
				assert.NoError(t, err)
				resultMap := make(map[string]interface{})
				assert.NoError(t, json.Unmarshal(data, &resultMap))
				assert.Equal(t, tc.expected, resultMap["data"])
			})
		}
	})
}

// TestGetOneBookHandler ensures book retrieval honors the id format.
func TestGetOneBookHandler(t *testing.T) {
	t.Run("should fail: missing book", func(t *testing.T) {
		mockRepo := &MockBookStorage{
			GetOneFunc: func(ctx context.Context, id string) (Book, error) {
				return Book{}, ErrBookNotFound
			},
		}
		api := newBookAPIForTest(mockRepo)

		missingBookID := "b:cb8f2136-fae4-4200-85d9-3533c7f8c70d"
		req := httptest.NewRequest(http.MethodGet, "/v1/books/"+missingBookID, nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: missingBookID}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusNotFound, res.StatusCode)
	})

	t.Run("should fail: invalid book id", func(t *testing.T) {
		bs := NewBookService(zap.NewNop(), nil, NewMockClocker(), &MockBookStorage{})
		api := NewAPIHandler(zap.NewNop(), nil, &Statistics{started: NewMockClocker().Now()},
			NewMockClocker(), NewMockUIDHandler("", false), bs, nil, nil, nil, nil, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/books/whatever", nil)
		w := httptest.NewRecorder()
		api.GetOneBook(w, req, httprouter.Params{{Key: "id", Value: "whatever"}})
		res := w.Result()
		defer res.Body.Close()
		assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	})
}

// TestDeleteOneBook_MissingBook ensures deletion of an unknown book answers 404.
func TestDeleteOneBook_MissingBook(t *testing.T) {
	mockRepo := &MockBookStorage{
		GetOneFunc: func(ctx context.Context, id string) (Book, error) {
			return Book{}, ErrBookNotFound
		},
	}
	api := newBookAPIForTest(mockRepo)

	missingBookID := "b:cb8f2136-fae4-4200-85d9-3533c7f8c70d"
	req := httptest.NewRequest(http.MethodDelete, "/v1/books/"+missingBookID, nil)
	w := httptest.NewRecorder()
	api.DeleteOneBook(w, req, httprouter.Params{{Key: "id", Value: missingBookID}})
	res := w.Result()
	defer res.Body.Close()
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Equal(t, "application/json; charset=UTF-8", res.Header.Get("Content-Type"))
}
