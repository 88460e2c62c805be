package main

import (
	"context"
	"time"
)

// This file contains mocks definitions needed to perform unit tests.

type MockBookStorage struct {
	AddFunc           func(ctx context.Context, id string, book Book) error
	GetOneFunc        func(ctx context.Context, id string) (Book, error)
	DeleteFunc        func(ctx context.Context, id string) error
	UpdateFunc        func(ctx context.Context, id string, book Book) (Book, error)
	GetAllFunc        func(ctx context.Context) ([]Book, error)
	GetAvailableFunc  func(ctx context.Context) ([]Book, error)
	SearchByTitleFunc func(ctx context.Context, title string) ([]Book, error)
	GetByAuthorFunc   func(ctx context.Context, author string) ([]Book, error)
	GetByCategoryFunc func(ctx context.Context, category string) ([]Book, error)
	DeleteAllFunc     func(ctx context.Context) error
}

// Add mocks the behavior of book creation by the repository.
func (m *MockBookStorage) Add(ctx context.Context, id string, book Book) error {
	return m.AddFunc(ctx, id, book)
}

// GetOne mocks the behavior of retrieving a book by the repository.
func (m *MockBookStorage) GetOne(ctx context.Context, id string) (Book, error) {
	return m.GetOneFunc(ctx, id)
}

// Delete mocks the behavior of deleting a book by the repository.
func (m *MockBookStorage) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

// Update mocks the behavior of updating a book by the repository.
func (m *MockBookStorage) Update(ctx context.Context, id string, book Book) (Book, error) {
	return m.UpdateFunc(ctx, id, book)
}

// GetAll mocks the behavior of retrieving all books by the repository.
func (m *MockBookStorage) GetAll(ctx context.Context) ([]Book, error) {
	return m.GetAllFunc(ctx)
}

// GetAvailable mocks the behavior of retrieving in-stock books by the repository.
func (m *MockBookStorage) GetAvailable(ctx context.Context) ([]Book, error) {
	return m.GetAvailableFunc(ctx)
}

// SearchByTitle mocks the behavior of searching books by the repository.
func (m *MockBookStorage) SearchByTitle(ctx context.Context, title string) ([]Book, error) {
	return m.SearchByTitleFunc(ctx, title)
}

// GetByAuthor mocks the behavior of filtering books by author by the repository.
func (m *MockBookStorage) GetByAuthor(ctx context.Context, author string) ([]Book, error) {
	return m.GetByAuthorFunc(ctx, author)
}

// GetByCategory mocks the behavior of filtering books by category by the repository.
func (m *MockBookStorage) GetByCategory(ctx context.Context, category string) ([]Book, error) {
	return m.GetByCategoryFunc(ctx, category)
}

// DeleteAll mocks the behavior of wiping the books by the repository.
func (m *MockBookStorage) DeleteAll(ctx context.Context) error {
	return m.DeleteAllFunc(ctx)
}

// MockCartStore implements a fake CartStore.
type MockCartStore struct {
	SaveFunc   func(ctx context.Context, userID string, cart Cart) error
	LoadFunc   func(ctx context.Context, userID string) (Cart, error)
	DeleteFunc func(ctx context.Context, userID string) error
}

func (m *MockCartStore) Save(ctx context.Context, userID string, cart Cart) error {
	return m.SaveFunc(ctx, userID, cart)
}

func (m *MockCartStore) Load(ctx context.Context, userID string) (Cart, error) {
	return m.LoadFunc(ctx, userID)
}

func (m *MockCartStore) Delete(ctx context.Context, userID string) error {
	return m.DeleteFunc(ctx, userID)
}

// MockOrderStorage implements a fake OrderStorage.
type MockOrderStorage struct {
	AddFunc       func(ctx context.Context, id string, order Order) error
	GetOneFunc    func(ctx context.Context, id string) (Order, error)
	UpdateFunc    func(ctx context.Context, id string, order Order) (Order, error)
	GetAllFunc    func(ctx context.Context) ([]Order, error)
	GetByUserFunc func(ctx context.Context, userID string) ([]Order, error)
}

func (m *MockOrderStorage) Add(ctx context.Context, id string, order Order) error {
	return m.AddFunc(ctx, id, order)
}

func (m *MockOrderStorage) GetOne(ctx context.Context, id string) (Order, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockOrderStorage) Update(ctx context.Context, id string, order Order) (Order, error) {
	return m.UpdateFunc(ctx, id, order)
}

func (m *MockOrderStorage) GetAll(ctx context.Context) ([]Order, error) {
	return m.GetAllFunc(ctx)
}

func (m *MockOrderStorage) GetByUser(ctx context.Context, userID string) ([]Order, error) {
	return m.GetByUserFunc(ctx, userID)
}

// MockUserStorage implements a fake UserStorage.
type MockUserStorage struct {
	AddFunc           func(ctx context.Context, id string, user User) error
	GetOneFunc        func(ctx context.Context, id string) (User, error)
	GetByUsernameFunc func(ctx context.Context, username string) (User, error)
	UpdateFunc        func(ctx context.Context, id string, user User) (User, error)
	GetAllFunc        func(ctx context.Context) ([]User, error)
}

func (m *MockUserStorage) Add(ctx context.Context, id string, user User) error {
	return m.AddFunc(ctx, id, user)
}

func (m *MockUserStorage) GetOne(ctx context.Context, id string) (User, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockUserStorage) GetByUsername(ctx context.Context, username string) (User, error) {
	return m.GetByUsernameFunc(ctx, username)
}

func (m *MockUserStorage) Update(ctx context.Context, id string, user User) (User, error) {
	return m.UpdateFunc(ctx, id, user)
}

func (m *MockUserStorage) GetAll(ctx context.Context) ([]User, error) {
	return m.GetAllFunc(ctx)
}

// MockAuthorStorage implements a fake AuthorStorage.
type MockAuthorStorage struct {
	AddFunc    func(ctx context.Context, id string, author Author) error
	GetOneFunc func(ctx context.Context, id string) (Author, error)
	DeleteFunc func(ctx context.Context, id string) error
	UpdateFunc func(ctx context.Context, id string, author Author) (Author, error)
	GetAllFunc func(ctx context.Context) ([]Author, error)
}

func (m *MockAuthorStorage) Add(ctx context.Context, id string, author Author) error {
	return m.AddFunc(ctx, id, author)
}

func (m *MockAuthorStorage) GetOne(ctx context.Context, id string) (Author, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockAuthorStorage) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockAuthorStorage) Update(ctx context.Context, id string, author Author) (Author, error) {
	return m.UpdateFunc(ctx, id, author)
}

func (m *MockAuthorStorage) GetAll(ctx context.Context) ([]Author, error) {
	return m.GetAllFunc(ctx)
}

// MockCategoryStorage implements a fake CategoryStorage.
type MockCategoryStorage struct {
	AddFunc    func(ctx context.Context, id string, category Category) error
	GetOneFunc func(ctx context.Context, id string) (Category, error)
	DeleteFunc func(ctx context.Context, id string) error
	UpdateFunc func(ctx context.Context, id string, category Category) (Category, error)
	GetAllFunc func(ctx context.Context) ([]Category, error)
}

func (m *MockCategoryStorage) Add(ctx context.Context, id string, category Category) error {
	return m.AddFunc(ctx, id, category)
}

func (m *MockCategoryStorage) GetOne(ctx context.Context, id string) (Category, error) {
	return m.GetOneFunc(ctx, id)
}

func (m *MockCategoryStorage) Delete(ctx context.Context, id string) error {
	return m.DeleteFunc(ctx, id)
}

func (m *MockCategoryStorage) Update(ctx context.Context, id string, category Category) (Category, error) {
	return m.UpdateFunc(ctx, id, category)
}

func (m *MockCategoryStorage) GetAll(ctx context.Context) ([]Category, error) {
	return m.GetAllFunc(ctx)
}

// MockQueuer implements a fake Queuer.
type MockQueuer struct {
	PushFunc func(ctx context.Context, qid string, event OrderEvent) error
	PopFunc  func(ctx context.Context, qids ...string) (string, OrderEvent, error)
}

func (m *MockQueuer) Push(ctx context.Context, qid string, event OrderEvent) error {
	return m.PushFunc(ctx, qid, event)
}

func (m *MockQueuer) Pop(ctx context.Context, qids ...string) (string, OrderEvent, error) {
	return m.PopFunc(ctx, qids...)
}

// MockClocker implements a fake Clocker.
type MockClocker struct {
	MockNow time.Time
}

// NewMockClocker returns a mocked instance with fixed time.
func NewMockClocker() *MockClocker {
	return &MockClocker{time.Date(2023, 0o7, 0o2, 0o0, 0o0, 0o0, 0o00000000, time.UTC)}
}

// Now returns an already defined time to be used as mock. This
// equals to `Sun, 02 Jul 2023 00:00:00 UTC` in time.RFC1123 format.
// equals to `2023-07-02 00:00:00 +0000 UTC` in String format.
func (mck *MockClocker) Now() time.Time {
	return mck.MockNow
}

// MockUIDHandler implements a fake UIDHandler.
type MockUIDHandler struct {
	MockedUID string
	Valid     bool
}

// NewMockUIDHandler returns a mocked instance with predictable id.
func NewMockUIDHandler(id string, valid bool) *MockUIDHandler {
	return &MockUIDHandler{MockedUID: id, Valid: valid}
}

// Generate constructs a predictable id to be used as mock.
func (muid *MockUIDHandler) Generate(prefix string) string {
	return prefix + ":" + muid.MockedUID
}

// IsValid mocks IsValid behavior by providing configured status.
func (muid *MockUIDHandler) IsValid(_, _ string) bool {
	return muid.Valid
}
