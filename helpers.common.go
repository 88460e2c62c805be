package main

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"os"
	"strings"
)

var (
	ErrBookNotFound          = errors.New("book not found")
	ErrAuthorNotFound        = errors.New("author not found")
	ErrCategoryNotFound      = errors.New("category not found")
	ErrCategoryAlreadyExists = errors.New("category already exists")
	ErrOrderNotFound         = errors.New("order not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrUserAlreadyExists     = errors.New("user already exists")
	ErrBadCredentials        = errors.New("invalid username or password")
	ErrStockExceeded         = errors.New("not enough stock available")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrCartCorrupt           = errors.New("cart payload corrupted")
	ErrOrderNotCancellable   = errors.New("cannot cancel a delivered order")
)

type (
	ContextKey        string
	missingFieldError string
)

const (
	BookIDPrefix     string = "b"
	AuthorIDPrefix   string = "a"
	CategoryIDPrefix string = "c"
	OrderIDPrefix    string = "o"
	UserIDPrefix     string = "u"
	RequestIDPrefix  string = "r"

	ContextRequestID     ContextKey = "request.id"
	ContextRequestNumber ContextKey = "request.number"
	ContextUserID        ContextKey = "user.id"
	ContextUserRole      ContextKey = "user.role"
)

func (m missingFieldError) Error() string {
	return string(m) + " is required"
}

// GetValueFromContext returns the value of a given key in the context
// if this key is not available, it returns an empty string.
func GetValueFromContext(ctx context.Context, contextKey ContextKey) string {
	if val := ctx.Value(contextKey); val != nil {
		return val.(string)
	}
	return ""
}

// GetRequestNumberFromContext returns the request number set in
// the context. if not previously set then it returns 0.
func GetRequestNumberFromContext(ctx context.Context) uint64 {
	if val := ctx.Value(ContextRequestNumber); val != nil {
		return val.(uint64)
	}
	return 0
}

// DecodeRequestBody is a helper function to read a json request payload.
func DecodeRequestBody(r *http.Request, v interface{}) error {
	if r.Body == nil {
		return errors.New("invalid request body")
	}
	return json.NewDecoder(r.Body).Decode(v)
}

// ValidateCreateBookRequestBody is a helper function to check if the content of a book creation request is valid.
func ValidateCreateBookRequestBody(book *Book) error {
	if len(book.Title) == 0 {
		return missingFieldError("title")
	}

	if len(book.Author) == 0 {
		return missingFieldError("author")
	}

	if book.Price < 0 {
		return errors.New("price must not be negative")
	}

	if book.Stock < 0 {
		return errors.New("stock must not be negative")
	}

	return nil
}

// ValidateUpdateBookRequestBody is a helper function to check if the content of a book update request is valid.
func ValidateUpdateBookRequestBody(book *Book) error {
	if err := ValidateCreateBookRequestBody(book); err != nil {
		return err
	}

	if len(book.ID) == 0 {
		return missingFieldError("id")
	}

	return nil
}

// ValidateCreateAuthorRequestBody is a helper function to check if the content of an author creation request is valid.
func ValidateCreateAuthorRequestBody(author *Author) error {
	if len(author.Name) == 0 {
		return missingFieldError("name")
	}

	return nil
}

// ValidateUpdateAuthorRequestBody is a helper function to check if the content of an author update request is valid.
func ValidateUpdateAuthorRequestBody(author *Author) error {
	if err := ValidateCreateAuthorRequestBody(author); err != nil {
		return err
	}

	if len(author.ID) == 0 {
		return missingFieldError("id")
	}

	return nil
}

// ValidateCreateCategoryRequestBody is a helper function to check if the content of a category creation request is valid.
func ValidateCreateCategoryRequestBody(category *Category) error {
	if len(category.Name) == 0 {
		return missingFieldError("name")
	}

	return nil
}

// ValidateUpdateCategoryRequestBody is a helper function to check if the content of a category update request is valid.
func ValidateUpdateCategoryRequestBody(category *Category) error {
	if err := ValidateCreateCategoryRequestBody(category); err != nil {
		return err
	}

	if len(category.ID) == 0 {
		return missingFieldError("id")
	}

	return nil
}

// AddCartItemRequest is the payload to put one unit of a book into the cart.
type AddCartItemRequest struct {
	BookID string `json:"bookId"`
}

// UpdateCartItemRequest is the payload to set the quantity of a cart line.
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest is the payload to turn the current cart into an order.
// Only the shipping address comes from the client, the items are read
// from the persisted cart ledger.
type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress"`
}

// ValidateCheckoutRequestBody rejects blank shipping addresses before
// any order work happens.
func ValidateCheckoutRequestBody(req *CheckoutRequest) error {
	if len(strings.TrimSpace(req.ShippingAddress)) == 0 {
		return missingFieldError("shippingAddress")
	}
	return nil
}

// RegisterRequest is the payload to create a new user account.
type RegisterRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

// LoginRequest is the payload to authenticate a user.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ValidateRegisterRequestBody is a helper function to check if the content of a registration request is valid.
func ValidateRegisterRequestBody(req *RegisterRequest) error {
	if len(req.Username) == 0 {
		return missingFieldError("username")
	}

	if len(req.Email) == 0 {
		return missingFieldError("email")
	}

	if len(req.Password) == 0 {
		return missingFieldError("password")
	}

	return nil
}

// ValidateLoginRequestBody is a helper function to check if the content of a login request is valid.
func ValidateLoginRequestBody(req *LoginRequest) error {
	if len(req.Username) == 0 {
		return missingFieldError("username")
	}

	if len(req.Password) == 0 {
		return missingFieldError("password")
	}

	return nil
}

// GetRequestSourceIP helps find the source IP of the caller.
func GetRequestSourceIP(r *http.Request) string {
	// Get IP from the X-REAL-IP header
	ip := r.Header.Get("X-REAL-IP")
	netIP := net.ParseIP(ip)
	if netIP != nil {
		return ip
	}

	// Get IP from X-FORWARDED-FOR header
	ips := r.Header.Get("X-FORWARDED-FOR")
	splitIps := strings.Split(ips, ",")
	for _, ip := range splitIps {
		netIP = net.ParseIP(ip)
		if netIP != nil {
			return ip
		}
	}

	// Get IP from RemoteAddr
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return ""
	}
	netIP = net.ParseIP(ip)
	if netIP != nil {
		return ip
	}
	return ""
}

// IsAppRunningInDocker checks the existence of the .dockerenv
// file at the root directory and returns a boolean result. This
// helps know if the App is running in a docker container or not.
func IsAppRunningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}
