package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetCart serves the authenticated user cart with its derived totals.
func (api *APIHandler) GetCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	cart, err := api.cartService.Get(r.Context(), userID)
	if err != nil {
		api.logger.Error("failed to get cart", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get cart", zap.String("user.id", userID), zap.String("request.id", requestID))
	total := cart.ItemCount()
	resp := GenericResponse(requestID, http.StatusOK, "Cart fetched successfully.", &total, CartView(cart))
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// AddCartItem adds one copy of a book into the user cart. The book details
// are snapshotted from the live catalog at this moment so the stored line
// carries the current title, price and stock ceiling.
func (api *APIHandler) AddCartItem(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	var req AddCartItemRequest
	err := DecodeRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to add cart item", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to add the item to the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if ok := api.idsHandler.IsValid(req.BookID, BookIDPrefix); !ok {
		api.logger.Error("book id provided is not valid", zap.String("book.id", req.BookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "book id provided is not valid", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	book, err := api.bookService.GetOne(r.Context(), req.BookID)
	if err == ErrBookNotFound {
		api.logger.Error("book does not exist", zap.String("book.id", req.BookID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "book does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get book", zap.String("book.id", req.BookID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to add the item to the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	line := CartLine{
		BookID:   book.ID,
		Title:    book.Title,
		Price:    book.Price,
		ImageURL: book.ImageURL,
		Stock:    book.Stock,
	}
	cart, err := api.cartService.AddItem(r.Context(), userID, line)
	if errors.Is(err, ErrStockExceeded) {
		api.logger.Error("stock ceiling reached for cart item", zap.String("book.id", req.BookID), zap.String("user.id", userID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusConflict, "not enough stock available for this book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to add cart item", zap.String("book.id", req.BookID), zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to add the item to the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to add cart item", zap.String("book.id", req.BookID), zap.String("user.id", userID), zap.String("request.id", requestID))
	total := cart.ItemCount()
	resp := GenericResponse(requestID, http.StatusOK, "Item added to the cart successfully.", &total, CartView(cart))
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateCartItem sets the quantity of one cart line. A quantity of zero
// or below removes the line.
func (api *APIHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	id := ps.ByName("id")
	var req UpdateCartItemRequest
	err := DecodeRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to update cart item", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the cart item", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	cart, err := api.cartService.UpdateQuantity(r.Context(), userID, id, req.Quantity)
	if errors.Is(err, ErrStockExceeded) {
		api.logger.Error("stock ceiling reached for cart item", zap.String("book.id", id), zap.String("user.id", userID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusConflict, "not enough stock available for this book", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update cart item", zap.String("book.id", id), zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the cart item", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update cart item", zap.String("book.id", id), zap.String("user.id", userID), zap.String("request.id", requestID))
	total := cart.ItemCount()
	resp := GenericResponse(requestID, http.StatusOK, "Cart item updated successfully.", &total, CartView(cart))
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// RemoveCartItem removes one cart line whatever its quantity.
func (api *APIHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	id := ps.ByName("id")
	cart, err := api.cartService.RemoveItem(r.Context(), userID, id)
	if err != nil {
		api.logger.Error("failed to remove cart item", zap.String("book.id", id), zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to remove the cart item", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to remove cart item", zap.String("book.id", id), zap.String("user.id", userID), zap.String("request.id", requestID))
	total := cart.ItemCount()
	resp := GenericResponse(requestID, http.StatusOK, "Cart item removed successfully.", &total, CartView(cart))
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// ClearCart empties the user cart.
func (api *APIHandler) ClearCart(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	err := api.cartService.Clear(r.Context(), userID)
	if err != nil {
		api.logger.Error("failed to clear cart", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to clear the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to clear cart", zap.String("user.id", userID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Cart cleared successfully.", nil, CartView(Cart{}))
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Checkout converts the user cart into an order. The shipping address is
// validated before any order work happens. Only the book ids and quantities
// of the cart cross into the order service which reprices every line from
// the live catalog. The cart is cleared only once the order is accepted,
// a rejected checkout leaves the cart exactly as it was.
func (api *APIHandler) Checkout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	var req CheckoutRequest
	err := DecodeRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to checkout cart", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to checkout the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateCheckoutRequestBody(&req)
	if err != nil {
		api.logger.Error("failed to checkout cart", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "a shipping address is required to checkout", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	cart, err := api.cartService.Get(r.Context(), userID)
	if err != nil {
		api.logger.Error("failed to checkout cart", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to checkout the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if cart.IsEmpty() {
		api.logger.Error("cannot checkout an empty cart", zap.String("user.id", userID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "cannot checkout an empty cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	orderReq := CreateOrderRequest{ShippingAddress: req.ShippingAddress}
	for _, line := range cart.Lines {
		orderReq.Items = append(orderReq.Items, OrderItemRequest{BookID: line.BookID, Quantity: line.Quantity})
	}

	order, err := api.orderService.Create(r.Context(), userID, orderReq)
	if errors.Is(err, ErrInsufficientStock) {
		api.logger.Error("failed to checkout cart", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusConflict, err.Error(), EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to checkout cart", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to checkout the cart", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	if err = api.cartService.Clear(r.Context(), userID); err != nil {
		// the order is placed, an uncleared cart is recoverable by the user.
		api.logger.Error("failed to clear cart after checkout", zap.String("user.id", userID), zap.String("order.id", order.ID), zap.String("request.id", requestID), zap.Error(err))
	}

	api.logger.Info("success to checkout cart", zap.String("user.id", userID), zap.String("order.id", order.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusCreated, "Order placed successfully.", nil, order)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
