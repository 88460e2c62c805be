package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// GetMyOrders serves the orders of the authenticated user, newest first.
func (api *APIHandler) GetMyOrders(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	orders, err := api.orderService.ListForUser(r.Context(), userID)
	if err != nil {
		api.logger.Error("failed to get user orders", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get your orders", orders)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get user orders", zap.String("user.id", userID), zap.String("request.id", requestID))
	total := len(orders)
	resp := GenericResponse(requestID, http.StatusOK, "Orders fetched successfully.", &total, orders)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetOneOrder serves one order. A regular user only sees their own orders,
// an admin sees any order.
func (api *APIHandler) GetOneOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	role := GetValueFromContext(r.Context(), ContextUserRole)
	id := ps.ByName("id")
	if ok := api.idsHandler.IsValid(id, OrderIDPrefix); !ok {
		api.logger.Error("order id provided is not valid", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "order id provided is not valid", EmptyData)
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	order, err := api.orderService.GetOne(r.Context(), id)
	if err == ErrOrderNotFound {
		api.logger.Error("order does not exist", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "order does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get order", zap.String("order.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the order", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if order.UserID != userID && role != RoleAdmin {
		api.logger.Error("order does not belong to user", zap.String("order.id", id), zap.String("user.id", userID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "order does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get order", zap.String("order.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Order fetched successfully.", nil, order)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// CancelOrder cancels an order of the authenticated user and restores the
// stock it had reserved. A delivered order cannot be cancelled.
func (api *APIHandler) CancelOrder(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	role := GetValueFromContext(r.Context(), ContextUserRole)
	id := ps.ByName("id")
	order, err := api.orderService.GetOne(r.Context(), id)
	if err == ErrOrderNotFound {
		api.logger.Error("order does not exist", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "order does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get order", zap.String("order.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to cancel the order", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if order.UserID != userID && role != RoleAdmin {
		api.logger.Error("order does not belong to user", zap.String("order.id", id), zap.String("user.id", userID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "order does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	order, err = api.orderService.Cancel(r.Context(), id)
	if errors.Is(err, ErrOrderNotCancellable) {
		api.logger.Error("order cannot be cancelled", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusConflict, "a delivered order cannot be cancelled", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to cancel order", zap.String("order.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to cancel the order", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to cancel order", zap.String("order.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Order cancelled successfully.", nil, order)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllOrdersForAdmin serves every order of the store to an admin.
func (api *APIHandler) GetAllOrdersForAdmin(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	orders, err := api.orderService.ListAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all orders", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all orders", orders)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all orders", zap.String("request.id", requestID))
	total := len(orders)
	resp := GenericResponse(requestID, http.StatusOK, "All orders fetched successfully.", &total, orders)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// UpdateOrderStatus moves an order to a new status. Admin only.
// Usage: PUT /v1/orders/:id/status?status=SHIPPED
func (api *APIHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	status := OrderStatus(r.URL.Query().Get("status"))
	if !status.IsValid() {
		api.logger.Error("order status provided is not valid", zap.String("order.id", id), zap.String("order.status", string(status)), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "order status provided is not valid", EmptyData)
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	order, err := api.orderService.UpdateStatus(r.Context(), id, status)
	if err == ErrOrderNotFound {
		api.logger.Error("order does not exist", zap.String("order.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "order does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to update order status", zap.String("order.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the order status", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update order status", zap.String("order.id", id), zap.String("order.status", string(status)), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Order status updated successfully.", nil, order)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
