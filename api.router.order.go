package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupOrderRoutes injects the order related api endpoints. Users only
// reach their own orders, the store-wide views require the admin role.
func (api *APIHandler) SetupOrderRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/orders", m.auth(api.GetMyOrders))
	router.GET("/v1/orders/:id", m.auth(api.GetOneOrder))
	router.POST("/v1/orders/:id/cancel", m.auth(api.CancelOrder))
	router.GET("/v1/admin/orders", m.admin(api.GetAllOrdersForAdmin))
	router.PUT("/v1/orders/:id/status", m.admin(api.UpdateOrderStatus))
	return router
}
