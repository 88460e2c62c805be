package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupCartRoutes injects the cart related api endpoints. Every cart
// operation runs on behalf of the authenticated user.
func (api *APIHandler) SetupCartRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/cart", m.auth(api.GetCart))
	router.POST("/v1/cart/items", m.auth(api.AddCartItem))
	router.PUT("/v1/cart/items/:id", m.auth(api.UpdateCartItem))
	router.DELETE("/v1/cart/items/:id", m.auth(api.RemoveCartItem))
	router.DELETE("/v1/cart", m.auth(api.ClearCart))
	router.POST("/v1/cart/checkout", m.auth(api.Checkout))
	return router
}
