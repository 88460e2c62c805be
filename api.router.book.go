package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupBookRoutes injects the catalog related api endpoints. Reading the
// catalog is public, altering it requires the admin role. The filtered
// reads live under /v1/catalog because httprouter does not accept a
// static segment next to the :id wildcard.
func (api *APIHandler) SetupBookRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/", m.public(api.Index))
	router.GET("/status", m.public(api.Status))
	router.GET("/v1/books", m.public(api.GetAllBooks))
	router.GET("/v1/books/:id", m.public(api.GetOneBook))
	router.GET("/v1/catalog/available", m.public(api.GetAvailableBooks))
	router.GET("/v1/catalog/search", m.public(api.SearchBooks))
	router.GET("/v1/catalog/author/:author", m.public(api.GetBooksByAuthor))
	router.GET("/v1/catalog/category/:category", m.public(api.GetBooksByCategory))
	router.POST("/v1/books", m.admin(api.CreateBook))
	router.PUT("/v1/books/:id", m.admin(api.UpdateBook))
	router.DELETE("/v1/books/:id", m.admin(api.DeleteOneBook))
	return router
}
