package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupAuthorRoutes injects the author related api endpoints. Reading
// authors is public, managing them requires the admin role.
func (api *APIHandler) SetupAuthorRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/authors", m.public(api.GetAllAuthors))
	router.GET("/v1/authors/:id", m.public(api.GetOneAuthor))
	router.POST("/v1/authors", m.admin(api.CreateAuthor))
	router.PUT("/v1/authors/:id", m.admin(api.UpdateAuthor))
	router.DELETE("/v1/authors/:id", m.admin(api.DeleteOneAuthor))
	return router
}
