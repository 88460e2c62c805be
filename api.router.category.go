package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupCategoryRoutes injects the category related api endpoints.
// Reading categories is public, managing them requires the admin role.
func (api *APIHandler) SetupCategoryRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.GET("/v1/categories", m.public(api.GetAllCategories))
	router.GET("/v1/categories/:id", m.public(api.GetOneCategory))
	router.POST("/v1/categories", m.admin(api.CreateCategory))
	router.PUT("/v1/categories/:id", m.admin(api.UpdateCategory))
	router.DELETE("/v1/categories/:id", m.admin(api.DeleteOneCategory))
	return router
}
