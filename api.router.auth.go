package main

import (
	"github.com/julienschmidt/httprouter"
)

// SetupAuthRoutes injects the account related api endpoints.
func (api *APIHandler) SetupAuthRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.POST("/v1/auth/register", m.public(api.Register))
	router.POST("/v1/auth/login", m.public(api.Login))
	router.GET("/v1/auth/me", m.auth(api.GetProfile))
	router.GET("/v1/admin/users", m.admin(api.GetAllUsers))
	return router
}
