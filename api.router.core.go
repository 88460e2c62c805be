package main

import (
	_ "github.com/Krisaleth/bookstore-management/docs"
	"github.com/julienschmidt/httprouter"
	httpswagger "github.com/swaggo/http-swagger/v2"
)

// MiddlewareMap contains middlewares chains to use for public-facing,
// authenticated, admin and ops requests.
type MiddlewareMap struct {
	public func(httprouter.Handle) httprouter.Handle
	auth   func(httprouter.Handle) httprouter.Handle
	admin  func(httprouter.Handle) httprouter.Handle
	ops    func(httprouter.Handle) httprouter.Handle
}

// SetupRoutes injects book, author, category, cart, order, auth and ops related endpoints if required.
func (api *APIHandler) SetupRoutes(router *httprouter.Router, m *MiddlewareMap) *httprouter.Router {
	router.RedirectTrailingSlash = true
	router.NotFound = api.NotFound()
	api.SetupBookRoutes(router, m)
	api.SetupAuthorRoutes(router, m)
	api.SetupCategoryRoutes(router, m)
	api.SetupCartRoutes(router, m)
	api.SetupOrderRoutes(router, m)
	api.SetupAuthRoutes(router, m)
	if api.config.OpsEndpointsEnable {
		api.SetupOpsRoutes(router, m)
	}
	router.GET("/swagger/", m.public(api.OpsHandlerWrapper(httpswagger.WrapHandler)))
	return router
}
