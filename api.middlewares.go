package main

import (
	"context"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// MiddlewareFunc is a custom type for ease of use.
type MiddlewareFunc func(httprouter.Handle) httprouter.Handle

// Middlewares is a custom type to represent a stack of
// middleware functions used to build a single chain.
type Middlewares []MiddlewareFunc

// CoreMiddleware setup the duration measurement for each request, records the
// response status code into the stats and logs the request result.
func (api *APIHandler) CoreMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		start := api.clock.Now()
		requestID := GetValueFromContext(r.Context(), ContextRequestID)

		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.String("request.ip", GetRequestSourceIP(r)),
			zap.String("request.agent", r.UserAgent()),
			zap.String("request.referer", r.Referer()),
		)

		cw := NewCustomResponseWriter(w)
		next(cw, r, ps)

		api.stats.mu.Lock()
		api.stats.status[cw.Status()]++
		api.stats.mu.Unlock()

		api.logger.Info(
			"request",
			zap.String("request.id", requestID),
			zap.String("request.method", r.Method),
			zap.String("request.path", r.URL.Path),
			zap.Int("request.status", cw.Status()),
			zap.Int("request.bytes", cw.Bytes()),
			zap.Duration("request.duration", api.clock.Now().Sub(start)),
		)
	}
}

// RequestsCounterMiddleware increments the number of received requests statistics and add this
// new value to the request context to be used during logging as `request.num` field.
func (api *APIHandler) RequestsCounterMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		ctx := context.WithValue(r.Context(), ContextRequestNumber, atomic.AddUint64(&api.stats.called, 1))
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// RequestIDMiddleware generates and add a unique id to the request context.
func (api *APIHandler) RequestIDMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := api.idsHandler.Generate(RequestIDPrefix)
		ctx := context.WithValue(r.Context(), ContextRequestID, requestID)
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// CORSMiddleware intercepts each incoming HTTP calls then apply cors headers on it.
func CORSMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE, UPDATE, PATCH, HEAD")
		w.Header().Set("Access-Control-Allow-Headers", "Origin, Access-Control-Request-Method, Access-Control-Request-Headers, Accept, Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, User-Agent, Accept-Language, Referer, DNT, Connection, Pragma, Cache-Control, TE")
		next(w, r, ps)
	}
}

// PanicRecoveryMiddleware catches any panic during the request lifecycle and produces
// an error log for further analysis. It sends a failure response to the client with 500.
func (api *APIHandler) PanicRecoveryMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		recovery := func() {
			if err := recover(); err != nil {
				requestID := GetValueFromContext(r.Context(), ContextRequestID)
				api.logger.Error("panic occurred", zap.String("request.id", requestID), zap.Any("error", err))
				errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to process the request.", EmptyData)
				if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
					api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
				}
			}
		}
		defer recovery()
		next(w, r, ps)
	}
}

// MaintenanceMiddleware short-circuits public requests with 503 while the
// maintenance mode is enabled. Ops endpoints stay reachable to disable it.
func (api *APIHandler) MaintenanceMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		if api.mode.enabled.Load() {
			ps = append(ps, httprouter.Param{Key: "status", Value: "show"})
			api.Maintenance(w, r, ps)
			return
		}
		next(w, r, ps)
	}
}

// AuthMiddleware rejects requests without a valid bearer token and injects
// the token subject and role into the request context.
func (api *APIHandler) AuthMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), ContextRequestID)
		raw := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
		if raw == "" || raw == r.Header.Get("Authorization") {
			errResp := NewAPIError(requestID, http.StatusUnauthorized, "please login to access this resource", EmptyData)
			if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
				api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
			}
			return
		}
		userID, role, err := ParseAccessToken(api.config.Auth.Secret, raw)
		if err != nil {
			api.logger.Error("invalid access token", zap.String("request.id", requestID), zap.Error(err))
			errResp := NewAPIError(requestID, http.StatusUnauthorized, "please login to access this resource", EmptyData)
			if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
				api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
			}
			return
		}
		ctx := context.WithValue(r.Context(), ContextUserID, userID)
		ctx = context.WithValue(ctx, ContextUserRole, role)
		r = r.WithContext(ctx)
		next(w, r, ps)
	}
}

// AdminOnlyMiddleware rejects authenticated requests whose role is not admin.
// It must run after AuthMiddleware which injects the role into the context.
func (api *APIHandler) AdminOnlyMiddleware(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		requestID := GetValueFromContext(r.Context(), ContextRequestID)
		if role := GetValueFromContext(r.Context(), ContextUserRole); role != RoleAdmin {
			api.logger.Error("admin role required", zap.String("request.id", requestID), zap.String("user.role", role))
			errResp := NewAPIError(requestID, http.StatusForbidden, "you are not allowed to access this resource", EmptyData)
			if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
				api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
			}
			return
		}
		next(w, r, ps)
	}
}

// MiddlewaresStacks builds the middlewares stacks applied to the public,
// authenticated, admin and ops endpoints.
func (api *APIHandler) MiddlewaresStacks() (*Middlewares, *Middlewares, *Middlewares, *Middlewares) {
	public := Middlewares{
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		api.CoreMiddleware,
		CORSMiddleware,
		api.PanicRecoveryMiddleware,
		api.MaintenanceMiddleware,
	}
	auth := append(Middlewares{}, public...)
	auth = append(auth, api.AuthMiddleware)
	admin := append(Middlewares{}, auth...)
	admin = append(admin, api.AdminOnlyMiddleware)
	ops := Middlewares{
		api.RequestsCounterMiddleware,
		api.RequestIDMiddleware,
		api.CoreMiddleware,
		api.PanicRecoveryMiddleware,
	}
	return &public, &auth, &admin, &ops
}

// Chain wraps a given httprouter.Handle with a list of middlewares.
// It does by starting from the last middleware from the list.
func (m *Middlewares) Chain(h httprouter.Handle) httprouter.Handle {
	if len(*m) == 0 {
		return h
	}
	lg := len(*m)
	handle := (*m)[lg-1](h)

	for i := lg - 2; i >= 0; i-- {
		handle = (*m)[i](handle)
	}

	return handle
}
