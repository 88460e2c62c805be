package main

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

// Register creates a new account with the USER role.
func (api *APIHandler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var req RegisterRequest
	err := DecodeRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to register user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to register the user", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateRegisterRequestBody(&req)
	if err != nil {
		api.logger.Error("failed to register user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to register the user", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	user, err := api.authService.Register(r.Context(), req)
	if errors.Is(err, ErrUserAlreadyExists) {
		api.logger.Error("username already taken", zap.String("user.name", req.Username), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusConflict, "username already taken", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to register user", zap.String("user.name", req.Username), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to register the user", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to register user", zap.String("user.id", user.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusCreated, "User registered successfully.", nil, user)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// Login authenticates a user and issues a bearer token.
func (api *APIHandler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	var req LoginRequest
	err := DecodeRequestBody(r, &req)
	if err != nil {
		api.logger.Error("failed to login user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to login", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateLoginRequestBody(&req)
	if err != nil {
		api.logger.Error("failed to login user", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to login", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	token, user, err := api.authService.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, ErrBadCredentials) {
		api.logger.Error("invalid credentials", zap.String("user.name", req.Username), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusUnauthorized, "invalid username or password", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to login user", zap.String("user.name", req.Username), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to login", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to login user", zap.String("user.id", user.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Logged in successfully.", nil, map[string]interface{}{
		"token": token,
		"user":  user,
	})
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetProfile serves the account details of the authenticated user.
func (api *APIHandler) GetProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	userID := GetValueFromContext(r.Context(), ContextUserID)
	user, err := api.authService.GetUser(r.Context(), userID)
	if err == ErrUserNotFound {
		api.logger.Error("user does not exist", zap.String("user.id", userID), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "user does not exist", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get user", zap.String("user.id", userID), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the user", EmptyData)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get user", zap.String("user.id", userID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "User fetched successfully.", nil, user)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

// GetAllUsers serves the full list of registered accounts to the back office.
func (api *APIHandler) GetAllUsers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	users, err := api.authService.ListUsers(r.Context())
	if err != nil {
		api.logger.Error("failed to get all users", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all users", users)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all users", zap.String("request.id", requestID))
	total := len(users)
	resp := GenericResponse(requestID, http.StatusOK, "All users fetched successfully.", &total, users)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.Error(err))
	}
}
