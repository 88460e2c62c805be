package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.uber.org/zap"
)

func (api *APIHandler) CreateAuthor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	author := Author{}
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeRequestBody(r, &author)
	if err != nil {
		api.logger.Error("failed to create author", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to create the author", author)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateCreateAuthorRequestBody(&author)
	if err != nil {
		api.logger.Error("failed to create author", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to create the author", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	author.ID = api.idsHandler.Generate(AuthorIDPrefix)
	author.CreatedAt = api.clock.Now().UTC().String()
	author.UpdatedAt = api.clock.Now().UTC().String()

	err = api.authorService.Add(r.Context(), author.ID, author)
	if err != nil {
		api.logger.Error("failed to create author", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to create the author", author)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	resp := GenericResponse(requestID, http.StatusCreated, "Author created successfully.", nil, author)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

func (api *APIHandler) GetAllAuthors(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	authors, err := api.authorService.GetAll(r.Context())
	if err != nil {
		api.logger.Error("failed to get all authors", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get all authors", authors)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get all authors", zap.String("request.id", requestID))
	total := len(authors)
	resp := GenericResponse(requestID, http.StatusOK, "All authors fetched successfully.", &total, authors)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.Error(err))
	}
}

func (api *APIHandler) GetOneAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	if ok := api.idsHandler.IsValid(id, AuthorIDPrefix); !ok {
		api.logger.Error("author id provided is not valid", zap.String("author.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "author id provided is not valid", Author{})
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	author, err := api.authorService.GetOne(r.Context(), id)
	if err == ErrAuthorNotFound {
		api.logger.Error("author does not exist", zap.String("author.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "author does not exist", author)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to get author", zap.String("author.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to get the author", author)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to get author", zap.String("author.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Author fetched successfully.", nil, author)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

func (api *APIHandler) UpdateAuthor(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var author Author
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	err := DecodeRequestBody(r, &author)
	if err != nil {
		api.logger.Error("failed to update author", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the author", author)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	err = ValidateUpdateAuthorRequestBody(&author)
	if err != nil {
		api.logger.Error("failed to update author", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "failed to update the author", err.Error())
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}

	author, err = api.authorService.Update(r.Context(), author.ID, author)
	if err != nil {
		api.logger.Error("failed to update author", zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to update the author", author)
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to update author", zap.String("author.id", author.ID), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Author updated successfully.", nil, author)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}

func (api *APIHandler) DeleteOneAuthor(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	requestID := GetValueFromContext(r.Context(), ContextRequestID)
	id := ps.ByName("id")
	if ok := api.idsHandler.IsValid(id, AuthorIDPrefix); !ok {
		api.logger.Error("author id provided is not valid", zap.String("author.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusBadRequest, "author id provided is not valid", Author{})
		if err := WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	err := api.authorService.Delete(r.Context(), id)
	if err == ErrAuthorNotFound {
		api.logger.Error("author does not exist", zap.String("author.id", id), zap.String("request.id", requestID))
		errResp := NewAPIError(requestID, http.StatusNotFound, "author does not exist", Author{})
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	if err != nil {
		api.logger.Error("failed to delete author", zap.String("author.id", id), zap.String("request.id", requestID), zap.Error(err))
		errResp := NewAPIError(requestID, http.StatusInternalServerError, "failed to delete the author", Author{})
		if err = WriteErrorResponse(r.Context(), w, errResp); err != nil {
			api.logger.Error("failed to send error response", zap.String("request.id", requestID), zap.Error(err))
		}
		return
	}
	api.logger.Info("success to delete author", zap.String("author.id", id), zap.String("request.id", requestID))
	resp := GenericResponse(requestID, http.StatusOK, "Author deleted successfully.", nil, nil)
	if err = WriteResponse(r.Context(), w, resp); err != nil {
		api.logger.Error("failed to send response", zap.String("request.id", requestID), zap.Error(err))
	}
}
