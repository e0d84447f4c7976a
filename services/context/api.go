// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/log"
	"code.kanbo.io/kanbo/modules/setting"
	"code.kanbo.io/kanbo/modules/util"
	web_types "code.kanbo.io/kanbo/modules/web/types"
)

// APIContext is the request context for the REST API
type APIContext struct {
	*Base

	// Doer is the authenticated caller, nil for anonymous requests
	Doer *user_model.User
}

// APIError is an api error with a message
type APIError struct {
	Message string `json:"message"`
}

// Error responds with an error message, in prod mode internal messages are hidden
func (ctx *APIContext) Error(status int, obj any) {
	var message string
	if err, ok := obj.(error); ok {
		message = err.Error()
	} else {
		message = fmt.Sprintf("%s", obj)
	}

	if status == http.StatusInternalServerError {
		log.ErrorWithSkip(1, "InternalServerError: %s", message)
		if setting.IsProd() {
			message = "internal server error"
		}
	}

	ctx.JSON(status, APIError{Message: message})
}

// InternalServerError responds with an error message and logs the underlying error
func (ctx *APIContext) InternalServerError(err error) {
	ctx.Error(http.StatusInternalServerError, err)
}

// NotFound responds 404
func (ctx *APIContext) NotFound(objs ...any) {
	message := http.StatusText(http.StatusNotFound)
	for _, obj := range objs {
		if err, ok := obj.(error); ok {
			message = err.Error()
		}
	}
	ctx.JSON(http.StatusNotFound, APIError{Message: message})
}

// Forbidden responds 403
func (ctx *APIContext) Forbidden(message string) {
	if message == "" {
		message = http.StatusText(http.StatusForbidden)
	}
	ctx.JSON(http.StatusForbidden, APIError{Message: message})
}

// HandleError maps a returned error onto the API status codes:
// missing resources become 404, permission denials 403, duplicates 409,
// rejected state changes 422 and bad input 400. Anything else is a 500.
func (ctx *APIContext) HandleError(err error) {
	switch {
	case errors.Is(err, util.ErrNotExist):
		ctx.Error(http.StatusNotFound, err)
	case errors.Is(err, util.ErrPermissionDenied):
		ctx.Error(http.StatusForbidden, err)
	case errors.Is(err, util.ErrAlreadyExist):
		ctx.Error(http.StatusConflict, err)
	case errors.Is(err, util.ErrInvalidOperation):
		ctx.Error(http.StatusUnprocessableEntity, err)
	case errors.Is(err, util.ErrInvalidArgument):
		ctx.Error(http.StatusBadRequest, err)
	default:
		ctx.InternalServerError(err)
	}
}

type apiContextKeyType struct{}

var apiContextKey apiContextKeyType

// GetAPIContext returns the APIContext stored in the request
func GetAPIContext(req *http.Request) *APIContext {
	return req.Context().Value(apiContextKey).(*APIContext)
}

// APIContexter returns the middleware that creates the APIContext for API routes
func APIContexter() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			base := NewBaseContext(resp, req)
			ctx := &APIContext{Base: base}
			ctx.Base.Context = context.WithValue(base.Context, apiContextKey, ctx)
			ctx.Req = ctx.Req.WithContext(ctx.Base.Context)
			next.ServeHTTP(ctx.Resp, ctx.Req)
		})
	}
}

var _ web_types.ResponseStatusProvider = (*APIContext)(nil)
