// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package context provides the request contexts handed to route handlers.
package context

import (
	"context"
	"net/http"
	"strconv"

	"code.kanbo.io/kanbo/modules/json"
	"code.kanbo.io/kanbo/modules/log"
	"code.kanbo.io/kanbo/modules/web/middleware"

	"github.com/go-chi/chi/v5"
)

// Base is the common part of every request context
type Base struct {
	context.Context

	Resp ResponseWriter
	Req  *http.Request

	Data middleware.ContextData
}

// GetData returns the per-request data store
func (b *Base) GetData() middleware.ContextData {
	return b.Data
}

// Written returns true if the response has been written
func (b *Base) Written() bool {
	return b.Resp.WrittenStatus() != 0
}

// WrittenStatus returns the written response status, 0 if unwritten
func (b *Base) WrittenStatus() int {
	return b.Resp.WrittenStatus()
}

// Status writes the response status code without a body
func (b *Base) Status(status int) {
	b.Resp.WriteHeader(status)
}

// JSON renders the value as a JSON response
func (b *Base) JSON(status int, content any) {
	b.Resp.Header().Set("Content-Type", "application/json;charset=utf-8")
	b.Resp.WriteHeader(status)
	if err := json.NewEncoder(b.Resp).Encode(content); err != nil {
		log.Error("Render JSON failed: %v", err)
	}
}

// PathParam returns the value of a named path parameter
func (b *Base) PathParam(name string) string {
	return chi.URLParam(b.Req, name)
}

// PathParamInt64 returns the int64 value of a named path parameter, 0 if unparsable
func (b *Base) PathParamInt64(name string) int64 {
	v, _ := strconv.ParseInt(b.PathParam(name), 10, 64)
	return v
}

// FormString returns the first value matching the provided key in the form
func (b *Base) FormString(key string) string {
	return b.Req.FormValue(key)
}

// FormInt returns the form value as an int, def if unparsable
func (b *Base) FormInt(key string, def int) int {
	v, err := strconv.Atoi(b.Req.FormValue(key))
	if err != nil {
		return def
	}
	return v
}

// NewBaseContext wraps the request and response into a Base context
func NewBaseContext(resp http.ResponseWriter, req *http.Request) *Base {
	return &Base{
		Context: req.Context(),
		Resp:    WrapResponseWriter(resp),
		Req:     req,
		Data:    middleware.GetContextData(req.Context()),
	}
}
