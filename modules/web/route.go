// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package web provides the router used by the REST layer. It is a thin layer
// over chi which accepts handlers taking a typed request context.
package web

import (
	"net/http"
	"strings"

	"code.kanbo.io/kanbo/modules/web/middleware"

	"github.com/go-chi/chi/v5"
)

// Router is a wrapper around chi.Router with grouped route registration
type Router struct {
	chiRouter      chi.Router
	curGroupPrefix string
	curMiddlewares []any
}

// NewRouter creates a new router with the per-request data store installed
func NewRouter() *Router {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
			next.ServeHTTP(resp, req.WithContext(middleware.WithContextData(req.Context())))
		})
	})
	return &Router{chiRouter: r}
}

// Use adds middlewares to the router
func (r *Router) Use(middlewares ...any) {
	for _, m := range middlewares {
		if m != nil {
			r.chiRouter.Use(toHandlerProvider(m))
		}
	}
}

// Group mounts a sub-group of routes under a pattern. The middlewares apply
// to every route registered inside the group function.
func (r *Router) Group(pattern string, fn func(), middlewares ...any) {
	previousGroupPrefix := r.curGroupPrefix
	previousMiddlewares := r.curMiddlewares
	r.curGroupPrefix += pattern
	r.curMiddlewares = append(r.curMiddlewares[:len(r.curMiddlewares):len(r.curMiddlewares)], middlewares...)

	fn()

	r.curGroupPrefix = previousGroupPrefix
	r.curMiddlewares = previousMiddlewares
}

func (r *Router) getPattern(pattern string) string {
	newPattern := r.curGroupPrefix + pattern
	if !strings.HasPrefix(newPattern, "/") {
		newPattern = "/" + newPattern
	}
	if newPattern == "/" {
		return newPattern
	}
	return strings.TrimSuffix(newPattern, "/")
}

// Methods adds the same handlers for multiple http methods
func (r *Router) Methods(methods, pattern string, handlers []any) {
	handlerChain := r.wrapMiddlewareAndHandler(handlers)
	fullPattern := r.getPattern(pattern)
	for _, method := range strings.Split(methods, ",") {
		r.chiRouter.Method(strings.TrimSpace(method), fullPattern, handlerChain)
	}
}

func (r *Router) wrapMiddlewareAndHandler(handlers []any) http.HandlerFunc {
	all := append(r.curMiddlewares[:len(r.curMiddlewares):len(r.curMiddlewares)], handlers...)
	providers := make([]func(next http.Handler) http.Handler, 0, len(all))
	for _, h := range all {
		if h != nil {
			providers = append(providers, toHandlerProvider(h))
		}
	}
	return func(resp http.ResponseWriter, req *http.Request) {
		h := http.Handler(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		for i := len(providers) - 1; i >= 0; i-- {
			h = providers[i](h)
		}
		h.ServeHTTP(resp, req)
	}
}

// Mount attaches another router at the given pattern
func (r *Router) Mount(pattern string, subRouter *Router) {
	subRouter.Use(r.curMiddlewares...)
	r.chiRouter.Mount(r.getPattern(pattern), subRouter.chiRouter)
}

// Any registers a route that matches every http method
func (r *Router) Any(pattern string, handlers ...any) {
	r.chiRouter.HandleFunc(r.getPattern(pattern), r.wrapMiddlewareAndHandler(handlers))
}

// Get registers a GET route
func (r *Router) Get(pattern string, handlers ...any) {
	r.Methods("GET", pattern, handlers)
}

// Post registers a POST route
func (r *Router) Post(pattern string, handlers ...any) {
	r.Methods("POST", pattern, handlers)
}

// Put registers a PUT route
func (r *Router) Put(pattern string, handlers ...any) {
	r.Methods("PUT", pattern, handlers)
}

// Patch registers a PATCH route
func (r *Router) Patch(pattern string, handlers ...any) {
	r.Methods("PATCH", pattern, handlers)
}

// Delete registers a DELETE route
func (r *Router) Delete(pattern string, handlers ...any) {
	r.Methods("DELETE", pattern, handlers)
}

// NotFound defines a handler for routes that match nothing
func (r *Router) NotFound(h http.HandlerFunc) {
	r.chiRouter.NotFound(h)
}

func (r *Router) ServeHTTP(resp http.ResponseWriter, req *http.Request) {
	r.chiRouter.ServeHTTP(resp, req)
}

// SetForm stores the bound and validated request form in the data store
func SetForm(dataStore middleware.ContextDataStore, obj any) {
	dataStore.GetData()["__form"] = obj
}

// GetForm returns the validated form of the current request
func GetForm(dataStore middleware.ContextDataStore) any {
	return dataStore.GetData()["__form"]
}
