// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package web

import (
	"fmt"
	"net/http"
	"reflect"

	"code.kanbo.io/kanbo/modules/web/types"
)

var responseStatusProviders = map[reflect.Type]func(req *http.Request) types.ResponseStatusProvider{}

// RegisterResponseStatusProvider registers a function to retrieve a handler
// argument of type T from the request. The retrieved value also tells whether
// a response has been written, which stops the handler chain.
func RegisterResponseStatusProvider[T any](fn func(req *http.Request) types.ResponseStatusProvider) {
	responseStatusProviders[reflect.TypeOf((*T)(nil)).Elem()] = fn
}

// responseWriter wraps a http.ResponseWriter to detect whether a plain
// handler has written the response
type responseWriter struct {
	respWriter http.ResponseWriter
	status     int
}

var _ types.ResponseStatusProvider = (*responseWriter)(nil)

func (r *responseWriter) WrittenStatus() int { return r.status }

func (r *responseWriter) Header() http.Header { return r.respWriter.Header() }

func (r *responseWriter) Write(bytes []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return r.respWriter.Write(bytes)
}

func (r *responseWriter) WriteHeader(statusCode int) {
	if r.status == 0 {
		r.status = statusCode
	}
	r.respWriter.WriteHeader(statusCode)
}

// toHandlerProvider converts a route handler to a middleware provider. The
// handler runs, and when it has written a response the rest of the chain is
// skipped. Supported forms: middleware func(http.Handler) http.Handler, plain
// func(http.ResponseWriter, *http.Request), and func(*T) for any T with a
// registered response status provider.
func toHandlerProvider(handler any) func(next http.Handler) http.Handler {
	funcType := reflect.TypeOf(handler)

	if h, ok := handler.(func(next http.Handler) http.Handler); ok {
		return h
	}

	if hp, ok := handler.(func(resp http.ResponseWriter, req *http.Request)); ok {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
				respWriter := &responseWriter{respWriter: resp}
				hp(respWriter, req)
				if respWriter.WrittenStatus() != 0 {
					return
				}
				next.ServeHTTP(resp, req)
			})
		}
	}

	if funcType.Kind() == reflect.Func && funcType.NumIn() == 1 && funcType.NumOut() == 0 {
		argType := funcType.In(0)
		if argType.Kind() == reflect.Ptr {
			provider, ok := responseStatusProviders[argType.Elem()]
			if ok {
				fn := reflect.ValueOf(handler)
				return func(next http.Handler) http.Handler {
					return http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
						statusProvider := provider(req)
						fn.Call([]reflect.Value{reflect.ValueOf(statusProvider)})
						if statusProvider.WrittenStatus() != 0 {
							return
						}
						next.ServeHTTP(resp, req)
					})
				}
			}
		}
	}

	panic(fmt.Sprintf("unsupported handler type: %v", funcType))
}
