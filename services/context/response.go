// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package context

import (
	"net/http"

	web_types "code.kanbo.io/kanbo/modules/web/types"
)

// ResponseWriter represents a response writer for HTTP
type ResponseWriter interface {
	http.ResponseWriter
	http.Flusher
	web_types.ResponseStatusProvider

	Status() int
	Size() int
}

var _ ResponseWriter = &Response{}

// Response wraps the http.ResponseWriter and records status and size
type Response struct {
	http.ResponseWriter
	written int
	status  int
}

// Write writes bytes to the response
func (r *Response) Write(bs []byte) (int, error) {
	size, err := r.ResponseWriter.Write(bs)
	r.written += size
	if err != nil {
		return size, err
	}
	if r.status == 0 {
		r.status = http.StatusOK
	}
	return size, nil
}

func (r *Response) Status() int {
	return r.status
}

func (r *Response) Size() int {
	return r.written
}

// WriteHeader writes the status code once, later calls are ignored
func (r *Response) WriteHeader(statusCode int) {
	if r.status == 0 {
		r.status = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
	}
}

// Flush flushes cached data
func (r *Response) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// WrittenStatus returns the status code written to the response
func (r *Response) WrittenStatus() int {
	return r.status
}

// WrapResponseWriter wraps a http.ResponseWriter into a Response
func WrapResponseWriter(resp http.ResponseWriter) *Response {
	if wrapped, ok := resp.(*Response); ok {
		return wrapped
	}
	return &Response{ResponseWriter: resp}
}
