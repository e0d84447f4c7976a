// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package middleware

import "context"

// ContextDataStore represents a data store
type ContextDataStore interface {
	GetData() ContextData
}

// ContextData is a per-request mutable key/value store shared by the handler chain
type ContextData map[string]any

type contextDataKeyType struct{}

var contextDataKey contextDataKeyType

// WithContextData attaches an empty ContextData to the context
func WithContextData(c context.Context) context.Context {
	return context.WithValue(c, contextDataKey, make(ContextData, 10))
}

// GetContextData returns the ContextData attached to the context, nil if absent
func GetContextData(c context.Context) ContextData {
	if data, ok := c.Value(contextDataKey).(ContextData); ok {
		return data
	}
	return nil
}
