// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package auth resolves the calling user from a request credential.
package auth

import (
	"context"
	"net/http"

	user_model "code.kanbo.io/kanbo/models/user"
)

// IdentityProvider resolves a request credential to a user account.
// A request without a credential resolves to (nil, nil).
type IdentityProvider interface {
	Name() string
	ResolveCaller(ctx context.Context, req *http.Request) (*user_model.User, error)
}

var provider IdentityProvider

// Init sets the identity provider used by the API routes
func Init(p IdentityProvider) {
	provider = p
}

// ResolveCaller resolves the calling user through the configured provider
func ResolveCaller(ctx context.Context, req *http.Request) (*user_model.User, error) {
	if provider == nil {
		return nil, nil
	}
	return provider.ResolveCaller(ctx, req)
}
