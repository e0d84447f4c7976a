// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package auth

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Bearer authenticates requests carrying an HS256 signed bearer token whose
// subject is the user id.
type Bearer struct {
	secret []byte
}

// NewBearer creates a bearer token identity provider with the given signing secret
func NewBearer(secret string) *Bearer {
	return &Bearer{secret: []byte(secret)}
}

// Name implements IdentityProvider
func (b *Bearer) Name() string {
	return "bearer"
}

// SignToken issues a token for the given user, valid for the given duration.
// Mostly used by tests and tooling, token issuance has no API surface.
func (b *Bearer) SignToken(userID int64, ttl time.Duration) (string, error) {
	now := timeutil.TimeStampNow().AsTime()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		ID:        uuid.New().String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	})
	return token.SignedString(b.secret)
}

// ResolveCaller implements IdentityProvider. A missing Authorization header is
// anonymous, a present but bad one is a permission error.
func (b *Bearer) ResolveCaller(ctx context.Context, req *http.Request) (*user_model.User, error) {
	auth := req.Header.Get("Authorization")
	if auth == "" {
		return nil, nil
	}
	tokenString, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return nil, util.NewPermissionDeniedErrorf("unsupported authorization scheme")
	}

	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return b.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return nil, util.NewPermissionDeniedErrorf("invalid token: %v", err)
	}

	claims := token.Claims.(*jwt.RegisteredClaims)
	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, util.NewPermissionDeniedErrorf("invalid token subject: %q", claims.Subject)
	}

	user, err := user_model.GetUserByID(ctx, userID)
	if err != nil {
		if user_model.IsErrUserNotExist(err) {
			return nil, util.NewPermissionDeniedErrorf("token subject does not exist")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, util.NewPermissionDeniedErrorf("user is not active")
	}
	return user, nil
}
