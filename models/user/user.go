// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package user holds the user account record. Credential handling (passwords,
// token issuance, mail) lives outside this server behind the identity
// provider collaborator.
package user

import (
	"context"
	"fmt"
	"strings"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"
)

// User represents a registered account
type User struct {
	ID       int64  `xorm:"pk autoincr"`
	Name     string `xorm:"UNIQUE NOT NULL"`
	FullName string
	Email    string `xorm:"UNIQUE NOT NULL"`
	IsActive bool   `xorm:"INDEX NOT NULL DEFAULT true"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(User))
}

// DisplayName returns the full name if available, otherwise the login name
func (u *User) DisplayName() string {
	if trimmed := strings.TrimSpace(u.FullName); trimmed != "" {
		return trimmed
	}
	return u.Name
}

// ErrUserNotExist represents a "UserNotExist" kind of error.
type ErrUserNotExist struct {
	UID int64
}

// IsErrUserNotExist checks if an error is a ErrUserNotExist
func IsErrUserNotExist(err error) bool {
	_, ok := err.(ErrUserNotExist)
	return ok
}

func (err ErrUserNotExist) Error() string {
	return fmt.Sprintf("user does not exist [uid: %d]", err.UID)
}

func (err ErrUserNotExist) Unwrap() error {
	return util.ErrNotExist
}

// GetUserByID returns the user object by given ID if exists.
func GetUserByID(ctx context.Context, id int64) (*User, error) {
	u := new(User)
	has, err := db.GetEngine(ctx).ID(id).Get(u)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrUserNotExist{UID: id}
	}
	return u, nil
}

// GetUsersMapByIDs returns a map of users by their IDs, missing ids are simply absent
func GetUsersMapByIDs(ctx context.Context, userIDs []int64) (map[int64]*User, error) {
	userMaps := make(map[int64]*User, len(userIDs))
	if len(userIDs) == 0 {
		return userMaps, nil
	}
	err := db.GetEngine(ctx).In("id", userIDs).Find(&userMaps)
	return userMaps, err
}

// IsUserExist checks whether a user record with the given id exists
func IsUserExist(ctx context.Context, uid int64) (bool, error) {
	return db.GetEngine(ctx).ID(uid).Exist(&User{})
}
