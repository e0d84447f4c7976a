// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package user_test

import (
	"testing"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/models/unittest"
	user_model "code.kanbo.io/kanbo/models/user"

	"github.com/stretchr/testify/assert"
)

func TestGetUserByID(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	user, err := user_model.GetUserByID(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Equal(t, "ada", user.Name)
	assert.Equal(t, "Ada Bergmann", user.DisplayName())

	_, err = user_model.GetUserByID(db.DefaultContext, 999)
	assert.True(t, user_model.IsErrUserNotExist(err))
}

func TestGetUsersMapByIDs(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	users, err := user_model.GetUsersMapByIDs(db.DefaultContext, []int64{1, 3, 999})
	assert.NoError(t, err)
	assert.Len(t, users, 2)
	assert.Equal(t, "chandra", users[3].Name)
	assert.Nil(t, users[999])
}

func TestIsUserExist(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	exists, err := user_model.IsUserExist(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = user_model.IsUserExist(db.DefaultContext, 999)
	assert.NoError(t, err)
	assert.False(t, exists)
}
