// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project_test

import (
	"errors"
	"testing"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/models/perm"
	project_model "code.kanbo.io/kanbo/models/project"
	"code.kanbo.io/kanbo/models/unittest"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/util"

	"github.com/stretchr/testify/assert"
)

func TestAddMember(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	m, err := project_model.AddMember(db.DefaultContext, 2, 5, perm.RoleDeveloper)
	assert.NoError(t, err)
	assert.Equal(t, perm.RoleDeveloper, m.Role)
	unittest.AssertExistsAndLoadBean(t, &project_model.Member{ProjectID: 2, UserID: 5})
}

func TestAddMemberTwice(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := project_model.AddMember(db.DefaultContext, 1, 3, perm.RoleViewer)
	assert.True(t, project_model.IsErrMemberAlreadyExists(err))
	assert.True(t, errors.Is(err, util.ErrAlreadyExist))

	// the existing role is untouched
	m := unittest.AssertExistsAndLoadBean(t, &project_model.Member{ProjectID: 1, UserID: 3})
	assert.Equal(t, perm.RoleDeveloper, m.Role)
}

func TestAddMemberOwnerRole(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := project_model.AddMember(db.DefaultContext, 1, 5, perm.RoleOwner)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))
	unittest.AssertNotExistsBean(t, &project_model.Member{ProjectID: 1, UserID: 5})
}

func TestAddMemberInvalid(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := project_model.AddMember(db.DefaultContext, 999, 5, perm.RoleViewer)
	assert.True(t, project_model.IsErrProjectNotExist(err))

	_, err = project_model.AddMember(db.DefaultContext, 1, 999, perm.RoleViewer)
	assert.True(t, user_model.IsErrUserNotExist(err))
}

func TestRemoveMember(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	assert.NoError(t, project_model.RemoveMember(db.DefaultContext, 1, 4))
	unittest.AssertNotExistsBean(t, &project_model.Member{ProjectID: 1, UserID: 4})

	err := project_model.RemoveMember(db.DefaultContext, 1, 5)
	assert.True(t, project_model.IsErrMemberNotExist(err))
}

func TestRemoveMemberOwner(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	err := project_model.RemoveMember(db.DefaultContext, 1, 1)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// the membership is still there, untouched
	m := unittest.AssertExistsAndLoadBean(t, &project_model.Member{ProjectID: 1, UserID: 1})
	assert.Equal(t, perm.RoleOwner, m.Role)
}

func TestSetMemberRole(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	m, err := project_model.SetMemberRole(db.DefaultContext, 1, 4, perm.RoleAdmin)
	assert.NoError(t, err)
	assert.Equal(t, perm.RoleAdmin, m.Role)

	m = unittest.AssertExistsAndLoadBean(t, &project_model.Member{ProjectID: 1, UserID: 4})
	assert.Equal(t, perm.RoleAdmin, m.Role)
}

func TestSetMemberRoleOwner(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// the owner cannot be demoted
	_, err := project_model.SetMemberRole(db.DefaultContext, 1, 1, perm.RoleViewer)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// nobody can be promoted to owner
	_, err = project_model.SetMemberRole(db.DefaultContext, 1, 2, perm.RoleOwner)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))
}

func TestRoleOf(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	for userID, want := range map[int64]perm.Role{
		1: perm.RoleOwner,
		2: perm.RoleAdmin,
		3: perm.RoleDeveloper,
		4: perm.RoleViewer,
		5: perm.RoleNone, // not a member
	} {
		role, err := project_model.RoleOf(db.DefaultContext, 1, userID)
		assert.NoError(t, err)
		assert.Equal(t, want, role, "user %d", userID)
	}
}

func TestGetMembers(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	members, err := project_model.GetMembers(db.DefaultContext, 1)
	assert.NoError(t, err)
	if assert.Len(t, members, 4) {
		// owner first, then descending by role
		assert.Equal(t, perm.RoleOwner, members[0].Role)
		assert.EqualValues(t, 1, members[0].UserID)
		assert.Equal(t, perm.RoleViewer, members[3].Role)
	}

	count, err := project_model.CountMembers(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.EqualValues(t, 4, count)
}
