// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"context"
	"fmt"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/models/perm"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"
)

// Member represents the relation between a user and a project.
// Exactly one member per project holds perm.RoleOwner, created together with
// the project and never removable or demotable.
type Member struct {
	ID        int64              `xorm:"pk autoincr"`
	ProjectID int64              `xorm:"UNIQUE(s) INDEX NOT NULL"`
	UserID    int64              `xorm:"UNIQUE(s) INDEX NOT NULL"`
	Role      perm.Role          `xorm:"NOT NULL DEFAULT 2"`
	User      *user_model.User   `xorm:"-"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Member))
}

// ErrMemberAlreadyExists represents a "MemberAlreadyExists" kind of error.
type ErrMemberAlreadyExists struct {
	ProjectID int64
	UserID    int64
}

// IsErrMemberAlreadyExists checks if an error is a ErrMemberAlreadyExists
func IsErrMemberAlreadyExists(err error) bool {
	_, ok := err.(ErrMemberAlreadyExists)
	return ok
}

func (err ErrMemberAlreadyExists) Error() string {
	return fmt.Sprintf("user is already a member of this project [project_id: %d, user_id: %d]", err.ProjectID, err.UserID)
}

func (err ErrMemberAlreadyExists) Unwrap() error {
	return util.ErrAlreadyExist
}

// ErrMemberNotExist represents a "MemberNotExist" kind of error.
type ErrMemberNotExist struct {
	ProjectID int64
	UserID    int64
}

// IsErrMemberNotExist checks if an error is a ErrMemberNotExist
func IsErrMemberNotExist(err error) bool {
	_, ok := err.(ErrMemberNotExist)
	return ok
}

func (err ErrMemberNotExist) Error() string {
	return fmt.Sprintf("user is not a member of this project [project_id: %d, user_id: %d]", err.ProjectID, err.UserID)
}

func (err ErrMemberNotExist) Unwrap() error {
	return util.ErrNotExist
}

// LoadUser loads the member's user record
func (m *Member) LoadUser(ctx context.Context) (err error) {
	if m.User != nil {
		return nil
	}
	m.User, err = user_model.GetUserByID(ctx, m.UserID)
	return err
}

// getMember returns the membership record or ErrMemberNotExist
func getMember(ctx context.Context, projectID, userID int64) (*Member, error) {
	m := &Member{ProjectID: projectID, UserID: userID}
	has, err := db.GetByBean(ctx, m)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrMemberNotExist{ProjectID: projectID, UserID: userID}
	}
	return m, nil
}

// GetMember returns the membership record of the user in the project
func GetMember(ctx context.Context, projectID, userID int64) (*Member, error) {
	return getMember(ctx, projectID, userID)
}

// AddMember grants a user a role in a project. The OWNER role can never be
// granted this way, only project creation assigns it.
func AddMember(ctx context.Context, projectID, userID int64, role perm.Role) (*Member, error) {
	if !role.IsValid() || role == perm.RoleOwner {
		return nil, util.NewInvalidOperationErrorf("role %s cannot be granted", role)
	}

	m := &Member{ProjectID: projectID, UserID: userID, Role: role}
	err := db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := GetProjectByID(ctx, projectID); err != nil {
			return err
		}
		if _, err := user_model.GetUserByID(ctx, userID); err != nil {
			return err
		}
		has, err := db.GetEngine(ctx).Where("project_id=? AND user_id=?", projectID, userID).Exist(&Member{})
		if err != nil {
			return err
		} else if has {
			return ErrMemberAlreadyExists{ProjectID: projectID, UserID: userID}
		}
		return db.Insert(ctx, m)
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RemoveMember removes a user from a project. The owner membership is protected.
func RemoveMember(ctx context.Context, projectID, userID int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		m, err := getMember(ctx, projectID, userID)
		if err != nil {
			return err
		}
		if m.Role == perm.RoleOwner {
			return util.NewInvalidOperationErrorf("project owner cannot be removed")
		}
		_, err = db.GetEngine(ctx).ID(m.ID).Delete(new(Member))
		return err
	})
}

// SetMemberRole changes a member's role. The owner membership can neither be
// demoted nor can another member be promoted to OWNER.
func SetMemberRole(ctx context.Context, projectID, userID int64, role perm.Role) (*Member, error) {
	if !role.IsValid() || role == perm.RoleOwner {
		return nil, util.NewInvalidOperationErrorf("role %s cannot be granted", role)
	}

	var m *Member
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		m, err = getMember(ctx, projectID, userID)
		if err != nil {
			return err
		}
		if m.Role == perm.RoleOwner {
			return util.NewInvalidOperationErrorf("project owner role cannot be changed")
		}
		m.Role = role
		_, err = db.GetEngine(ctx).ID(m.ID).Cols("role").Update(m)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// RoleOf returns the role of the user in the project, perm.RoleNone for non-members
func RoleOf(ctx context.Context, projectID, userID int64) (perm.Role, error) {
	m, err := getMember(ctx, projectID, userID)
	if err != nil {
		if IsErrMemberNotExist(err) {
			return perm.RoleNone, nil
		}
		return perm.RoleNone, err
	}
	return m.Role, nil
}

// IsMember is a pure membership test
func IsMember(ctx context.Context, projectID, userID int64) (bool, error) {
	return db.GetEngine(ctx).Where("project_id=? AND user_id=?", projectID, userID).Exist(&Member{})
}

// GetMembers returns all memberships of a project, owner first then by join time
func GetMembers(ctx context.Context, projectID int64) ([]*Member, error) {
	members := make([]*Member, 0, 8)
	if err := db.GetEngine(ctx).Where("project_id=?", projectID).
		OrderBy("role DESC, id").Find(&members); err != nil {
		return nil, err
	}
	return members, nil
}

// CountMembers returns the number of memberships of a project
func CountMembers(ctx context.Context, projectID int64) (int64, error) {
	return db.GetEngine(ctx).Where("project_id=?", projectID).Count(new(Member))
}
