// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project orchestrates project lifecycle and membership operations
// behind the access policy.
package project

import (
	"context"

	"code.kanbo.io/kanbo/models/perm"
	project_model "code.kanbo.io/kanbo/models/project"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/util"
)

// Permission returns the project and the caller's role in it, if the project
// is visible to the caller. Deleted projects are gone from the API's point of
// view. Private projects are visible to members only, public ones to everyone.
func Permission(ctx context.Context, doer *user_model.User, projectID int64) (*project_model.Project, perm.Role, error) {
	p, err := project_model.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, perm.RoleNone, err
	}
	if p.IsDeleted() {
		return nil, perm.RoleNone, project_model.ErrProjectNotExist{ID: projectID}
	}

	role := perm.RoleNone
	if doer != nil {
		if role, err = project_model.RoleOf(ctx, p.ID, doer.ID); err != nil {
			return nil, perm.RoleNone, err
		}
	}
	if role == perm.RoleNone && !p.IsPublic {
		return nil, perm.RoleNone, util.NewPermissionDeniedErrorf("not a member of project %d", projectID)
	}
	return p, role, nil
}

func check(action perm.Action, role perm.Role) error {
	if !perm.Allowed(perm.Decision{Action: action, Role: role}) {
		return util.NewPermissionDeniedErrorf("operation not permitted for role %s", role)
	}
	return nil
}

// Create creates a project owned by the caller
func Create(ctx context.Context, doer *user_model.User, p *project_model.Project) error {
	p.OwnerID = doer.ID
	return project_model.NewProject(ctx, p)
}

// Get returns a project visible to the caller
func Get(ctx context.Context, doer *user_model.User, projectID int64) (*project_model.Project, error) {
	p, _, err := Permission(ctx, doer, projectID)
	return p, err
}

// List returns the caller's projects matching the search options
func List(ctx context.Context, doer *user_model.User, opts project_model.SearchOptions) ([]*project_model.Project, int64, error) {
	opts.MemberID = doer.ID
	return project_model.FindProjects(ctx, opts)
}

// ListPublic returns public projects, no membership required
func ListPublic(ctx context.Context, opts project_model.SearchOptions) ([]*project_model.Project, int64, error) {
	opts.MemberID = 0
	opts.PublicOnly = true
	return project_model.FindProjects(ctx, opts)
}

// Update applies a project edit. The key, owner and lifecycle status are immutable here.
func Update(ctx context.Context, doer *user_model.User, p *project_model.Project) error {
	_, role, err := Permission(ctx, doer, p.ID)
	if err != nil {
		return err
	}
	// editing project properties is an administrative action
	if err := check(perm.ActionArchiveProject, role); err != nil {
		return err
	}
	return project_model.UpdateProject(ctx, p)
}

// Archive moves an active project to ARCHIVED
func Archive(ctx context.Context, doer *user_model.User, projectID int64) error {
	_, role, err := Permission(ctx, doer, projectID)
	if err != nil {
		return err
	}
	if err := check(perm.ActionArchiveProject, role); err != nil {
		return err
	}
	return project_model.ArchiveProject(ctx, projectID)
}

// Delete soft-deletes a project, owner only
func Delete(ctx context.Context, doer *user_model.User, projectID int64) error {
	_, role, err := Permission(ctx, doer, projectID)
	if err != nil {
		return err
	}
	if err := check(perm.ActionDeleteProject, role); err != nil {
		return err
	}
	return project_model.DeleteProject(ctx, projectID)
}

// Members returns the memberships of a project visible to the caller
func Members(ctx context.Context, doer *user_model.User, projectID int64) ([]*project_model.Member, error) {
	if _, _, err := Permission(ctx, doer, projectID); err != nil {
		return nil, err
	}
	members, err := project_model.GetMembers(ctx, projectID)
	if err != nil {
		return nil, err
	}
	for _, member := range members {
		if err := member.LoadUser(ctx); err != nil {
			return nil, err
		}
	}
	return members, nil
}

// AddMember grants a user a role in a project
func AddMember(ctx context.Context, doer *user_model.User, projectID, userID int64, role perm.Role) (*project_model.Member, error) {
	_, doerRole, err := Permission(ctx, doer, projectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionManageMembers, doerRole); err != nil {
		return nil, err
	}
	return project_model.AddMember(ctx, projectID, userID, role)
}

// RemoveMember removes a user from a project
func RemoveMember(ctx context.Context, doer *user_model.User, projectID, userID int64) error {
	_, doerRole, err := Permission(ctx, doer, projectID)
	if err != nil {
		return err
	}
	if err := check(perm.ActionManageMembers, doerRole); err != nil {
		return err
	}
	return project_model.RemoveMember(ctx, projectID, userID)
}

// SetMemberRole changes a member's role
func SetMemberRole(ctx context.Context, doer *user_model.User, projectID, userID int64, role perm.Role) (*project_model.Member, error) {
	_, doerRole, err := Permission(ctx, doer, projectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionManageMembers, doerRole); err != nil {
		return nil, err
	}
	return project_model.SetMemberRole(ctx, projectID, userID, role)
}
