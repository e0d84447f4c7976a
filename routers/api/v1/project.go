// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package v1

import (
	"net/http"
	"strconv"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/models/perm"
	project_model "code.kanbo.io/kanbo/models/project"
	api "code.kanbo.io/kanbo/modules/structs"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/web"
	"code.kanbo.io/kanbo/services/context"
	"code.kanbo.io/kanbo/services/convert"
	project_service "code.kanbo.io/kanbo/services/project"
)

func listOptions(ctx *context.APIContext) db.ListOptions {
	return db.ListOptions{
		Page:     ctx.FormInt("page", 1),
		PageSize: ctx.FormInt("limit", db.DefaultPageSize),
	}
}

// CreateProject creates a project owned by the caller
func CreateProject(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateProjectOption)

	p := &project_model.Project{
		Name:          form.Name,
		Key:           form.Key,
		Description:   form.Description,
		IsPublic:      form.IsPublic,
		StartDateUnix: timeutil.TimeStamp(form.StartDate),
		EndDateUnix:   timeutil.TimeStamp(form.EndDate),
	}
	if err := project_service.Create(ctx, ctx.Doer, p); err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusCreated, convert.ToProject(ctx, p))
}

// GetProject returns a project visible to the caller
func GetProject(ctx *context.APIContext) {
	p, err := project_service.Get(ctx, ctx.Doer, ctx.PathParamInt64("id"))
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToProject(ctx, p))
}

// ListProjects returns the caller's projects
func ListProjects(ctx *context.APIContext) {
	opts := project_model.SearchOptions{
		ListOptions: listOptions(ctx),
		Keyword:     ctx.FormString("q"),
	}
	if name := ctx.FormString("status"); name != "" {
		status, err := project_model.ParseStatus(name)
		if err != nil {
			ctx.Error(http.StatusBadRequest, err)
			return
		}
		opts.Statuses = []project_model.Status{status}
	}

	projects, count, err := project_service.List(ctx, ctx.Doer, opts)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Resp.Header().Set("X-Total-Count", strconv.FormatInt(count, 10))
	ctx.JSON(http.StatusOK, convert.ToProjectList(ctx, projects))
}

// ListPublicProjects returns public projects, no authentication required
func ListPublicProjects(ctx *context.APIContext) {
	opts := project_model.SearchOptions{
		ListOptions: listOptions(ctx),
		Keyword:     ctx.FormString("q"),
	}

	projects, count, err := project_service.ListPublic(ctx, opts)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Resp.Header().Set("X-Total-Count", strconv.FormatInt(count, 10))
	ctx.JSON(http.StatusOK, convert.ToProjectList(ctx, projects))
}

// EditProject applies a partial project edit, admin role required
func EditProject(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditProjectOption)

	p, err := project_service.Get(ctx, ctx.Doer, ctx.PathParamInt64("id"))
	if err != nil {
		ctx.HandleError(err)
		return
	}

	if form.Name != nil {
		p.Name = *form.Name
	}
	if form.Description != nil {
		p.Description = *form.Description
	}
	if form.IsPublic != nil {
		p.IsPublic = *form.IsPublic
	}
	if form.StartDate != nil {
		p.StartDateUnix = timeutil.TimeStamp(*form.StartDate)
	}
	if form.EndDate != nil {
		p.EndDateUnix = timeutil.TimeStamp(*form.EndDate)
	}

	if err := project_service.Update(ctx, ctx.Doer, p); err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToProject(ctx, p))
}

// ArchiveProject moves an active project to the archived state
func ArchiveProject(ctx *context.APIContext) {
	if err := project_service.Archive(ctx, ctx.Doer, ctx.PathParamInt64("id")); err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteProject soft-deletes a project, owner only
func DeleteProject(ctx *context.APIContext) {
	if err := project_service.Delete(ctx, ctx.Doer, ctx.PathParamInt64("id")); err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// ListMembers returns the project's members ordered by role
func ListMembers(ctx *context.APIContext) {
	members, err := project_service.Members(ctx, ctx.Doer, ctx.PathParamInt64("id"))
	if err != nil {
		ctx.HandleError(err)
		return
	}

	result := make([]*api.Member, 0, len(members))
	for _, m := range members {
		result = append(result, convert.ToMember(ctx, m))
	}
	ctx.JSON(http.StatusOK, result)
}

// AddMember grants a user a role in the project
func AddMember(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.AddMemberOption)

	role, err := perm.ParseRole(form.Role)
	if err != nil {
		ctx.Error(http.StatusBadRequest, err)
		return
	}

	member, err := project_service.AddMember(ctx, ctx.Doer, ctx.PathParamInt64("id"), form.UserID, role)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusCreated, convert.ToMember(ctx, member))
}

// RemoveMember revokes a user's membership
func RemoveMember(ctx *context.APIContext) {
	err := project_service.RemoveMember(ctx, ctx.Doer, ctx.PathParamInt64("id"), ctx.PathParamInt64("userId"))
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// EditMemberRole changes a member's role
func EditMemberRole(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditMemberRoleOption)

	role, err := perm.ParseRole(form.Role)
	if err != nil {
		ctx.Error(http.StatusBadRequest, err)
		return
	}

	member, err := project_service.SetMemberRole(ctx, ctx.Doer, ctx.PathParamInt64("id"), ctx.PathParamInt64("userId"), role)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToMember(ctx, member))
}
