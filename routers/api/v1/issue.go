// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package v1

import (
	"net/http"
	"strconv"

	"code.kanbo.io/kanbo/models/db"
	issues_model "code.kanbo.io/kanbo/models/issues"
	"code.kanbo.io/kanbo/modules/optional"
	api "code.kanbo.io/kanbo/modules/structs"
	"code.kanbo.io/kanbo/modules/web"
	"code.kanbo.io/kanbo/services/context"
	"code.kanbo.io/kanbo/services/convert"
	issue_service "code.kanbo.io/kanbo/services/issue"
)

// CreateIssue creates an issue at the end of the project's TODO column
func CreateIssue(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateIssueOption)

	issue, err := issue_service.Create(ctx, ctx.Doer, issues_model.NewIssueOptions{
		ProjectID:   form.ProjectID,
		Title:       form.Title,
		Description: form.Description,
		Priority:    issues_model.Priority(form.Priority),
		Type:        issues_model.Type(form.Type),
		AssigneeID:  form.AssigneeID,
		DueUnix:     form.DueDate,
		StoryPoints: form.StoryPoints,
		LabelIDs:    form.LabelIDs,
	})
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusCreated, convert.ToIssue(ctx, issue))
}

// GetIssue returns a single issue with its subtask progress
func GetIssue(ctx *context.APIContext) {
	issue, err := issue_service.Get(ctx, ctx.Doer, ctx.PathParamInt64("id"))
	if err != nil {
		ctx.HandleError(err)
		return
	}

	result := convert.ToIssue(ctx, issue)
	if progress, err := issues_model.SubtaskProgress(ctx, issue.ID); err == nil {
		result.Progress = progress
	}
	ctx.JSON(http.StatusOK, result)
}

// ListIssues returns the project's issues, paged, with optional status and keyword filters
func ListIssues(ctx *context.APIContext) {
	opts := issues_model.FindIssuesOptions{
		ListOptions: db.ListOptions{
			Page:     ctx.FormInt("page", 1),
			PageSize: ctx.FormInt("limit", db.DefaultPageSize),
		},
		ProjectID:  ctx.PathParamInt64("id"),
		Status:     issues_model.Status(ctx.FormString("status")),
		Keyword:    ctx.FormString("q"),
		AssigneeID: int64(ctx.FormInt("assignee", 0)),
		ReporterID: int64(ctx.FormInt("reporter", 0)),
	}

	issues, count, err := issue_service.List(ctx, ctx.Doer, opts)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Resp.Header().Set("X-Total-Count", strconv.FormatInt(count, 10))
	ctx.JSON(http.StatusOK, convert.ToIssueList(ctx, issues))
}

// Kanban returns the project's board cards ordered by position
func Kanban(ctx *context.APIContext) {
	issues, err := issue_service.Kanban(ctx, ctx.Doer, ctx.PathParamInt64("id"))
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToIssueList(ctx, issues))
}

// EditIssue applies a partial issue edit
func EditIssue(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.EditIssueOption)

	opts := issues_model.UpdateIssueOptions{
		Title:       optional.FromPtr(form.Title),
		Description: optional.FromPtr(form.Description),
		AssigneeID:  optional.FromPtr(form.AssigneeID),
		DueUnix:     optional.FromPtr(form.DueDate),
		StoryPoints: optional.FromPtr(form.StoryPoints),
	}
	if form.Status != nil {
		opts.Status = optional.Some(issues_model.Status(*form.Status))
	}
	if form.Priority != nil {
		opts.Priority = optional.Some(issues_model.Priority(*form.Priority))
	}
	if form.Type != nil {
		opts.Type = optional.Some(issues_model.Type(*form.Type))
	}
	if form.LabelIDs != nil {
		opts.LabelIDs = optional.Some(*form.LabelIDs)
	}

	issue, err := issue_service.Update(ctx, ctx.Doer, ctx.PathParamInt64("id"), opts)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToIssue(ctx, issue))
}

// ChangeIssueStatus moves an issue to another board column
func ChangeIssueStatus(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.ChangeStatusOption)

	issue, err := issue_service.ChangeStatus(ctx, ctx.Doer, ctx.PathParamInt64("id"), issues_model.Status(form.Status))
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToIssue(ctx, issue))
}

// AssignIssue sets or clears the assignee of an issue
func AssignIssue(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.AssignIssueOption)

	assigneeID := optional.None[int64]()
	if form.AssigneeID > 0 {
		assigneeID = optional.Some(form.AssigneeID)
	}

	issue, err := issue_service.Assign(ctx, ctx.Doer, ctx.PathParamInt64("id"), assigneeID)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToIssue(ctx, issue))
}

// ReorderIssues applies the full ordering of one board column
func ReorderIssues(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.ReorderOption)

	err := issue_service.Reorder(ctx, ctx.Doer, ctx.PathParamInt64("id"),
		issues_model.Status(form.Status), form.IssueIDs)
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateSubtask creates a subtask under the issue
func CreateSubtask(ctx *context.APIContext) {
	form := web.GetForm(ctx).(*api.CreateSubtaskOption)

	subtask, err := issue_service.CreateSubtask(ctx, ctx.Doer, issues_model.NewSubtaskOptions{
		ParentID:    ctx.PathParamInt64("id"),
		Title:       form.Title,
		Description: form.Description,
		AssigneeID:  form.AssigneeID,
	})
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusCreated, convert.ToIssue(ctx, subtask))
}

// ListSubtasks returns the issue's subtasks and the roll-up progress
func ListSubtasks(ctx *context.APIContext) {
	subtasks, progress, err := issue_service.Subtasks(ctx, ctx.Doer, ctx.PathParamInt64("id"))
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, map[string]any{
		"subtasks": convert.ToIssueList(ctx, subtasks),
		"progress": progress,
	})
}

// DeleteIssue deletes an issue together with its subtasks
func DeleteIssue(ctx *context.APIContext) {
	if err := issue_service.Delete(ctx, ctx.Doer, ctx.PathParamInt64("id")); err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// UpcomingIssues returns the caller's assigned issues due within N days (default 7)
func UpcomingIssues(ctx *context.APIContext) {
	issues, err := issue_service.Upcoming(ctx, ctx.Doer, ctx.FormInt("days", 7))
	if err != nil {
		ctx.HandleError(err)
		return
	}
	ctx.JSON(http.StatusOK, convert.ToIssueList(ctx, issues))
}
