// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package issue orchestrates board operations: it resolves the caller's role,
// consults the access policy and only then touches the models, firing
// notifications afterwards.
package issue

import (
	"context"

	issues_model "code.kanbo.io/kanbo/models/issues"
	"code.kanbo.io/kanbo/models/perm"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/optional"
	"code.kanbo.io/kanbo/modules/util"
	"code.kanbo.io/kanbo/services/notify"
	project_service "code.kanbo.io/kanbo/services/project"
)

func check(action perm.Action, role perm.Role, isReporter bool) error {
	if !perm.Allowed(perm.Decision{Action: action, Role: role, IsReporter: isReporter}) {
		return util.NewPermissionDeniedErrorf("operation not permitted for role %s", role)
	}
	return nil
}

// Create creates an issue on behalf of the caller, who becomes its reporter
func Create(ctx context.Context, doer *user_model.User, opts issues_model.NewIssueOptions) (*issues_model.Issue, error) {
	_, role, err := project_service.Permission(ctx, doer, opts.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionCreateIssue, role, false); err != nil {
		return nil, err
	}

	opts.ReporterID = doer.ID
	issue, err := issues_model.CreateIssue(ctx, opts)
	if err != nil {
		return nil, err
	}

	if issue.AssigneeID > 0 {
		if assignee, err := user_model.GetUserByID(ctx, issue.AssigneeID); err == nil {
			notify.IssueAssigned(ctx, doer, issue, assignee)
		}
	}
	return issue, nil
}

// Get returns a single issue visible to the caller
func Get(ctx context.Context, doer *user_model.User, issueID int64) (*issues_model.Issue, error) {
	issue, err := issues_model.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	if _, _, err := project_service.Permission(ctx, doer, issue.ProjectID); err != nil {
		return nil, err
	}
	return issue, nil
}

// List returns the project's issues matching the find options
func List(ctx context.Context, doer *user_model.User, opts issues_model.FindIssuesOptions) ([]*issues_model.Issue, int64, error) {
	if _, _, err := project_service.Permission(ctx, doer, opts.ProjectID); err != nil {
		return nil, 0, err
	}
	return issues_model.FindIssues(ctx, opts)
}

// Kanban returns the project's board cards ordered by position
func Kanban(ctx context.Context, doer *user_model.User, projectID int64) ([]*issues_model.Issue, error) {
	if _, _, err := project_service.Permission(ctx, doer, projectID); err != nil {
		return nil, err
	}
	return issues_model.KanbanIssues(ctx, projectID)
}

// Update applies a partial issue edit
func Update(ctx context.Context, doer *user_model.User, issueID int64, opts issues_model.UpdateIssueOptions) (*issues_model.Issue, error) {
	issue, err := issues_model.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	_, role, err := project_service.Permission(ctx, doer, issue.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionUpdateIssue, role, false); err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	oldAssignee := issue.AssigneeID
	updated, err := issues_model.UpdateIssue(ctx, issueID, opts)
	if err != nil {
		return nil, err
	}

	if updated.Status != oldStatus {
		notify.IssueStatusChanged(ctx, doer, updated, oldStatus)
	}
	if updated.AssigneeID != oldAssignee && updated.AssigneeID > 0 {
		if assignee, err := user_model.GetUserByID(ctx, updated.AssigneeID); err == nil {
			notify.IssueAssigned(ctx, doer, updated, assignee)
		}
	}
	return updated, nil
}

// ChangeStatus moves an issue to another board column
func ChangeStatus(ctx context.Context, doer *user_model.User, issueID int64, status issues_model.Status) (*issues_model.Issue, error) {
	issue, err := issues_model.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	_, role, err := project_service.Permission(ctx, doer, issue.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionChangeStatus, role, false); err != nil {
		return nil, err
	}

	oldStatus := issue.Status
	moved, err := issues_model.ChangeStatus(ctx, issueID, status)
	if err != nil {
		return nil, err
	}
	if moved.Status != oldStatus {
		notify.IssueStatusChanged(ctx, doer, moved, oldStatus)
	}
	return moved, nil
}

// Assign sets or clears the assignee of an issue
func Assign(ctx context.Context, doer *user_model.User, issueID int64, assigneeID optional.Option[int64]) (*issues_model.Issue, error) {
	issue, err := issues_model.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, err
	}
	_, role, err := project_service.Permission(ctx, doer, issue.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionAssignIssue, role, false); err != nil {
		return nil, err
	}

	assigned, err := issues_model.AssignIssue(ctx, issueID, assigneeID)
	if err != nil {
		return nil, err
	}
	if assigned.AssigneeID > 0 {
		if assignee, err := user_model.GetUserByID(ctx, assigned.AssigneeID); err == nil {
			notify.IssueAssigned(ctx, doer, assigned, assignee)
		}
	}
	return assigned, nil
}

// Reorder applies a full column ordering sent by the board
func Reorder(ctx context.Context, doer *user_model.User, projectID int64, status issues_model.Status, issueIDs []int64) error {
	_, role, err := project_service.Permission(ctx, doer, projectID)
	if err != nil {
		return err
	}
	if err := check(perm.ActionReorderIssues, role, false); err != nil {
		return err
	}
	return issues_model.ReorderColumn(ctx, projectID, status, issueIDs)
}

// CreateSubtask creates a subtask under a parent issue
func CreateSubtask(ctx context.Context, doer *user_model.User, opts issues_model.NewSubtaskOptions) (*issues_model.Issue, error) {
	parent, err := issues_model.GetIssueByID(ctx, opts.ParentID)
	if err != nil {
		return nil, err
	}
	_, role, err := project_service.Permission(ctx, doer, parent.ProjectID)
	if err != nil {
		return nil, err
	}
	if err := check(perm.ActionCreateIssue, role, false); err != nil {
		return nil, err
	}
	return issues_model.CreateSubtask(ctx, opts)
}

// Subtasks returns the children of an issue together with the roll-up progress
func Subtasks(ctx context.Context, doer *user_model.User, issueID int64) ([]*issues_model.Issue, float64, error) {
	issue, err := issues_model.GetIssueByID(ctx, issueID)
	if err != nil {
		return nil, 0, err
	}
	if _, _, err := project_service.Permission(ctx, doer, issue.ProjectID); err != nil {
		return nil, 0, err
	}

	subtasks, err := issues_model.GetSubtasks(ctx, issueID)
	if err != nil {
		return nil, 0, err
	}
	progress, err := issues_model.SubtaskProgress(ctx, issueID)
	if err != nil {
		return nil, 0, err
	}
	return subtasks, progress, nil
}

// Delete deletes an issue and its subtasks. Reporters may delete their own
// issues, otherwise the admin tier is required.
func Delete(ctx context.Context, doer *user_model.User, issueID int64) error {
	issue, err := issues_model.GetIssueByID(ctx, issueID)
	if err != nil {
		return err
	}
	_, role, err := project_service.Permission(ctx, doer, issue.ProjectID)
	if err != nil {
		return err
	}
	isReporter := doer != nil && issue.ReporterID == doer.ID
	if err := check(perm.ActionDeleteIssue, role, isReporter); err != nil {
		return err
	}
	return issues_model.DeleteIssue(ctx, issueID)
}

// Upcoming returns the caller's assigned issues due within the given number of days
func Upcoming(ctx context.Context, doer *user_model.User, days int) ([]*issues_model.Issue, error) {
	return issues_model.FindUpcomingIssues(ctx, doer.ID, days)
}
