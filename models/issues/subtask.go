// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"

	"code.kanbo.io/kanbo/models/db"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/util"
)

// NewSubtaskOptions are the caller-supplied fields for CreateSubtask. The
// project, reporter and priority come from the parent.
type NewSubtaskOptions struct {
	ParentID    int64
	Title       string
	Description string
	AssigneeID  int64
}

// CreateSubtask creates a subtask under a parent issue. The subtask starts in
// TODO and its position counts within the parent's existing children, a
// position space separate from the status columns.
func CreateSubtask(ctx context.Context, opts NewSubtaskOptions) (*Issue, error) {
	if util.IsEmptyString(opts.Title) {
		return nil, util.NewInvalidArgumentErrorf("subtask title is empty")
	}

	var subtask *Issue
	err := db.WithTx(ctx, func(ctx context.Context) error {
		parent, err := GetIssueByID(ctx, opts.ParentID)
		if err != nil {
			return err
		}
		if parent.IsSubtask() {
			return util.NewInvalidOperationErrorf("subtask %d cannot have subtasks of its own", parent.ID)
		}
		if opts.AssigneeID > 0 {
			if _, err := user_model.GetUserByID(ctx, opts.AssigneeID); err != nil {
				return err
			}
		}

		count, err := db.GetEngine(ctx).Where("parent_id=?", parent.ID).Count(new(Issue))
		if err != nil {
			return err
		}

		subtask = &Issue{
			ProjectID:   parent.ProjectID,
			Title:       opts.Title,
			Description: opts.Description,
			Status:      StatusTodo,
			Priority:    parent.Priority,
			Type:        TypeSubtask,
			ReporterID:  parent.ReporterID,
			AssigneeID:  opts.AssigneeID,
			ParentID:    parent.ID,
			Position:    count,
		}
		return db.Insert(ctx, subtask)
	})
	if err != nil {
		return nil, err
	}
	return subtask, nil
}

// GetSubtasks returns the children of an issue in sibling order
func GetSubtasks(ctx context.Context, parentID int64) ([]*Issue, error) {
	subtasks := make([]*Issue, 0, 5)
	if err := db.GetEngine(ctx).Where("parent_id=?", parentID).
		OrderBy("position, id").Find(&subtasks); err != nil {
		return nil, err
	}
	return subtasks, nil
}

// CompletedSubtaskCount returns how many children of the issue are DONE or CLOSED
func CompletedSubtaskCount(ctx context.Context, parentID int64) (int64, error) {
	return db.GetEngine(ctx).
		Where("parent_id=?", parentID).
		In("status", StatusDone, StatusClosed).
		Count(new(Issue))
}

// SubtaskProgress returns the roll-up percentage of finished children,
// 0 when the issue has no children.
func SubtaskProgress(ctx context.Context, parentID int64) (float64, error) {
	total, err := db.GetEngine(ctx).Where("parent_id=?", parentID).Count(new(Issue))
	if err != nil {
		return 0, err
	}
	if total == 0 {
		return 0, nil
	}
	completed, err := CompletedSubtaskCount(ctx, parentID)
	if err != nil {
		return 0, err
	}
	return float64(completed) / float64(total) * 100, nil
}

// DeleteIssue deletes an issue, its subtasks first, then the issue itself,
// together with all label attachments. The vacated columns are not renumbered,
// remaining issues keep their positions.
func DeleteIssue(ctx context.Context, issueID int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		issue, err := GetIssueByID(ctx, issueID)
		if err != nil {
			return err
		}

		subtasks, err := GetSubtasks(ctx, issue.ID)
		if err != nil {
			return err
		}

		ids := make([]int64, 0, len(subtasks)+1)
		for _, subtask := range subtasks {
			ids = append(ids, subtask.ID)
		}
		ids = append(ids, issue.ID)

		if _, err := db.GetEngine(ctx).In("issue_id", ids).Delete(new(IssueLabel)); err != nil {
			return err
		}
		_, err = db.GetEngine(ctx).In("id", ids).Delete(new(Issue))
		return err
	})
}
