// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"
	"sync"

	"code.kanbo.io/kanbo/models/db"
	project_model "code.kanbo.io/kanbo/models/project"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/optional"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"
)

// columnLocks serializes reorders per (project, status) column. Two reorders
// against the same column computed from the same snapshot would otherwise race
// and leave duplicate or missing positions. Cross-column operations stay
// parallel.
var columnLocks sync.Map // column key -> *sync.Mutex

func lockColumn(projectID int64, status Status) func() {
	key := fmt.Sprintf("%d/%s", projectID, status)
	mu, _ := columnLocks.LoadOrStore(key, &sync.Mutex{})
	mu.(*sync.Mutex).Lock()
	return mu.(*sync.Mutex).Unlock
}

// NewIssueOptions are the caller-supplied fields for CreateIssue
type NewIssueOptions struct {
	ProjectID   int64
	Title       string
	Description string
	Priority    Priority
	Type        Type
	ReporterID  int64
	AssigneeID  int64
	DueUnix     int64
	StoryPoints float64
	LabelIDs    []int64
}

// CreateIssue creates an issue at the end of the project's TODO column:
// position is the current count of issues in that column, strictly monotonic
// per column, so initial positions never collide.
func CreateIssue(ctx context.Context, opts NewIssueOptions) (*Issue, error) {
	if util.IsEmptyString(opts.Title) {
		return nil, util.NewInvalidArgumentErrorf("issue title is empty")
	}
	if opts.Priority == "" {
		opts.Priority = PriorityMedium
	} else if !opts.Priority.IsValid() {
		return nil, util.NewInvalidArgumentErrorf("unknown priority: %q", opts.Priority)
	}
	if opts.Type == "" {
		opts.Type = TypeTask
	} else if !opts.Type.IsValid() || opts.Type == TypeSubtask {
		return nil, util.NewInvalidArgumentErrorf("unknown issue type: %q", opts.Type)
	}

	issue := &Issue{
		ProjectID:   opts.ProjectID,
		Title:       opts.Title,
		Description: opts.Description,
		Status:      StatusTodo,
		Priority:    opts.Priority,
		Type:        opts.Type,
		ReporterID:  opts.ReporterID,
		AssigneeID:  opts.AssigneeID,
		DueUnix:     timeutil.TimeStamp(opts.DueUnix),
		StoryPoints: opts.StoryPoints,
	}

	err := db.WithTx(ctx, func(ctx context.Context) error {
		if _, err := project_model.GetProjectByID(ctx, opts.ProjectID); err != nil {
			return err
		}
		if _, err := user_model.GetUserByID(ctx, opts.ReporterID); err != nil {
			return err
		}
		if opts.AssigneeID > 0 {
			if _, err := user_model.GetUserByID(ctx, opts.AssigneeID); err != nil {
				return err
			}
		}

		count, err := countColumn(ctx, opts.ProjectID, StatusTodo)
		if err != nil {
			return err
		}
		issue.Position = count

		if err := db.Insert(ctx, issue); err != nil {
			return err
		}

		if len(opts.LabelIDs) > 0 {
			return replaceIssueLabels(ctx, issue, opts.LabelIDs)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// ChangeStatus moves an issue to another column, appending it to that column's
// end. Setting the current status again is a no-op. The issue's old column is
// not compacted, the positions left behind keep their values and the column
// simply has a gap.
func ChangeStatus(ctx context.Context, issueID int64, status Status) (*Issue, error) {
	if !status.IsValid() {
		return nil, util.NewInvalidArgumentErrorf("unknown status: %q", status)
	}

	var issue *Issue
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		issue, err = GetIssueByID(ctx, issueID)
		if err != nil {
			return err
		}
		if issue.Status == status {
			return nil
		}
		if issue.IsSubtask() {
			// subtasks keep their sibling position, they never land on a column
			issue.Status = status
			return UpdateIssueCols(ctx, issue, "status")
		}

		count, err := countColumn(ctx, issue.ProjectID, status)
		if err != nil {
			return err
		}
		issue.Status = status
		issue.Position = count
		return UpdateIssueCols(ctx, issue, "status", "position")
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// ReorderColumn applies a caller-supplied full ordering to one column:
// every listed issue gets status forced to the column's status and
// position = index. This is also how a drag across columns is expressed, the
// board sends the target column's complete id list. The whole list is applied
// in one transaction, serialized per column.
func ReorderColumn(ctx context.Context, projectID int64, status Status, issueIDs []int64) error {
	if !status.IsValid() {
		return util.NewInvalidArgumentErrorf("unknown status: %q", status)
	}
	if len(issueIDs) == 0 {
		// an empty list is only a no-op for an empty column
		count, err := countColumn(ctx, projectID, status)
		if err != nil {
			return err
		}
		if count > 0 {
			return util.NewInvalidOperationErrorf("reorder list does not cover the column")
		}
		return nil
	}

	seen := make(map[int64]struct{}, len(issueIDs))
	for _, id := range issueIDs {
		if _, ok := seen[id]; ok {
			return util.NewInvalidOperationErrorf("issue %d listed twice in reorder", id)
		}
		seen[id] = struct{}{}
	}

	unlock := lockColumn(projectID, status)
	defer unlock()

	return db.WithTx(ctx, func(ctx context.Context) error {
		count, err := db.GetEngine(ctx).Table(new(Issue)).
			Where("project_id=?", projectID).In("id", issueIDs).Count()
		if err != nil {
			return err
		}
		if int(count) != len(issueIDs) {
			return util.NewInvalidOperationErrorf("reorder list does not match the issues of project %d", projectID)
		}
		subtasks, err := db.GetEngine(ctx).Table(new(Issue)).
			Where("parent_id>0").In("id", issueIDs).Count()
		if err != nil {
			return err
		}
		if subtasks > 0 {
			return util.NewInvalidOperationErrorf("subtasks cannot be reordered on the board")
		}

		// the list must cover the whole column, a partial list would leave the
		// omitted issues holding the same positions as the reordered ones
		var columnIDs []int64
		if err := db.GetEngine(ctx).Table(new(Issue)).Cols("id").
			Where("project_id=? AND status=? AND parent_id=0", projectID, status).
			Find(&columnIDs); err != nil {
			return err
		}
		for _, id := range columnIDs {
			if _, ok := seen[id]; !ok {
				return util.NewInvalidOperationErrorf("issue %d of the column is missing from the reorder list", id)
			}
		}

		for position, issueID := range issueIDs {
			if _, err := db.Exec(ctx, "UPDATE `issue` SET status=?, position=? WHERE id=?", status, position, issueID); err != nil {
				return err
			}
		}
		return nil
	})
}

// AssignIssue sets or clears the assignee. None clears. No ordering side effect.
func AssignIssue(ctx context.Context, issueID int64, assigneeID optional.Option[int64]) (*Issue, error) {
	var issue *Issue
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		issue, err = GetIssueByID(ctx, issueID)
		if err != nil {
			return err
		}
		if assigneeID.Has() && assigneeID.Value() > 0 {
			if _, err := user_model.GetUserByID(ctx, assigneeID.Value()); err != nil {
				return err
			}
			issue.AssigneeID = assigneeID.Value()
		} else {
			issue.AssigneeID = 0
		}
		_, err = db.GetEngine(ctx).ID(issue.ID).Cols("assignee_id").Update(issue)
		return err
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}

// UpdateIssueOptions carries the optional fields of a general issue update.
// Unset options leave the field untouched.
type UpdateIssueOptions struct {
	Title       optional.Option[string]
	Description optional.Option[string]
	Status      optional.Option[Status]
	Priority    optional.Option[Priority]
	Type        optional.Option[Type]
	AssigneeID  optional.Option[int64]
	DueUnix     optional.Option[int64]
	StoryPoints optional.Option[float64]
	LabelIDs    optional.Option[[]int64]
}

// UpdateIssue applies a partial update. A status change goes through the same
// append-to-destination-column path as ChangeStatus.
func UpdateIssue(ctx context.Context, issueID int64, opts UpdateIssueOptions) (*Issue, error) {
	var issue *Issue
	err := db.WithTx(ctx, func(ctx context.Context) (err error) {
		issue, err = GetIssueByID(ctx, issueID)
		if err != nil {
			return err
		}

		cols := make([]string, 0, 8)
		if opts.Title.Has() {
			if util.IsEmptyString(opts.Title.Value()) {
				return util.NewInvalidArgumentErrorf("issue title is empty")
			}
			issue.Title = opts.Title.Value()
			cols = append(cols, "title")
		}
		if opts.Description.Has() {
			issue.Description = opts.Description.Value()
			cols = append(cols, "description")
		}
		if opts.Priority.Has() {
			if !opts.Priority.Value().IsValid() {
				return util.NewInvalidArgumentErrorf("unknown priority: %q", opts.Priority.Value())
			}
			issue.Priority = opts.Priority.Value()
			cols = append(cols, "priority")
		}
		if opts.Type.Has() {
			if !opts.Type.Value().IsValid() || opts.Type.Value() == TypeSubtask {
				return util.NewInvalidArgumentErrorf("unknown issue type: %q", opts.Type.Value())
			}
			if issue.IsSubtask() {
				return util.NewInvalidOperationErrorf("subtasks cannot change type")
			}
			issue.Type = opts.Type.Value()
			cols = append(cols, "type")
		}
		if opts.AssigneeID.Has() {
			if opts.AssigneeID.Value() > 0 {
				if _, err := user_model.GetUserByID(ctx, opts.AssigneeID.Value()); err != nil {
					return err
				}
			}
			issue.AssigneeID = opts.AssigneeID.Value()
			cols = append(cols, "assignee_id")
		}
		if opts.DueUnix.Has() {
			issue.DueUnix = timeutil.TimeStamp(opts.DueUnix.Value())
			cols = append(cols, "due_unix")
		}
		if opts.StoryPoints.Has() {
			issue.StoryPoints = opts.StoryPoints.Value()
			cols = append(cols, "story_points")
		}
		if opts.Status.Has() && opts.Status.Value() != issue.Status {
			status := opts.Status.Value()
			if !status.IsValid() {
				return util.NewInvalidArgumentErrorf("unknown status: %q", status)
			}
			issue.Status = status
			if issue.IsSubtask() {
				cols = append(cols, "status")
			} else {
				count, err := countColumn(ctx, issue.ProjectID, status)
				if err != nil {
					return err
				}
				issue.Position = count
				cols = append(cols, "status", "position")
			}
		}

		if len(cols) > 0 {
			if err := UpdateIssueCols(ctx, issue, cols...); err != nil {
				return err
			}
		}

		if opts.LabelIDs.Has() {
			return replaceIssueLabels(ctx, issue, opts.LabelIDs.Value())
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return issue, nil
}
