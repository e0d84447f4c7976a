// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package issues holds issues, their board ordering and the subtask roll-up.
package issues

import (
	"context"
	"fmt"

	"code.kanbo.io/kanbo/models/db"
	project_model "code.kanbo.io/kanbo/models/project"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"

	"xorm.io/builder"
)

// Status is the workflow column an issue sits in. Status is just a label,
// no transition graph is enforced, any status may follow any other.
type Status string

// Workflow statuses
const (
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusInReview   Status = "IN_REVIEW"
	StatusTesting    Status = "TESTING"
	StatusDone       Status = "DONE"
	StatusClosed     Status = "CLOSED"
)

// Statuses is the full workflow set in board order
var Statuses = []Status{StatusTodo, StatusInProgress, StatusInReview, StatusTesting, StatusDone, StatusClosed}

// IsValid checks whether the status belongs to the workflow set
func (s Status) IsValid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// IsCompleted reports whether the status counts towards the subtask roll-up
func (s Status) IsCompleted() bool {
	return s == StatusDone || s == StatusClosed
}

// Priority of an issue
type Priority string

// Priorities, lowest to highest
const (
	PriorityLowest  Priority = "LOWEST"
	PriorityLow     Priority = "LOW"
	PriorityMedium  Priority = "MEDIUM"
	PriorityHigh    Priority = "HIGH"
	PriorityHighest Priority = "HIGHEST"
)

// IsValid checks whether the priority is a known one
func (p Priority) IsValid() bool {
	switch p {
	case PriorityLowest, PriorityLow, PriorityMedium, PriorityHigh, PriorityHighest:
		return true
	}
	return false
}

// Type of an issue
type Type string

// Issue types. TypeSubtask is special: subtask issues hang off a parent and
// are positioned among their siblings instead of in a status column.
const (
	TypeStory   Type = "STORY"
	TypeBug     Type = "BUG"
	TypeTask    Type = "TASK"
	TypeEpic    Type = "EPIC"
	TypeSubtask Type = "SUBTASK"
)

// IsValid checks whether the type is a known one
func (t Type) IsValid() bool {
	switch t {
	case TypeStory, TypeBug, TypeTask, TypeEpic, TypeSubtask:
		return true
	}
	return false
}

// ErrIssueNotExist represents a "IssueNotExist" kind of error.
type ErrIssueNotExist struct {
	ID int64
}

// IsErrIssueNotExist checks if an error is a ErrIssueNotExist
func IsErrIssueNotExist(err error) bool {
	_, ok := err.(ErrIssueNotExist)
	return ok
}

func (err ErrIssueNotExist) Error() string {
	return fmt.Sprintf("issue does not exist [id: %d]", err.ID)
}

func (err ErrIssueNotExist) Unwrap() error {
	return util.ErrNotExist
}

// Issue represents an issue of a project
type Issue struct {
	ID          int64    `xorm:"pk autoincr"`
	ProjectID   int64    `xorm:"INDEX(project_status) NOT NULL"`
	Title       string   `xorm:"NOT NULL"`
	Description string   `xorm:"TEXT"`
	Status      Status   `xorm:"INDEX(project_status) VARCHAR(20) NOT NULL DEFAULT 'TODO'"`
	Priority    Priority `xorm:"VARCHAR(10) NOT NULL DEFAULT 'MEDIUM'"`
	Type        Type     `xorm:"VARCHAR(10) NOT NULL DEFAULT 'TASK'"`

	ReporterID int64 `xorm:"INDEX NOT NULL"` // immutable creator reference
	AssigneeID int64 `xorm:"INDEX"`          // 0 means unassigned
	ParentID   int64 `xorm:"INDEX"`          // 0 means top-level

	// Position orders the issue inside its (project, status) column, or for
	// subtasks inside the sibling set of its parent. Columns are read ordered
	// by position and may contain gaps after an issue leaves them, only a
	// reorder rewrites the numbering.
	Position int64 `xorm:"NOT NULL DEFAULT 0"`

	DueUnix     timeutil.TimeStamp
	StoryPoints float64 `xorm:"NOT NULL DEFAULT 0"`

	Project  *project_model.Project `xorm:"-"`
	Reporter *user_model.User       `xorm:"-"`
	Assignee *user_model.User       `xorm:"-"`
	Labels   []*Label               `xorm:"-"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Issue))
}

// IsSubtask reports whether the issue is a subtask hanging off a parent
func (issue *Issue) IsSubtask() bool {
	return issue.Type == TypeSubtask && issue.ParentID > 0
}

// LoadProject loads the issue's project
func (issue *Issue) LoadProject(ctx context.Context) (err error) {
	if issue.Project != nil {
		return nil
	}
	issue.Project, err = project_model.GetProjectByID(ctx, issue.ProjectID)
	return err
}

// LoadReporter loads the issue's reporter
func (issue *Issue) LoadReporter(ctx context.Context) (err error) {
	if issue.Reporter != nil {
		return nil
	}
	issue.Reporter, err = user_model.GetUserByID(ctx, issue.ReporterID)
	return err
}

// LoadAssignee loads the issue's assignee, a missing assignee stays nil
func (issue *Issue) LoadAssignee(ctx context.Context) (err error) {
	if issue.AssigneeID == 0 || issue.Assignee != nil {
		return nil
	}
	issue.Assignee, err = user_model.GetUserByID(ctx, issue.AssigneeID)
	return err
}

// LoadLabels loads the labels attached to the issue
func (issue *Issue) LoadLabels(ctx context.Context) (err error) {
	if issue.Labels != nil {
		return nil
	}
	issue.Labels, err = GetLabelsByIssueID(ctx, issue.ID)
	return err
}

// LoadAttributes loads the project, reporter, assignee and labels of the issue
func (issue *Issue) LoadAttributes(ctx context.Context) error {
	if err := issue.LoadProject(ctx); err != nil {
		return err
	}
	if err := issue.LoadReporter(ctx); err != nil {
		return err
	}
	if err := issue.LoadAssignee(ctx); err != nil {
		return err
	}
	return issue.LoadLabels(ctx)
}

// GetIssueByID returns the issue with the given id
func GetIssueByID(ctx context.Context, id int64) (*Issue, error) {
	issue := new(Issue)
	has, err := db.GetEngine(ctx).ID(id).Get(issue)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrIssueNotExist{ID: id}
	}
	return issue, nil
}

// countColumn returns the number of issues currently in the (project, status)
// column. Subtasks have a status too but live in their parent's sibling
// position space, so they never occupy a column slot.
func countColumn(ctx context.Context, projectID int64, status Status) (int64, error) {
	return db.GetEngine(ctx).Where("project_id=? AND status=? AND parent_id=0", projectID, status).Count(new(Issue))
}

// FindIssuesOptions are options for FindIssues
type FindIssuesOptions struct {
	db.ListOptions
	ProjectID  int64
	Status     Status // empty matches all statuses
	Keyword    string // substring match on title and description
	AssigneeID int64
	ReporterID int64
}

func (opts *FindIssuesOptions) toConds() builder.Cond {
	cond := builder.NewCond()
	if opts.ProjectID > 0 {
		cond = cond.And(builder.Eq{"project_id": opts.ProjectID})
	}
	if opts.Status != "" {
		cond = cond.And(builder.Eq{"status": opts.Status})
	}
	if opts.AssigneeID > 0 {
		cond = cond.And(builder.Eq{"assignee_id": opts.AssigneeID})
	}
	if opts.ReporterID > 0 {
		cond = cond.And(builder.Eq{"reporter_id": opts.ReporterID})
	}
	if opts.Keyword != "" {
		kw := "%" + opts.Keyword + "%"
		cond = cond.And(builder.Or(
			db.BuildCaseInsensitiveLike("title", kw),
			db.BuildCaseInsensitiveLike("description", kw),
		))
	}
	return cond
}

// FindIssues returns issues matching the options together with the total count
func FindIssues(ctx context.Context, opts FindIssuesOptions) ([]*Issue, int64, error) {
	sess := db.GetEngine(ctx).Table("issue").Where(opts.toConds()).OrderBy("created_unix DESC, id DESC")
	if opts.Page > 0 {
		sess = db.SetSessionPagination(sess, &opts.ListOptions)
	}
	issues := make([]*Issue, 0, 10)
	count, err := sess.FindAndCount(&issues)
	return issues, count, err
}

// KanbanIssues returns all issues of a project ordered for board rendering.
// Reading sorts by position then id, so columns with position gaps still come
// back in a stable, meaningful order.
func KanbanIssues(ctx context.Context, projectID int64) ([]*Issue, error) {
	issues := make([]*Issue, 0, 10)
	if err := db.GetEngine(ctx).Where("project_id=? AND parent_id=0", projectID).
		OrderBy("position, id").Find(&issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// ColumnIssues returns the issues of one (project, status) column in board order
func ColumnIssues(ctx context.Context, projectID int64, status Status) ([]*Issue, error) {
	issues := make([]*Issue, 0, 10)
	if err := db.GetEngine(ctx).Where("project_id=? AND status=? AND parent_id=0", projectID, status).
		OrderBy("position, id").Find(&issues); err != nil {
		return nil, err
	}
	return issues, nil
}

// FindUpcomingIssues returns unfinished issues assigned to the user with a due
// date inside the next "days" days, closest deadline first.
func FindUpcomingIssues(ctx context.Context, assigneeID int64, days int) ([]*Issue, error) {
	now := timeutil.TimeStampNow()
	deadline := now.Add(int64(days) * 24 * 60 * 60)
	issues := make([]*Issue, 0, 10)
	err := db.GetEngine(ctx).
		Where("assignee_id=? AND due_unix > 0 AND due_unix <= ?", assigneeID, deadline).
		And(builder.NotIn("status", StatusDone, StatusClosed)).
		OrderBy("due_unix").Find(&issues)
	return issues, err
}

// UpdateIssueCols updates the given columns of the issue
func UpdateIssueCols(ctx context.Context, issue *Issue, cols ...string) error {
	_, err := db.GetEngine(ctx).ID(issue.ID).Cols(cols...).Update(issue)
	return err
}
