// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues

import (
	"context"
	"fmt"
	"regexp"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"
)

// LabelColorPattern is a regexp which can validate a label color
var LabelColorPattern = regexp.MustCompile("^#[0-9a-fA-F]{6}$")

// Label represents a project-scoped label issues can carry
type Label struct {
	ID        int64  `xorm:"pk autoincr"`
	ProjectID int64  `xorm:"UNIQUE(s) INDEX NOT NULL"`
	Name      string `xorm:"UNIQUE(s) NOT NULL"`
	Color     string `xorm:"VARCHAR(7)"`

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

// IssueLabel represents an issue-label relation
type IssueLabel struct {
	ID      int64 `xorm:"pk autoincr"`
	IssueID int64 `xorm:"UNIQUE(s) INDEX NOT NULL"`
	LabelID int64 `xorm:"UNIQUE(s) INDEX NOT NULL"`
}

func init() {
	db.RegisterModel(new(Label))
	db.RegisterModel(new(IssueLabel))
}

// ErrLabelNotExist represents a "LabelNotExist" kind of error.
type ErrLabelNotExist struct {
	LabelID int64
}

// IsErrLabelNotExist checks if an error is a ErrLabelNotExist
func IsErrLabelNotExist(err error) bool {
	_, ok := err.(ErrLabelNotExist)
	return ok
}

func (err ErrLabelNotExist) Error() string {
	return fmt.Sprintf("label does not exist [label_id: %d]", err.LabelID)
}

func (err ErrLabelNotExist) Unwrap() error {
	return util.ErrNotExist
}

// NewLabel creates a label for a project
func NewLabel(ctx context.Context, label *Label) error {
	if util.IsEmptyString(label.Name) {
		return util.NewInvalidArgumentErrorf("label name is empty")
	}
	if len(label.Color) != 0 && !LabelColorPattern.MatchString(label.Color) {
		return util.NewInvalidArgumentErrorf("bad color code: %s", label.Color)
	}
	return db.Insert(ctx, label)
}

// GetLabelByID returns the label with the given id
func GetLabelByID(ctx context.Context, id int64) (*Label, error) {
	label := new(Label)
	has, err := db.GetEngine(ctx).ID(id).Get(label)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrLabelNotExist{LabelID: id}
	}
	return label, nil
}

// GetLabelsByIssueID returns the labels attached to an issue
func GetLabelsByIssueID(ctx context.Context, issueID int64) ([]*Label, error) {
	labels := make([]*Label, 0, 5)
	err := db.GetEngine(ctx).
		Join("INNER", "issue_label", "issue_label.label_id = label.id").
		Where("issue_label.issue_id=?", issueID).
		Asc("label.name").
		Find(&labels)
	return labels, err
}

// replaceIssueLabels replaces the label set of an issue. Every label must
// belong to the issue's project.
func replaceIssueLabels(ctx context.Context, issue *Issue, labelIDs []int64) error {
	for _, labelID := range labelIDs {
		label, err := GetLabelByID(ctx, labelID)
		if err != nil {
			return err
		}
		if label.ProjectID != issue.ProjectID {
			return util.NewInvalidOperationErrorf("label %d belongs to another project", labelID)
		}
	}

	if _, err := db.GetEngine(ctx).Where("issue_id=?", issue.ID).Delete(new(IssueLabel)); err != nil {
		return err
	}
	for _, labelID := range labelIDs {
		if err := db.Insert(ctx, &IssueLabel{IssueID: issue.ID, LabelID: labelID}); err != nil {
			return err
		}
	}
	issue.Labels = nil
	return nil
}

// ReplaceIssueLabels replaces the label set of an issue inside one transaction
func ReplaceIssueLabels(ctx context.Context, issue *Issue, labelIDs []int64) error {
	return db.AutoTx(ctx, func(ctx context.Context) error {
		return replaceIssueLabels(ctx, issue, labelIDs)
	})
}
