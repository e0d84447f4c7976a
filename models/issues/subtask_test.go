// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"errors"
	"testing"

	"code.kanbo.io/kanbo/models/db"
	issues_model "code.kanbo.io/kanbo/models/issues"
	"code.kanbo.io/kanbo/models/unittest"
	"code.kanbo.io/kanbo/modules/util"

	"github.com/stretchr/testify/assert"
)

func TestCreateSubtask(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask, err := issues_model.CreateSubtask(db.DefaultContext, issues_model.NewSubtaskOptions{
		ParentID: 6,
		Title:    "Audit log entry",
	})
	assert.NoError(t, err)
	assert.Equal(t, issues_model.TypeSubtask, subtask.Type)
	assert.Equal(t, issues_model.StatusTodo, subtask.Status)
	// third child of issue 6
	assert.EqualValues(t, 2, subtask.Position)
	// project, priority and reporter come from the parent
	assert.EqualValues(t, 1, subtask.ProjectID)
	assert.Equal(t, issues_model.PriorityHigh, subtask.Priority)
	assert.EqualValues(t, 2, subtask.ReporterID)
}

func TestCreateSubtaskFirstChild(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask, err := issues_model.CreateSubtask(db.DefaultContext, issues_model.NewSubtaskOptions{
		ParentID:   1,
		Title:      "Write the migration",
		AssigneeID: 3,
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 0, subtask.Position)
	assert.EqualValues(t, 1, subtask.ParentID)
}

func TestCreateSubtaskOfSubtask(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.CreateSubtask(db.DefaultContext, issues_model.NewSubtaskOptions{
		ParentID: 8,
		Title:    "Too deep",
	})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))
	unittest.AssertNotExistsBean(t, &issues_model.Issue{Title: "Too deep"})
}

func TestCreateSubtaskInvalid(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.CreateSubtask(db.DefaultContext, issues_model.NewSubtaskOptions{
		ParentID: 6,
		Title:    " ",
	})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	_, err = issues_model.CreateSubtask(db.DefaultContext, issues_model.NewSubtaskOptions{
		ParentID: 999,
		Title:    "Orphan",
	})
	assert.True(t, issues_model.IsErrIssueNotExist(err))
}

func TestGetSubtasks(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtasks, err := issues_model.GetSubtasks(db.DefaultContext, 6)
	assert.NoError(t, err)
	if assert.Len(t, subtasks, 2) {
		assert.EqualValues(t, 7, subtasks[0].ID)
		assert.EqualValues(t, 8, subtasks[1].ID)
	}

	subtasks, err = issues_model.GetSubtasks(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Empty(t, subtasks)
}

func TestSubtaskProgress(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// one DONE child, one TODO child
	progress, err := issues_model.SubtaskProgress(db.DefaultContext, 6)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)

	// grow to DONE, TODO, CLOSED, IN_PROGRESS: still half finished
	for _, status := range []issues_model.Status{issues_model.StatusClosed, issues_model.StatusInProgress} {
		subtask, err := issues_model.CreateSubtask(db.DefaultContext, issues_model.NewSubtaskOptions{
			ParentID: 6,
			Title:    "child in " + string(status),
		})
		assert.NoError(t, err)
		_, err = issues_model.ChangeStatus(db.DefaultContext, subtask.ID, status)
		assert.NoError(t, err)
	}
	progress, err = issues_model.SubtaskProgress(db.DefaultContext, 6)
	assert.NoError(t, err)
	assert.InDelta(t, 50.0, progress, 0.001)
}

func TestSubtaskProgressNoChildren(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	progress, err := issues_model.SubtaskProgress(db.DefaultContext, 1)
	assert.NoError(t, err)
	assert.Zero(t, progress)
}

func TestDeleteIssueCascadesSubtasks(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	assert.NoError(t, issues_model.DeleteIssue(db.DefaultContext, 6))

	unittest.AssertNotExistsBean(t, &issues_model.Issue{ID: 6})
	unittest.AssertNotExistsBean(t, &issues_model.Issue{ID: 7})
	unittest.AssertNotExistsBean(t, &issues_model.Issue{ID: 8})
}

func TestDeleteIssueKeepsColumnGap(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	assert.NoError(t, issues_model.DeleteIssue(db.DefaultContext, 2))

	unittest.AssertNotExistsBean(t, &issues_model.Issue{ID: 2})
	unittest.AssertNotExistsBean(t, &issues_model.IssueLabel{IssueID: 2})
	// the labels themselves survive
	unittest.AssertExistsAndLoadBean(t, &issues_model.Label{ID: 1})
	unittest.AssertExistsAndLoadBean(t, &issues_model.Label{ID: 2})

	// no renumbering of the column the issue left
	issue3 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 3})
	assert.EqualValues(t, 2, issue3.Position)
}

func TestDeleteIssueNotExist(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	err := issues_model.DeleteIssue(db.DefaultContext, 999)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
}
