// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package issues_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"code.kanbo.io/kanbo/models/db"
	issues_model "code.kanbo.io/kanbo/models/issues"
	"code.kanbo.io/kanbo/models/unittest"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/optional"
	"code.kanbo.io/kanbo/modules/util"

	"github.com/stretchr/testify/assert"
)

func TestCreateIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  1,
		Title:      "Keyboard shortcuts",
		Priority:   issues_model.PriorityLow,
		Type:       issues_model.TypeStory,
		ReporterID: 2,
		LabelIDs:   []int64{2},
	})
	assert.NoError(t, err)
	// the TODO column already holds three issues
	assert.EqualValues(t, 3, issue.Position)
	assert.Equal(t, issues_model.StatusTodo, issue.Status)

	issue = unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: issue.ID})
	assert.Equal(t, "Keyboard shortcuts", issue.Title)
	unittest.AssertExistsAndLoadBean(t, &issues_model.IssueLabel{IssueID: issue.ID, LabelID: 2})
}

func TestCreateIssueDefaults(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  2,
		Title:      "Favicon",
		ReporterID: 2,
	})
	assert.NoError(t, err)
	assert.Equal(t, issues_model.PriorityMedium, issue.Priority)
	assert.Equal(t, issues_model.TypeTask, issue.Type)
	assert.EqualValues(t, 1, issue.Position)
}

func TestCreateIssueValidation(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  1,
		Title:      "   ",
		ReporterID: 1,
	})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	_, err = issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  1,
		Title:      "Detached subtask",
		Type:       issues_model.TypeSubtask,
		ReporterID: 1,
	})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	_, err = issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  999,
		Title:      "Orphan",
		ReporterID: 1,
	})
	assert.True(t, errors.Is(err, util.ErrNotExist))

	_, err = issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  1,
		Title:      "Ghost reporter",
		ReporterID: 999,
	})
	assert.True(t, user_model.IsErrUserNotExist(err))
}

func TestChangeStatus(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.ChangeStatus(db.DefaultContext, 1, issues_model.StatusInProgress)
	assert.NoError(t, err)
	assert.Equal(t, issues_model.StatusInProgress, issue.Status)
	// appended after the existing IN_PROGRESS issue
	assert.EqualValues(t, 1, issue.Position)

	// the source column keeps its gap, nothing is renumbered
	issue2 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 2})
	assert.EqualValues(t, 1, issue2.Position)
	issue3 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 3})
	assert.EqualValues(t, 2, issue3.Position)

	// and a fresh issue still lands past the gap without colliding
	created, err := issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
		ProjectID:  1,
		Title:      "After the gap",
		ReporterID: 1,
	})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, created.Position)
}

func TestChangeStatusNoop(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.ChangeStatus(db.DefaultContext, 2, issues_model.StatusTodo)
	assert.NoError(t, err)
	assert.EqualValues(t, 1, issue.Position)
}

func TestChangeStatusSubtask(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	subtask, err := issues_model.ChangeStatus(db.DefaultContext, 8, issues_model.StatusDone)
	assert.NoError(t, err)
	assert.Equal(t, issues_model.StatusDone, subtask.Status)
	// sibling position untouched, subtasks never occupy column slots
	assert.EqualValues(t, 1, subtask.Position)

	progress, err := issues_model.SubtaskProgress(db.DefaultContext, 6)
	assert.NoError(t, err)
	assert.InDelta(t, 100.0, progress, 0.001)
}

func TestChangeStatusInvalid(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.ChangeStatus(db.DefaultContext, 1, "DOING")
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	_, err = issues_model.ChangeStatus(db.DefaultContext, 999, issues_model.StatusDone)
	assert.True(t, issues_model.IsErrIssueNotExist(err))
}

func TestReorderColumn(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	assert.NoError(t, issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{3, 1, 2}))

	issues, err := issues_model.ColumnIssues(db.DefaultContext, 1, issues_model.StatusTodo)
	assert.NoError(t, err)
	if assert.Len(t, issues, 3) {
		assert.EqualValues(t, 3, issues[0].ID)
		assert.EqualValues(t, 1, issues[1].ID)
		assert.EqualValues(t, 2, issues[2].ID)
		for i, issue := range issues {
			assert.EqualValues(t, i, issue.Position)
		}
	}
}

func TestReorderColumnAcrossColumns(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// dropping issue 4 between 1 and 2 sends the full target column list
	assert.NoError(t, issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{1, 4, 2, 3}))

	issue4 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 4})
	assert.Equal(t, issues_model.StatusTodo, issue4.Status)
	assert.EqualValues(t, 1, issue4.Position)

	issues, err := issues_model.ColumnIssues(db.DefaultContext, 1, issues_model.StatusInProgress)
	assert.NoError(t, err)
	assert.Empty(t, issues)
}

func TestReorderColumnInvalid(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// duplicate ids
	err := issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{1, 2, 1})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// issue 9 belongs to another project
	err = issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{1, 2, 9})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// issue 8 is a subtask
	err = issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{1, 2, 8})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// nothing was moved
	issue1 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 1})
	assert.EqualValues(t, 0, issue1.Position)
	issue2 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 2})
	assert.EqualValues(t, 1, issue2.Position)
}

func TestReorderColumnPartialList(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// dropping issue 4 on TODO without the rest of the column would hand it a
	// position another issue already holds
	err := issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{4})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// a strict subset of the column itself is just as incomplete
	err = issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, []int64{2, 1})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// an empty list only describes an empty column
	err = issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, nil)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))
	assert.NoError(t, issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTesting, nil))

	issue4 := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 4})
	assert.Equal(t, issues_model.StatusInProgress, issue4.Status)

	issues, err := issues_model.ColumnIssues(db.DefaultContext, 1, issues_model.StatusTodo)
	assert.NoError(t, err)
	if assert.Len(t, issues, 3) {
		for i, issue := range issues {
			assert.EqualValues(t, i, issue.Position)
		}
	}
}

func TestReorderColumnConcurrent(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	orders := [][]int64{{3, 1, 2}, {2, 3, 1}, {1, 2, 3}, {3, 2, 1}}
	var wg sync.WaitGroup
	errs := make([]error, len(orders))
	for i, order := range orders {
		wg.Add(1)
		go func(i int, order []int64) {
			defer wg.Done()
			errs[i] = issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, order)
		}(i, order)
	}
	wg.Wait()
	for _, err := range errs {
		assert.NoError(t, err)
	}

	// whichever order won, positions are contiguous and unique
	issues, err := issues_model.ColumnIssues(db.DefaultContext, 1, issues_model.StatusTodo)
	assert.NoError(t, err)
	if assert.Len(t, issues, 3) {
		seen := make(map[int64]bool, 3)
		for i, issue := range issues {
			assert.EqualValues(t, i, issue.Position, "positions must stay contiguous")
			assert.False(t, seen[issue.Position], "position %d assigned twice", issue.Position)
			seen[issue.Position] = true
		}
	}
}

func TestAssignIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.AssignIssue(db.DefaultContext, 3, optional.Some[int64](4))
	assert.NoError(t, err)
	assert.EqualValues(t, 4, issue.AssigneeID)

	issue, err = issues_model.AssignIssue(db.DefaultContext, 3, optional.None[int64]())
	assert.NoError(t, err)
	assert.EqualValues(t, 0, issue.AssigneeID)

	_, err = issues_model.AssignIssue(db.DefaultContext, 3, optional.Some[int64](999))
	assert.True(t, user_model.IsErrUserNotExist(err))
}

func TestUpdateIssue(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.UpdateIssue(db.DefaultContext, 3, issues_model.UpdateIssueOptions{
		Title:       optional.Some("Board filtering by label and assignee"),
		Priority:    optional.Some(issues_model.PriorityHigh),
		StoryPoints: optional.Some(8.0),
	})
	assert.NoError(t, err)
	assert.Equal(t, issues_model.PriorityHigh, issue.Priority)
	// untouched fields keep their values
	assert.Equal(t, issues_model.TypeStory, issue.Type)
	assert.EqualValues(t, 2, issue.Position)

	issue = unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 3})
	assert.Equal(t, "Board filtering by label and assignee", issue.Title)
	assert.InDelta(t, 8.0, issue.StoryPoints, 0.001)
}

func TestUpdateIssueStatus(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	issue, err := issues_model.UpdateIssue(db.DefaultContext, 2, issues_model.UpdateIssueOptions{
		Status: optional.Some(issues_model.StatusDone),
	})
	assert.NoError(t, err)
	assert.Equal(t, issues_model.StatusDone, issue.Status)
	// appended after the existing DONE issue
	assert.EqualValues(t, 1, issue.Position)
}

func TestUpdateIssueLabels(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	_, err := issues_model.UpdateIssue(db.DefaultContext, 2, issues_model.UpdateIssueOptions{
		LabelIDs: optional.Some([]int64{1}),
	})
	assert.NoError(t, err)
	unittest.AssertExistsAndLoadBean(t, &issues_model.IssueLabel{IssueID: 2, LabelID: 1})
	unittest.AssertNotExistsBean(t, &issues_model.IssueLabel{IssueID: 2, LabelID: 2})

	// a label of another project cannot be attached
	_, err = issues_model.UpdateIssue(db.DefaultContext, 2, issues_model.UpdateIssueOptions{
		LabelIDs: optional.Some([]int64{3}),
	})
	assert.True(t, errors.Is(err, util.ErrInvalidOperation), "got %v", err)
}

func TestColumnPositionsStayDense(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// pile a few more issues into TODO and shuffle, positions always 0..n-1
	ids := []int64{1, 2, 3}
	for i := 0; i < 3; i++ {
		issue, err := issues_model.CreateIssue(db.DefaultContext, issues_model.NewIssueOptions{
			ProjectID:  1,
			Title:      fmt.Sprintf("filler %d", i),
			ReporterID: 1,
		})
		assert.NoError(t, err)
		assert.EqualValues(t, len(ids), issue.Position)
		ids = append(ids, issue.ID)
	}

	// reverse
	for i, j := 0, len(ids)-1; i < j; i, j = i+1, j-1 {
		ids[i], ids[j] = ids[j], ids[i]
	}
	assert.NoError(t, issues_model.ReorderColumn(db.DefaultContext, 1, issues_model.StatusTodo, ids))

	issues, err := issues_model.ColumnIssues(db.DefaultContext, 1, issues_model.StatusTodo)
	assert.NoError(t, err)
	if assert.Len(t, issues, len(ids)) {
		for i, issue := range issues {
			assert.Equal(t, ids[i], issue.ID)
			assert.EqualValues(t, i, issue.Position)
		}
	}
}
