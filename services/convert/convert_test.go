// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package convert

import (
	"testing"

	"code.kanbo.io/kanbo/models/db"
	issues_model "code.kanbo.io/kanbo/models/issues"
	project_model "code.kanbo.io/kanbo/models/project"
	"code.kanbo.io/kanbo/models/unittest"
	user_model "code.kanbo.io/kanbo/models/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToIssue(t *testing.T) {
	require.NoError(t, unittest.PrepareTestDatabase())

	issue := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 2})
	apiIssue := ToIssue(db.DefaultContext, issue)

	assert.Equal(t, issue.ID, apiIssue.ID)
	assert.Equal(t, "BUG", apiIssue.Type)
	assert.Equal(t, "TODO", apiIssue.Status)
	if assert.NotNil(t, apiIssue.Reporter) {
		assert.Equal(t, issue.ReporterID, apiIssue.Reporter.ID)
	}
	if assert.NotNil(t, apiIssue.Assignee) {
		assert.Equal(t, issue.AssigneeID, apiIssue.Assignee.ID)
	}
	if assert.NotNil(t, apiIssue.DueDate) {
		assert.Equal(t, issue.DueUnix.AsTime(), *apiIssue.DueDate)
	}
	assert.Len(t, apiIssue.Labels, 2)
}

func TestToIssueNoAssignee(t *testing.T) {
	require.NoError(t, unittest.PrepareTestDatabase())

	issue := unittest.AssertExistsAndLoadBean(t, &issues_model.Issue{ID: 3})
	apiIssue := ToIssue(db.DefaultContext, issue)

	assert.Nil(t, apiIssue.Assignee)
	assert.Nil(t, apiIssue.DueDate)
	assert.Empty(t, apiIssue.Labels)
}

func TestToProject(t *testing.T) {
	require.NoError(t, unittest.PrepareTestDatabase())

	p := unittest.AssertExistsAndLoadBean(t, &project_model.Project{ID: 1})
	apiProject := ToProject(db.DefaultContext, p)

	assert.Equal(t, "KAN", apiProject.Key)
	assert.Equal(t, "ACTIVE", apiProject.Status)
	assert.False(t, apiProject.IsPublic)
	if assert.NotNil(t, apiProject.Owner) {
		assert.Equal(t, p.OwnerID, apiProject.Owner.ID)
	}
}

func TestToMember(t *testing.T) {
	require.NoError(t, unittest.PrepareTestDatabase())

	m := unittest.AssertExistsAndLoadBean(t, &project_model.Member{ProjectID: 1, UserID: 2})
	apiMember := ToMember(db.DefaultContext, m)

	assert.Equal(t, "ADMIN", apiMember.Role)
	if assert.NotNil(t, apiMember.User) {
		assert.Equal(t, "bjorn", apiMember.User.UserName)
	}
}

func TestToUserNil(t *testing.T) {
	assert.Nil(t, ToUser(nil))
	u := &user_model.User{ID: 9, Name: "x"}
	assert.Equal(t, int64(9), ToUser(u).ID)
}
