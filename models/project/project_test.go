// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project_test

import (
	"errors"
	"testing"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/models/perm"
	project_model "code.kanbo.io/kanbo/models/project"
	"code.kanbo.io/kanbo/models/unittest"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/util"

	"github.com/stretchr/testify/assert"
)

func TestNewProject(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p := &project_model.Project{
		Name:    "Mobile App",
		Key:     "mob",
		OwnerID: 3,
	}
	assert.NoError(t, project_model.NewProject(db.DefaultContext, p))

	// key is stored upper-cased
	assert.Equal(t, "MOB", p.Key)
	assert.Equal(t, project_model.StatusActive, p.Status)

	// the creator holds the OWNER membership, created atomically
	member := unittest.AssertExistsAndLoadBean(t, &project_model.Member{ProjectID: p.ID, UserID: 3})
	assert.Equal(t, perm.RoleOwner, member.Role)
}

func TestNewProjectDuplicateKey(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// differs from KAN only by case
	p := &project_model.Project{Name: "Copycat", Key: "kan", OwnerID: 2}
	err := project_model.NewProject(db.DefaultContext, p)
	assert.True(t, project_model.IsErrProjectKeyAlreadyUsed(err))
	assert.True(t, errors.Is(err, util.ErrAlreadyExist))

	// neither the project nor a membership became visible
	unittest.AssertNotExistsBean(t, &project_model.Project{Name: "Copycat"})
	unittest.AssertCount(t, new(project_model.Member), 6)
}

func TestNewProjectValidation(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	err := project_model.NewProject(db.DefaultContext, &project_model.Project{Name: " ", Key: "X1", OwnerID: 1})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	err = project_model.NewProject(db.DefaultContext, &project_model.Project{Name: "No key", Key: "  ", OwnerID: 1})
	assert.True(t, errors.Is(err, util.ErrInvalidArgument))

	err = project_model.NewProject(db.DefaultContext, &project_model.Project{Name: "Ghost owner", Key: "GH", OwnerID: 999})
	assert.True(t, user_model.IsErrUserNotExist(err))
	unittest.AssertNotExistsBean(t, &project_model.Project{Key: "GH"})
}

func TestGetProjectByKey(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByKey(db.DefaultContext, "kan")
	assert.NoError(t, err)
	assert.EqualValues(t, 1, p.ID)

	_, err = project_model.GetProjectByKey(db.DefaultContext, "NOPE")
	assert.True(t, project_model.IsErrProjectNotExist(err))
}

func TestUpdateProject(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	p, err := project_model.GetProjectByID(db.DefaultContext, 1)
	assert.NoError(t, err)

	p.Name = "Kanbo Core v2"
	p.IsPublic = true
	p.OwnerID = 2 // must not stick
	assert.NoError(t, project_model.UpdateProject(db.DefaultContext, p))

	p = unittest.AssertExistsAndLoadBean(t, &project_model.Project{ID: 1})
	assert.Equal(t, "Kanbo Core v2", p.Name)
	assert.True(t, p.IsPublic)
	assert.EqualValues(t, 1, p.OwnerID)
}

func TestArchiveProject(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	assert.NoError(t, project_model.ArchiveProject(db.DefaultContext, 1))
	p := unittest.AssertExistsAndLoadBean(t, &project_model.Project{ID: 1})
	assert.Equal(t, project_model.StatusArchived, p.Status)

	// archiving again is not allowed
	err := project_model.ArchiveProject(db.DefaultContext, 1)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))

	// neither is archiving an already archived fixture project
	err = project_model.ArchiveProject(db.DefaultContext, 3)
	assert.True(t, errors.Is(err, util.ErrInvalidOperation))
}

func TestDeleteProject(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// deleting works from ACTIVE and from ARCHIVED
	assert.NoError(t, project_model.DeleteProject(db.DefaultContext, 1))
	assert.NoError(t, project_model.DeleteProject(db.DefaultContext, 3))

	p := unittest.AssertExistsAndLoadBean(t, &project_model.Project{ID: 1})
	assert.True(t, p.IsDeleted())

	// a soft delete leaves issues and memberships in place
	assert.Positive(t, unittest.GetCount(t, new(project_model.Member), unittest.Cond("project_id=?", 1)))

	err := project_model.DeleteProject(db.DefaultContext, 999)
	assert.True(t, project_model.IsErrProjectNotExist(err))
}

func TestFindProjects(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	// default lists only active projects
	projects, count, err := project_model.FindProjects(db.DefaultContext, project_model.SearchOptions{})
	assert.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Len(t, projects, 2)

	// membership filter
	projects, _, err = project_model.FindProjects(db.DefaultContext, project_model.SearchOptions{MemberID: 2})
	assert.NoError(t, err)
	assert.Len(t, projects, 2)

	projects, _, err = project_model.FindProjects(db.DefaultContext, project_model.SearchOptions{MemberID: 4})
	assert.NoError(t, err)
	if assert.Len(t, projects, 1) {
		assert.EqualValues(t, 1, projects[0].ID)
	}

	// archived projects show up when asked for
	projects, _, err = project_model.FindProjects(db.DefaultContext, project_model.SearchOptions{
		MemberID: 1,
		Statuses: []project_model.Status{project_model.StatusActive, project_model.StatusArchived},
	})
	assert.NoError(t, err)
	assert.Len(t, projects, 2)

	// keyword matches name and key, case-insensitively
	projects, _, err = project_model.FindProjects(db.DefaultContext, project_model.SearchOptions{Keyword: "pub"})
	assert.NoError(t, err)
	if assert.Len(t, projects, 1) {
		assert.EqualValues(t, 2, projects[0].ID)
	}

	// public listing needs no membership
	projects, _, err = project_model.FindProjects(db.DefaultContext, project_model.SearchOptions{PublicOnly: true})
	assert.NoError(t, err)
	if assert.Len(t, projects, 1) {
		assert.EqualValues(t, 2, projects[0].ID)
	}
}

func TestIsKeyUsed(t *testing.T) {
	assert.NoError(t, unittest.PrepareTestDatabase())

	for _, key := range []string{"KAN", "kan", "Kan"} {
		used, err := project_model.IsKeyUsed(db.DefaultContext, key)
		assert.NoError(t, err)
		assert.True(t, used, "key %q should be taken", key)
	}

	used, err := project_model.IsKeyUsed(db.DefaultContext, "FREE")
	assert.NoError(t, err)
	assert.False(t, used)
}
