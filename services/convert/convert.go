// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package convert maps model beans to their API representations.
package convert

import (
	"context"

	issues_model "code.kanbo.io/kanbo/models/issues"
	project_model "code.kanbo.io/kanbo/models/project"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/log"
	api "code.kanbo.io/kanbo/modules/structs"
)

// ToUser converts a user bean to its API type, nil stays nil
func ToUser(user *user_model.User) *api.User {
	if user == nil {
		return nil
	}
	return &api.User{
		ID:       user.ID,
		UserName: user.Name,
		FullName: user.FullName,
		Email:    user.Email,
	}
}

// ToLabel converts a label bean to its API type
func ToLabel(label *issues_model.Label) *api.Label {
	return &api.Label{
		ID:    label.ID,
		Name:  label.Name,
		Color: label.Color,
	}
}

// ToIssue converts an issue bean to its API type, loading its relations
func ToIssue(ctx context.Context, issue *issues_model.Issue) *api.Issue {
	if err := issue.LoadAttributes(ctx); err != nil {
		log.Error("loading attributes of issue %d: %v", issue.ID, err)
	}

	result := &api.Issue{
		ID:          issue.ID,
		ProjectID:   issue.ProjectID,
		Title:       issue.Title,
		Description: issue.Description,
		Status:      string(issue.Status),
		Priority:    string(issue.Priority),
		Type:        string(issue.Type),
		Position:    issue.Position,
		Reporter:    ToUser(issue.Reporter),
		Assignee:    ToUser(issue.Assignee),
		ParentID:    issue.ParentID,
		Labels:      make([]*api.Label, 0, len(issue.Labels)),
		StoryPoints: issue.StoryPoints,
		Created:     issue.CreatedUnix.AsTime(),
		Updated:     issue.UpdatedUnix.AsTime(),
	}
	for _, label := range issue.Labels {
		result.Labels = append(result.Labels, ToLabel(label))
	}
	if !issue.DueUnix.IsZero() {
		result.DueDate = issue.DueUnix.AsTimePtr()
	}
	return result
}

// ToIssueList converts a list of issue beans
func ToIssueList(ctx context.Context, issues []*issues_model.Issue) []*api.Issue {
	result := make([]*api.Issue, 0, len(issues))
	for _, issue := range issues {
		result = append(result, ToIssue(ctx, issue))
	}
	return result
}

// ToProject converts a project bean to its API type
func ToProject(ctx context.Context, p *project_model.Project) *api.Project {
	if err := p.LoadOwner(ctx); err != nil {
		log.Error("loading owner of project %d: %v", p.ID, err)
	}

	result := &api.Project{
		ID:          p.ID,
		Name:        p.Name,
		Key:         p.Key,
		Description: p.Description,
		Owner:       ToUser(p.Owner),
		Status:      p.Status.String(),
		IsPublic:    p.IsPublic,
		Created:     p.CreatedUnix.AsTime(),
		Updated:     p.UpdatedUnix.AsTime(),
	}
	if !p.StartDateUnix.IsZero() {
		result.StartDate = p.StartDateUnix.AsTimePtr()
	}
	if !p.EndDateUnix.IsZero() {
		result.EndDate = p.EndDateUnix.AsTimePtr()
	}
	return result
}

// ToProjectList converts a list of project beans
func ToProjectList(ctx context.Context, projects []*project_model.Project) []*api.Project {
	result := make([]*api.Project, 0, len(projects))
	for _, p := range projects {
		result = append(result, ToProject(ctx, p))
	}
	return result
}

// ToMember converts a membership bean to its API type
func ToMember(ctx context.Context, m *project_model.Member) *api.Member {
	if err := m.LoadUser(ctx); err != nil {
		log.Error("loading user of member %d: %v", m.ID, err)
	}
	return &api.Member{
		User: ToUser(m.User),
		Role: m.Role.String(),
	}
}
