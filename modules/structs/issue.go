// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

import "time"

// User represents a user in API responses
type User struct {
	ID       int64  `json:"id"`
	UserName string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}

// Label represents a project label
type Label struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Issue represents an issue in API responses
type Issue struct {
	ID          int64      `json:"id"`
	ProjectID   int64      `json:"project_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Type        string     `json:"type"`
	Position    int64      `json:"position"`
	Reporter    *User      `json:"reporter"`
	Assignee    *User      `json:"assignee"`
	ParentID    int64      `json:"parent_id,omitempty"`
	Labels      []*Label   `json:"labels"`
	DueDate     *time.Time `json:"due_date"`
	StoryPoints float64    `json:"story_points"`
	// Progress is the subtask roll-up percentage, only filled for single-issue responses
	Progress    float64    `json:"progress"`
	Created     time.Time  `json:"created_at"`
	Updated     time.Time  `json:"updated_at"`
}

// CreateIssueOption options to create an issue
type CreateIssueOption struct {
	ProjectID   int64   `json:"project_id" binding:"Required"`
	Title       string  `json:"title" binding:"Required;MaxSize(255)"`
	Description string  `json:"description"`
	Priority    string  `json:"priority"`
	Type        string  `json:"type"`
	AssigneeID  int64   `json:"assignee_id"`
	DueDate     int64   `json:"due_date"`
	StoryPoints float64 `json:"story_points"`
	LabelIDs    []int64 `json:"label_ids"`
}

// EditIssueOption options to edit an issue, nil fields are left untouched
type EditIssueOption struct {
	Title       *string  `json:"title" binding:"MaxSize(255)"`
	Description *string  `json:"description"`
	Status      *string  `json:"status"`
	Priority    *string  `json:"priority"`
	Type        *string  `json:"type"`
	AssigneeID  *int64   `json:"assignee_id"`
	DueDate     *int64   `json:"due_date"`
	StoryPoints *float64 `json:"story_points"`
	LabelIDs    *[]int64 `json:"label_ids"`
}

// ChangeStatusOption options to move an issue to another board column
type ChangeStatusOption struct {
	Status string `json:"status" binding:"Required"`
}

// AssignIssueOption options to set or clear the assignee
type AssignIssueOption struct {
	// AssigneeID 0 or absent clears the assignee
	AssigneeID int64 `json:"assignee_id"`
}

// ReorderOption carries the complete ordered id list of one board column
type ReorderOption struct {
	Status   string  `json:"status" binding:"Required"`
	IssueIDs []int64 `json:"issue_ids" binding:"Required"`
}

// CreateSubtaskOption options to create a subtask under an issue
type CreateSubtaskOption struct {
	Title       string `json:"title" binding:"Required;MaxSize(255)"`
	Description string `json:"description"`
	AssigneeID  int64  `json:"assignee_id"`
}
