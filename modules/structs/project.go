// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package structs

import "time"

// Project represents a project in API responses
type Project struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Key         string     `json:"key"`
	Description string     `json:"description"`
	Owner       *User      `json:"owner"`
	Status      string     `json:"status"`
	IsPublic    bool       `json:"is_public"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
	Created     time.Time  `json:"created_at"`
	Updated     time.Time  `json:"updated_at"`
}

// Member represents a project membership in API responses
type Member struct {
	User *User  `json:"user"`
	Role string `json:"role"`
}

// CreateProjectOption options to create a project
type CreateProjectOption struct {
	Name        string `json:"name" binding:"Required;MaxSize(255)"`
	Key         string `json:"key" binding:"Required;AlphaDash;MaxSize(10)"`
	Description string `json:"description"`
	IsPublic    bool   `json:"is_public"`
	StartDate   int64  `json:"start_date"`
	EndDate     int64  `json:"end_date"`
}

// EditProjectOption options to edit a project, nil fields are left untouched
type EditProjectOption struct {
	Name        *string `json:"name" binding:"MaxSize(255)"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
	StartDate   *int64  `json:"start_date"`
	EndDate     *int64  `json:"end_date"`
}

// AddMemberOption options to grant a user a role in a project
type AddMemberOption struct {
	UserID int64  `json:"user_id" binding:"Required"`
	Role   string `json:"role" binding:"Required"`
}

// EditMemberRoleOption options to change a member's role
type EditMemberRoleOption struct {
	Role string `json:"role" binding:"Required"`
}
