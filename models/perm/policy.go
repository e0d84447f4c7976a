// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package perm

// Action is an operation gated by the access policy
type Action int

const (
	ActionReadIssue Action = iota + 1
	ActionCreateIssue
	ActionUpdateIssue
	ActionDeleteIssue
	ActionAssignIssue
	ActionChangeStatus
	ActionReorderIssues
	ActionManageMembers
	ActionArchiveProject
	ActionDeleteProject
)

// Decision holds the ownership facts the decision table needs besides the role
type Decision struct {
	Action Action
	Role   Role
	// IsReporter is only consulted for ActionDeleteIssue
	IsReporter bool
}

// Allowed is the pure access decision function. Unknown actions are denied,
// there is no default-allow path.
func Allowed(d Decision) bool {
	switch d.Action {
	case ActionReadIssue, ActionCreateIssue, ActionUpdateIssue,
		ActionAssignIssue, ActionChangeStatus, ActionReorderIssues:
		return d.Role != RoleNone
	case ActionDeleteIssue:
		return d.IsReporter || d.Role >= RoleAdmin
	case ActionManageMembers, ActionArchiveProject:
		return d.Role >= RoleAdmin
	case ActionDeleteProject:
		return d.Role == RoleOwner
	}
	return false
}
