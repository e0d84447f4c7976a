// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package perm holds project roles and the access decision table.
package perm

import (
	"fmt"
)

// Role represents a member's role within a project.
// Higher values grant strictly more than lower ones.
type Role int

const (
	// RoleNone is the pseudo role of a user without a membership
	RoleNone Role = iota
	// RoleViewer can read the project and its issues
	RoleViewer
	// RoleDeveloper can work with issues
	RoleDeveloper
	// RoleAdmin can additionally manage members and archive the project
	RoleAdmin
	// RoleOwner is held by exactly one member, granted at project creation and never transferred
	RoleOwner
)

var roleNames = map[Role]string{
	RoleNone:      "none",
	RoleViewer:    "VIEWER",
	RoleDeveloper: "DEVELOPER",
	RoleAdmin:     "ADMIN",
	RoleOwner:     "OWNER",
}

// String returns the wire name of the role
func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return "none"
}

// IsValid checks whether the role is an assignable membership role.
// RoleNone is not assignable, it only describes the absence of a membership.
func (r Role) IsValid() bool {
	return r >= RoleViewer && r <= RoleOwner
}

// ParseRole maps a wire name to a Role
func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return RoleNone, fmt.Errorf("unknown role: %q", name)
}

// MarshalJSON implements json.Marshaler
func (r Role) MarshalJSON() ([]byte, error) {
	return []byte(`"` + r.String() + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (r *Role) UnmarshalJSON(data []byte) error {
	name := string(data)
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		name = name[1 : len(name)-1]
	}
	role, err := ParseRole(name)
	if err != nil {
		return err
	}
	*r = role
	return nil
}
