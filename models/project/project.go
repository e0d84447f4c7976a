// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package project holds projects and their memberships.
package project

import (
	"context"
	"fmt"
	"strings"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/models/perm"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/timeutil"
	"code.kanbo.io/kanbo/modules/util"

	"xorm.io/builder"
)

// Status is the lifecycle state of a project
type Status int

const (
	// StatusActive is the normal working state
	StatusActive Status = iota + 1
	// StatusArchived projects are read-only in spirit but keep all their data
	StatusArchived
	// StatusDeleted is a soft state, nothing is cascade-deleted
	StatusDeleted
)

var statusNames = map[Status]string{
	StatusActive:   "ACTIVE",
	StatusArchived: "ARCHIVED",
	StatusDeleted:  "DELETED",
}

// String returns the wire name of the status
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "ACTIVE"
}

// ParseStatus resolves a wire name back to a lifecycle status
func ParseStatus(name string) (Status, error) {
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, util.NewInvalidArgumentErrorf("unknown project status: %q", name)
}

// ErrProjectNotExist represents a "ProjectNotExist" kind of error.
type ErrProjectNotExist struct {
	ID int64
}

// IsErrProjectNotExist checks if an error is a ErrProjectNotExist
func IsErrProjectNotExist(err error) bool {
	_, ok := err.(ErrProjectNotExist)
	return ok
}

func (err ErrProjectNotExist) Error() string {
	return fmt.Sprintf("project does not exist [id: %d]", err.ID)
}

func (err ErrProjectNotExist) Unwrap() error {
	return util.ErrNotExist
}

// ErrProjectKeyAlreadyUsed represents a "ProjectKeyAlreadyUsed" kind of error.
type ErrProjectKeyAlreadyUsed struct {
	Key string
}

// IsErrProjectKeyAlreadyUsed checks if an error is a ErrProjectKeyAlreadyUsed
func IsErrProjectKeyAlreadyUsed(err error) bool {
	_, ok := err.(ErrProjectKeyAlreadyUsed)
	return ok
}

func (err ErrProjectKeyAlreadyUsed) Error() string {
	return fmt.Sprintf("project key already exists [key: %s]", err.Key)
}

func (err ErrProjectKeyAlreadyUsed) Unwrap() error {
	return util.ErrAlreadyExist
}

// Project represents a tracked project, the container of issues and memberships
type Project struct {
	ID          int64            `xorm:"pk autoincr"`
	Name        string           `xorm:"INDEX NOT NULL"`
	Key         string           `xorm:"UNIQUE NOT NULL"` // stored upper-cased
	Description string           `xorm:"TEXT"`
	OwnerID     int64            `xorm:"INDEX NOT NULL"` // immutable once set
	Owner       *user_model.User `xorm:"-"`
	Status      Status           `xorm:"INDEX NOT NULL DEFAULT 1"`
	IsPublic    bool             `xorm:"NOT NULL DEFAULT false"`

	StartDateUnix timeutil.TimeStamp
	EndDateUnix   timeutil.TimeStamp

	CreatedUnix timeutil.TimeStamp `xorm:"INDEX created"`
	UpdatedUnix timeutil.TimeStamp `xorm:"INDEX updated"`
}

func init() {
	db.RegisterModel(new(Project))
}

// LoadOwner loads the owner user record
func (p *Project) LoadOwner(ctx context.Context) (err error) {
	if p.Owner != nil {
		return nil
	}
	p.Owner, err = user_model.GetUserByID(ctx, p.OwnerID)
	return err
}

// IsActive reports whether the project is in its normal working state
func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

// IsDeleted reports whether the project was soft-deleted
func (p *Project) IsDeleted() bool {
	return p.Status == StatusDeleted
}

// NormalizeKey upper-cases a project key for storage and comparison
func NormalizeKey(key string) string {
	return strings.ToUpper(strings.TrimSpace(key))
}

// IsKeyUsed checks whether a project key is taken, case-insensitively
func IsKeyUsed(ctx context.Context, key string) (bool, error) {
	if key == "" {
		return false, nil
	}
	return db.GetEngine(ctx).Where(db.BuildCaseInsensitiveEq("`key`", key)).Exist(&Project{})
}

// NewProject creates a project and grants its creator the OWNER membership.
// Both records become visible together or not at all.
func NewProject(ctx context.Context, p *Project) error {
	if util.IsEmptyString(p.Name) {
		return util.NewInvalidArgumentErrorf("project name is empty")
	}
	p.Key = NormalizeKey(p.Key)
	if p.Key == "" {
		return util.NewInvalidArgumentErrorf("project key is empty")
	}
	if p.Status == 0 {
		p.Status = StatusActive
	}

	return db.WithTx(ctx, func(ctx context.Context) error {
		if used, err := IsKeyUsed(ctx, p.Key); err != nil {
			return err
		} else if used {
			return ErrProjectKeyAlreadyUsed{Key: p.Key}
		}

		if _, err := user_model.GetUserByID(ctx, p.OwnerID); err != nil {
			return err
		}

		if err := db.Insert(ctx, p); err != nil {
			return err
		}

		return db.Insert(ctx, &Member{
			ProjectID: p.ID,
			UserID:    p.OwnerID,
			Role:      perm.RoleOwner,
		})
	})
}

// GetProjectByID returns the project with the given id
func GetProjectByID(ctx context.Context, id int64) (*Project, error) {
	p := new(Project)
	has, err := db.GetEngine(ctx).ID(id).Get(p)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrProjectNotExist{ID: id}
	}
	return p, nil
}

// GetProjectByKey returns the project with the given key, case-insensitively
func GetProjectByKey(ctx context.Context, key string) (*Project, error) {
	p := new(Project)
	has, err := db.GetEngine(ctx).Where(db.BuildCaseInsensitiveEq("`key`", key)).Get(p)
	if err != nil {
		return nil, err
	} else if !has {
		return nil, ErrProjectNotExist{}
	}
	return p, nil
}

// UpdateProject updates the mutable project properties. Key, owner and status
// are deliberately not among them.
func UpdateProject(ctx context.Context, p *Project) error {
	_, err := db.GetEngine(ctx).ID(p.ID).Cols(
		"name",
		"description",
		"is_public",
		"start_date_unix",
		"end_date_unix",
	).Update(p)
	return err
}

// ArchiveProject moves an active project to ARCHIVED. Issues and memberships
// are untouched.
func ArchiveProject(ctx context.Context, id int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		p, err := GetProjectByID(ctx, id)
		if err != nil {
			return err
		}
		if p.Status != StatusActive {
			return util.NewInvalidOperationErrorf("project %d is not active and cannot be archived", id)
		}
		p.Status = StatusArchived
		_, err = db.GetEngine(ctx).ID(p.ID).Cols("status").Update(p)
		return err
	})
}

// DeleteProject moves a project to DELETED from any state. This is a soft
// state change, issues and memberships stay in place.
func DeleteProject(ctx context.Context, id int64) error {
	return db.WithTx(ctx, func(ctx context.Context) error {
		p, err := GetProjectByID(ctx, id)
		if err != nil {
			return err
		}
		p.Status = StatusDeleted
		_, err = db.GetEngine(ctx).ID(p.ID).Cols("status").Update(p)
		return err
	})
}

// SearchOptions are options for FindProjects
type SearchOptions struct {
	db.ListOptions
	// MemberID restricts results to projects the user is a member of
	MemberID int64
	// Keyword is matched case-insensitively against name and key
	Keyword string
	// Statuses restricts the lifecycle states, default is ACTIVE only
	Statuses []Status
	// PublicOnly lists public projects regardless of membership
	PublicOnly bool
}

func (opts *SearchOptions) toConds() builder.Cond {
	cond := builder.NewCond()
	statuses := opts.Statuses
	if len(statuses) == 0 {
		statuses = []Status{StatusActive}
	}
	cond = cond.And(builder.In("`project`.status", statuses))

	if opts.PublicOnly {
		cond = cond.And(builder.Eq{"`project`.is_public": true})
	}
	if opts.MemberID > 0 {
		cond = cond.And(builder.In("`project`.id",
			builder.Select("project_id").From("member").Where(builder.Eq{"user_id": opts.MemberID})))
	}
	if opts.Keyword != "" {
		kw := "%" + opts.Keyword + "%"
		cond = cond.And(builder.Or(
			db.BuildCaseInsensitiveLike("`project`.name", kw),
			db.BuildCaseInsensitiveLike("`project`.`key`", kw),
		))
	}
	return cond
}

// FindProjects returns projects matching the options together with the total count
func FindProjects(ctx context.Context, opts SearchOptions) ([]*Project, int64, error) {
	sess := db.GetEngine(ctx).Table("project").Where(opts.toConds()).OrderBy("`project`.created_unix DESC")
	if opts.Page > 0 {
		sess = db.SetSessionPagination(sess, &opts.ListOptions)
	}
	projects := make([]*Project, 0, 10)
	count, err := sess.FindAndCount(&projects)
	return projects, count, err
}
