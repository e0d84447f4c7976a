// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"xorm.io/xorm"
)

const (
	// DefaultMaxInSize represents default variables number on IN () in SQL
	DefaultMaxInSize = 50
	// DefaultPageSize is used when a caller does not specify a page size
	DefaultPageSize = 20
	// MaxPageSize caps caller-supplied page sizes
	MaxPageSize = 100
)

// ListOptions options to paginate results
type ListOptions struct {
	Page     int // start from 1
	PageSize int
}

// GetSkipTake returns the skip and take values for the xorm Limit call
func (opts *ListOptions) GetSkipTake() (skip, take int) {
	opts.SetDefaultValues()
	return (opts.Page - 1) * opts.PageSize, opts.PageSize
}

// SetDefaultValues sets default values
func (opts *ListOptions) SetDefaultValues() {
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.PageSize > MaxPageSize {
		opts.PageSize = MaxPageSize
	}
	if opts.Page <= 0 {
		opts.Page = 1
	}
}

// SetSessionPagination sets pagination for a xorm session
func SetSessionPagination(sess *xorm.Session, opts *ListOptions) *xorm.Session {
	skip, take := opts.GetSkipTake()
	return sess.Limit(take, skip)
}
