// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	"code.kanbo.io/kanbo/models/db"

	"github.com/stretchr/testify/assert"
	"xorm.io/xorm"
)

// Cond create a condition with arguments for a test query
func Cond(query any, args ...any) any {
	return &condition{query: query, args: args}
}

type condition struct {
	query any
	args  []any
}

func whereOrderConditions(sess *xorm.Session, conditions []any) *xorm.Session {
	for _, cond := range conditions {
		switch c := cond.(type) {
		case *condition:
			sess = sess.Where(c.query, c.args...)
		default:
			sess = sess.Where(cond)
		}
	}
	return sess
}

func loadBeanIfExists(bean any, conditions ...any) (bool, error) {
	e := db.GetEngine(db.DefaultContext)
	sess, ok := e.(*xorm.Engine)
	if ok {
		return whereOrderConditions(sess.NewSession(), conditions).Get(bean)
	}
	return whereOrderConditions(e.Table(bean), conditions).Get(bean)
}

// AssertExistsAndLoadBean assert that a bean exists and load it from the test database
func AssertExistsAndLoadBean[T any](t assert.TestingT, bean T, conditions ...any) T {
	exists, err := loadBeanIfExists(bean, conditions...)
	assert.NoError(t, err)
	assert.True(t, exists,
		"Expected to find %+v (of type %T, with conditions %+v), but did not",
		bean, bean, conditions)
	return bean
}

// AssertNotExistsBean assert that a bean does not exist in the test database
func AssertNotExistsBean(t assert.TestingT, bean any, conditions ...any) {
	exists, err := loadBeanIfExists(bean, conditions...)
	assert.NoError(t, err)
	assert.False(t, exists)
}

// GetCount get the count of a bean
func GetCount(t assert.TestingT, bean any, conditions ...any) int {
	e := db.GetEngine(db.DefaultContext)
	count, err := whereOrderConditions(e.Table(bean), conditions).Count(bean)
	assert.NoError(t, err)
	return int(count)
}

// AssertCount assert the count of a bean
func AssertCount(t assert.TestingT, bean any, expected int) {
	assert.EqualValues(t, expected, GetCount(t, bean))
}
