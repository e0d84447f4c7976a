// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"strings"

	"code.kanbo.io/kanbo/modules/setting"
	"code.kanbo.io/kanbo/modules/util"

	"xorm.io/builder"
)

// BuildCaseInsensitiveLike returns a condition to check if the given value is like the given key case-insensitively.
// Handles especially SQLite correctly as UPPER there only transforms ASCII letters.
func BuildCaseInsensitiveLike(key, value string) builder.Cond {
	if setting.Database.Type.IsSQLite3() {
		return builder.Expr(key+" LIKE ? COLLATE NOCASE", value)
	}
	if setting.Database.Type.IsPostgreSQL() {
		return builder.Expr(key+" ILIKE ?", value)
	}
	return builder.Like{"LOWER(" + key + ")", strings.ToLower(value)}
}

// BuildCaseInsensitiveEq returns a condition to check if the given value equals the given key case-insensitively
func BuildCaseInsensitiveEq(key, value string) builder.Cond {
	transform := strings.ToUpper
	if setting.Database.Type.IsSQLite3() {
		transform = util.ToUpperASCII
	}
	return builder.Eq{"UPPER(" + key + ")": transform(value)}
}
