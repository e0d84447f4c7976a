// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package project

import (
	"testing"

	"code.kanbo.io/kanbo/models/unittest"

	_ "code.kanbo.io/kanbo/models/issues"
)

func TestMain(m *testing.M) {
	unittest.MainTest(m)
}
