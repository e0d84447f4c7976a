// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package convert

import (
	"testing"

	"code.kanbo.io/kanbo/models/unittest"
)

func TestMain(m *testing.M) {
	unittest.MainTest(m)
}
