// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package db

import (
	"errors"
)

var (
	// ErrAlreadyInTransaction is returned when a nested transaction is requested
	ErrAlreadyInTransaction = errors.New("database connection has already been in a transaction")

	// ErrDatabaseNotInitialized is returned when the engine is used before InitEngine
	ErrDatabaseNotInitialized = errors.New("database is not initialized")
)
