// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package unittest provides the in-memory test database and fixture helpers
// used by model and service tests.
package unittest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/modules/setting"

	"xorm.io/xorm"
	"xorm.io/xorm/names"

	_ "github.com/mattn/go-sqlite3"
)

var fixturesDir string

// MainTest should be called by every TestMain in packages that hit the
// database. It creates a fresh in-memory sqlite engine, syncs all registered
// models and runs the tests.
func MainTest(m *testing.M) {
	setting.RunMode = "dev"
	setting.Database.Type = "sqlite3"

	_, filename, _, _ := runtime.Caller(0)
	fixturesDir = filepath.Join(filepath.Dir(filename), "..", "fixtures")

	if err := createTestEngine(); err != nil {
		fmt.Fprintf(os.Stderr, "creating test engine failed: %v\n", err)
		os.Exit(1)
	}

	exitStatus := m.Run()
	db.UnsetDefaultEngine()
	os.Exit(exitStatus)
}

func createTestEngine() error {
	x, err := xorm.NewEngine("sqlite3", "file::memory:?cache=shared&_txlock=immediate")
	if err != nil {
		return err
	}
	x.SetMapper(names.GonicMapper{})
	// sqlite shared-cache memory db disappears when the last connection closes
	x.DB().SetMaxOpenConns(1)
	x.DB().SetMaxIdleConns(1)

	db.SetDefaultEngine(context.Background(), x)
	if err := db.SyncAllTables(); err != nil {
		return err
	}
	return InitFixtures(fixturesDir)
}

// PrepareTestDatabase resets all fixture tables to their fixture content.
// Every test touching the database starts with this call.
func PrepareTestDatabase() error {
	return LoadFixtures()
}
