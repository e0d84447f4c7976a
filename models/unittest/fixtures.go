// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package unittest

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"code.kanbo.io/kanbo/models/db"

	"gopkg.in/yaml.v3"
)

type fixtureFile struct {
	table string
	rows  []map[string]any
}

var fixtureFiles []*fixtureFile

// InitFixtures reads all fixture files from the given directory. A fixture
// file is named after its table ("issue.yml") and holds a yaml list of rows.
func InitFixtures(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading fixtures dir %q: %w", dir, err)
	}

	fixtureFiles = nil
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yml") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		var rows []map[string]any
		if err := yaml.Unmarshal(data, &rows); err != nil {
			return fmt.Errorf("unmarshalling fixture %q: %w", name, err)
		}
		fixtureFiles = append(fixtureFiles, &fixtureFile{
			table: strings.TrimSuffix(name, ".yml"),
			rows:  rows,
		})
	}
	sort.Slice(fixtureFiles, func(i, j int) bool { return fixtureFiles[i].table < fixtureFiles[j].table })
	return nil
}

// LoadFixtures empties every fixture table and re-inserts the fixture rows
func LoadFixtures() error {
	e := db.GetEngine(db.DefaultContext)
	for _, f := range fixtureFiles {
		if _, err := e.Exec(fmt.Sprintf("DELETE FROM `%s`", f.table)); err != nil {
			return fmt.Errorf("emptying table %q: %w", f.table, err)
		}
		for _, row := range f.rows {
			cols := make([]string, 0, len(row))
			for col := range row {
				cols = append(cols, col)
			}
			sort.Strings(cols)

			placeholders := make([]string, 0, len(cols))
			args := make([]any, 0, len(cols)+1)
			quoted := make([]string, 0, len(cols))
			for _, col := range cols {
				quoted = append(quoted, "`"+col+"`")
				placeholders = append(placeholders, "?")
				args = append(args, row[col])
			}
			query := fmt.Sprintf("INSERT INTO `%s` (%s) VALUES (%s)",
				f.table, strings.Join(quoted, ", "), strings.Join(placeholders, ", "))
			if _, err := e.Exec(append([]any{query}, args...)...); err != nil {
				return fmt.Errorf("inserting fixture row into %q: %w", f.table, err)
			}
		}
	}
	return nil
}
