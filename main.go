// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Kanbo is a self-hosted project tracker with kanban boards,
// one level of subtasks and role-based project membership.
package main // import "code.kanbo.io/kanbo"

import (
	"os"

	"code.kanbo.io/kanbo/cmd"
	"code.kanbo.io/kanbo/modules/log"
	"code.kanbo.io/kanbo/modules/setting"
)

// Version holds the current Kanbo version, set at build time with -ldflags
var Version = "development"

func main() {
	setting.AppVer = Version
	app := cmd.NewMainApp(Version)
	if err := app.Run(os.Args); err != nil {
		log.Fatal("Failed to run app with %s: %v", os.Args, err)
	}
}
