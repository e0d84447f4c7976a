// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"github.com/urfave/cli/v2"
)

func appGlobalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Value:   "custom/conf/app.ini",
			Usage:   "Set custom config file",
		},
	}
}

// NewMainApp creates the cli application with all subcommands
func NewMainApp(version string) *cli.App {
	app := cli.NewApp()
	app.Name = "kanbo"
	app.Usage = "A self-hosted project tracker"
	app.Description = `Kanbo contains "web" and other subcommands. If no subcommand is given, it starts the web server by default.`
	app.Version = version
	app.Flags = appGlobalFlags()
	app.DefaultCommand = CmdWeb.Name
	app.Commands = []*cli.Command{
		CmdWeb,
	}
	return app
}
