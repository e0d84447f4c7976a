// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"code.kanbo.io/kanbo/modules/log"
	"code.kanbo.io/kanbo/modules/setting"
	"code.kanbo.io/kanbo/routers"

	"github.com/urfave/cli/v2"
)

// CmdWeb starts the web server
var CmdWeb = &cli.Command{
	Name:  "web",
	Usage: "Start the web server",
	Description: `The web server is the only command most deployments need:
it serves the REST API on the configured address.`,
	Action: runWeb,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Temporary port number to prevent conflict",
		},
	},
}

func runWeb(c *cli.Context) error {
	setting.Init(c.String("config"))
	log.Info("%s version %s starting", setting.AppName, setting.AppVer)

	routers.InitWebInstalled(c.Context)

	if c.IsSet("port") {
		setting.Server.HTTPPort = c.String("port")
	}

	addr := net.JoinHostPort(setting.Server.HTTPAddr, setting.Server.HTTPPort)
	server := &http.Server{
		Addr:    addr,
		Handler: routers.NormalRoutes(),
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-shutdown
		log.Info("Shutting down")
		_ = server.Shutdown(c.Context)
	}()

	log.Info("Listen: http://%s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal("Failed to start server: %v", err)
	}
	return nil
}
