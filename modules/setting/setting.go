// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package setting holds the global configuration loaded from app.ini.
package setting

import (
	"os"

	"code.kanbo.io/kanbo/modules/log"

	"gopkg.in/ini.v1"
)

// AppVer is the version of the current build, set at build time
var AppVer = "dev"

var (
	// AppName is the application name shown in logs and responses
	AppName string
	// RunMode is either "dev" or "prod"
	RunMode string
	// CustomConf is the path of the loaded configuration file
	CustomConf string
)

// IsProd reports whether the server runs in production mode
func IsProd() bool {
	return RunMode == "prod"
}

// CfgProvider is the loaded ini file, nil until Init is called
var CfgProvider *ini.File

// Init loads the configuration file and all sections. A missing file is not
// an error, every option has a default.
func Init(customConf string) {
	CustomConf = customConf

	var err error
	if customConf != "" {
		if _, statErr := os.Stat(customConf); statErr == nil {
			CfgProvider, err = ini.Load(customConf)
			if err != nil {
				log.Fatal("Failed to load config file %q: %v", customConf, err)
			}
		}
	}
	if CfgProvider == nil {
		CfgProvider = ini.Empty()
	}

	sec := CfgProvider.Section("")
	AppName = sec.Key("APP_NAME").MustString("Kanbo")
	RunMode = sec.Key("RUN_MODE").MustString("prod")

	loadServerFrom(CfgProvider)
	loadDatabaseFrom(CfgProvider)
	loadLogFrom(CfgProvider)
	loadSecurityFrom(CfgProvider)
}
