// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"code.kanbo.io/kanbo/modules/log"

	"gopkg.in/ini.v1"
)

// Log settings
var Log = struct {
	Level log.Level
}{}

func loadLogFrom(cfg *ini.File) {
	sec := cfg.Section("log")
	Log.Level = log.LevelFromString(sec.Key("LEVEL").MustString("info"))
	log.SetLevel(Log.Level)
}
