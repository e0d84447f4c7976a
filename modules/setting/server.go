// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// Server settings
var Server = struct {
	HTTPAddr string
	HTTPPort string
	AppURL   string
}{}

func loadServerFrom(cfg *ini.File) {
	sec := cfg.Section("server")
	Server.HTTPAddr = sec.Key("HTTP_ADDR").MustString("0.0.0.0")
	Server.HTTPPort = sec.Key("HTTP_PORT").MustString("3000")
	Server.AppURL = sec.Key("ROOT_URL").MustString(fmt.Sprintf("http://localhost:%s/", Server.HTTPPort))
}
