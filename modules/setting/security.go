// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package setting

import (
	"gopkg.in/ini.v1"
)

// Security settings
var Security = struct {
	// JWTSecret signs the bearer tokens accepted by the identity provider.
	// Token issuance itself lives outside this server.
	JWTSecret string
}{}

func loadSecurityFrom(cfg *ini.File) {
	sec := cfg.Section("security")
	Security.JWTSecret = sec.Key("JWT_SECRET").MustString("!#@FDEWREWR&*(")
}
