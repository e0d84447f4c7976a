// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package routers

import (
	"context"

	"code.kanbo.io/kanbo/models/db"
	"code.kanbo.io/kanbo/modules/log"
	"code.kanbo.io/kanbo/modules/setting"
	"code.kanbo.io/kanbo/modules/web"
	apiv1 "code.kanbo.io/kanbo/routers/api/v1"
	"code.kanbo.io/kanbo/services/auth"
	"code.kanbo.io/kanbo/services/notify"
)

// InitWebInstalled initializes the global state the web routes depend on:
// the database engine, the identity provider and the notifier chain.
func InitWebInstalled(ctx context.Context) {
	if err := db.InitEngine(ctx); err != nil {
		log.Fatal("Failed to initialize database engine: %v", err)
	}
	log.Info("Database connected (%s)", setting.Database.Type)

	auth.Init(auth.NewBearer(setting.Security.JWTSecret))
	notify.RegisterNotifier(notify.NewLogNotifier())
}

// NormalRoutes mounts all route trees of the server
func NormalRoutes() *web.Router {
	r := web.NewRouter()
	r.Mount("/api/v1", apiv1.Routes())
	return r
}
