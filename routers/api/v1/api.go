// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package v1 registers the REST routes under /api/v1.
package v1

import (
	"fmt"
	"net/http"

	"code.kanbo.io/kanbo/modules/log"
	api "code.kanbo.io/kanbo/modules/structs"
	"code.kanbo.io/kanbo/modules/web"
	web_types "code.kanbo.io/kanbo/modules/web/types"
	"code.kanbo.io/kanbo/services/auth"
	"code.kanbo.io/kanbo/services/context"

	"gitea.com/go-chi/binding"
	"github.com/go-chi/cors"
)

func init() {
	web.RegisterResponseStatusProvider[context.APIContext](func(req *http.Request) web_types.ResponseStatusProvider {
		return context.GetAPIContext(req)
	})
}

// bind binds the request body to the given form type and stores it for the handler
func bind[T any](_ T) any {
	return func(ctx *context.APIContext) {
		theObj := new(T)
		errs := binding.Bind(ctx.Req, theObj)
		if len(errs) > 0 {
			ctx.Error(http.StatusBadRequest, fmt.Errorf("%s: %s", errs[0].FieldNames, errs[0].Classification))
			return
		}
		web.SetForm(ctx, theObj)
	}
}

// authenticate resolves the caller identity. A bad credential ends the
// request, a missing one leaves the request anonymous.
func authenticate(ctx *context.APIContext) {
	doer, err := auth.ResolveCaller(ctx, ctx.Req)
	if err != nil {
		ctx.Error(http.StatusUnauthorized, err)
		return
	}
	ctx.Doer = doer
}

// reqToken rejects anonymous requests
func reqToken(ctx *context.APIContext) {
	if ctx.Doer == nil {
		ctx.Error(http.StatusUnauthorized, "token required")
	}
}

// Routes registers all API v1 routes
func Routes() *web.Router {
	m := web.NewRouter()

	m.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:         600,
	}))
	m.Use(context.APIContexter())
	m.Use(authenticate)

	m.Group("", func() {
		m.Group("/projects", func() {
			m.Get("", reqToken, ListProjects)
			m.Post("", reqToken, bind(api.CreateProjectOption{}), CreateProject)
			m.Get("/public", ListPublicProjects)
			m.Group("/{id}", func() {
				m.Get("", GetProject)
				m.Put("", reqToken, bind(api.EditProjectOption{}), EditProject)
				m.Put("/archive", reqToken, ArchiveProject)
				m.Delete("", reqToken, DeleteProject)
				m.Group("/members", func() {
					m.Get("", ListMembers)
					m.Post("", reqToken, bind(api.AddMemberOption{}), AddMember)
					m.Group("/{userId}", func() {
						m.Delete("", reqToken, RemoveMember)
						m.Put("/role", reqToken, bind(api.EditMemberRoleOption{}), EditMemberRole)
					})
				})
			})
		})

		m.Group("/issues", func() {
			m.Post("", reqToken, bind(api.CreateIssueOption{}), CreateIssue)
			m.Get("/upcoming", reqToken, UpcomingIssues)
			m.Group("/project/{id}", func() {
				m.Get("", ListIssues)
				m.Get("/kanban", Kanban)
				m.Put("/reorder", reqToken, bind(api.ReorderOption{}), ReorderIssues)
			})
			m.Group("/{id}", func() {
				m.Get("", GetIssue)
				m.Put("", reqToken, bind(api.EditIssueOption{}), EditIssue)
				m.Delete("", reqToken, DeleteIssue)
				m.Put("/status", reqToken, bind(api.ChangeStatusOption{}), ChangeIssueStatus)
				m.Put("/assign", reqToken, bind(api.AssignIssueOption{}), AssignIssue)
				m.Group("/subtasks", func() {
					m.Get("", ListSubtasks)
					m.Post("", reqToken, bind(api.CreateSubtaskOption{}), CreateSubtask)
				})
			})
		})
	})

	m.NotFound(func(resp http.ResponseWriter, req *http.Request) {
		resp.Header().Set("Content-Type", "application/json;charset=utf-8")
		resp.WriteHeader(http.StatusNotFound)
		if _, err := resp.Write([]byte(`{"message":"not found"}`)); err != nil {
			log.Error("writing 404 response: %v", err)
		}
	})

	return m
}
