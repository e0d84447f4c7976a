// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package notify dispatches board events to registered notifiers.
// Delivery is fire-and-forget: a failing notifier never fails the operation.
package notify

import (
	"context"

	issues_model "code.kanbo.io/kanbo/models/issues"
	user_model "code.kanbo.io/kanbo/models/user"
)

// Notifier is notified on board events
type Notifier interface {
	IssueAssigned(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, assignee *user_model.User)
	IssueStatusChanged(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.Status)
}

var notifiers []Notifier

// RegisterNotifier adds a notifier to the dispatch list
func RegisterNotifier(notifier Notifier) {
	notifiers = append(notifiers, notifier)
}

// IssueAssigned notifies that an issue got an assignee
func IssueAssigned(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, assignee *user_model.User) {
	for _, notifier := range notifiers {
		notifier.IssueAssigned(ctx, doer, issue, assignee)
	}
}

// IssueStatusChanged notifies that an issue moved to another column
func IssueStatusChanged(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.Status) {
	for _, notifier := range notifiers {
		notifier.IssueStatusChanged(ctx, doer, issue, oldStatus)
	}
}
