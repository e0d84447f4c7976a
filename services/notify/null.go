// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package notify

import (
	"context"

	issues_model "code.kanbo.io/kanbo/models/issues"
	user_model "code.kanbo.io/kanbo/models/user"
)

// NullNotifier implements a blank Notifier for embedding
type NullNotifier struct{}

var _ Notifier = (*NullNotifier)(nil)

// IssueAssigned places a place holder function
func (*NullNotifier) IssueAssigned(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, assignee *user_model.User) {
}

// IssueStatusChanged places a place holder function
func (*NullNotifier) IssueStatusChanged(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.Status) {
}
