// Copyright 2024 The Kanbo Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package notify

import (
	"context"

	issues_model "code.kanbo.io/kanbo/models/issues"
	user_model "code.kanbo.io/kanbo/models/user"
	"code.kanbo.io/kanbo/modules/log"
)

// logNotifier writes board events to the application log, the default sink
type logNotifier struct {
	NullNotifier
}

// NewLogNotifier creates the log backed notifier
func NewLogNotifier() Notifier {
	return &logNotifier{}
}

func (*logNotifier) IssueAssigned(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, assignee *user_model.User) {
	log.Info("issue[%d] %q assigned to %s by %s", issue.ID, issue.Title, assignee.Name, doer.Name)
}

func (*logNotifier) IssueStatusChanged(ctx context.Context, doer *user_model.User, issue *issues_model.Issue, oldStatus issues_model.Status) {
	log.Info("issue[%d] %q moved %s -> %s by %s", issue.ID, issue.Title, oldStatus, issue.Status, doer.Name)
}
