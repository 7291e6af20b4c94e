// Package notify provides notification services for glflow workflow events.
//
// Core types:
//   - Notifier: Interface for sending notifications
//   - Event: Notification event with type, message, and metadata
//   - EventType: Type of event (run started, MR created, branch rebased, etc.)
//
// Implementations:
//   - SlackNotifier: Sends notifications to Slack webhooks
//   - WebhookNotifier: Sends notifications to generic webhooks
//   - LogNotifier: Logs notifications (for testing/debugging)
//   - MultiNotifier: Combines multiple notifiers
//   - NopNotifier: No-op notifier (for testing)
//
// Example usage:
//
//	notifier := notify.NewSlackNotifier(webhookURL,
//	    notify.WithSlackChannel("#gitlab-automation"),
//	    notify.WithSlackUsername("glflow-bot"),
//	)
//	err := notifier.Notify(ctx, notify.Event{
//	    Type:    notify.EventMRCreated,
//	    Message: "Created MR !42",
//	})
package notify
