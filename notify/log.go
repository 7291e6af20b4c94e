package notify

import (
	"context"

	"go.uber.org/zap"

	"github.com/glflowdev/glflow/log"
)

// =============================================================================
// LogNotifier
// =============================================================================

// LogNotifier logs notifications using zap (for testing/debugging).
type LogNotifier struct {
	Logger *zap.SugaredLogger
}

// NewLogNotifier creates a notifier that logs to the given logger.
// If logger is nil, uses the process-wide glflow logger.
func NewLogNotifier(logger *zap.SugaredLogger) *LogNotifier {
	if logger == nil {
		logger = log.Get()
	}
	return &LogNotifier{Logger: logger}
}

// Notify implements Notifier.
func (n *LogNotifier) Notify(ctx context.Context, event Event) error {
	fields := []any{
		"type", event.Type,
		"run_id", event.RunID,
		"workflow", event.Workflow,
		"branch", event.Branch,
		"metadata", event.Metadata,
	}

	switch event.Severity {
	case SeverityWarning:
		n.Logger.Warnw(event.Message, fields...)
	case SeverityError:
		n.Logger.Errorw(event.Message, fields...)
	default:
		n.Logger.Infow(event.Message, fields...)
	}
	return nil
}
