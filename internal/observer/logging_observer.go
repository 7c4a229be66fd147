package observer

import (
	"context"

	"github.com/sirupsen/logrus"
)

// LoggingObserver logs pipeline events
type LoggingObserver struct {
	logger *logrus.Logger
}

func NewLoggingObserver(logger *logrus.Logger) Observer {
	return &LoggingObserver{logger: logger}
}

func (o *LoggingObserver) OnEvent(ctx context.Context, event PipelineEvent) {
	fields := logrus.Fields{
		"event_type":         event.EventType,
		"subject":            event.Subject,
		"processing_time_ms": event.ProcessingTime.Milliseconds(),
		"success":            event.Success,
	}
	if event.ErrorMessage != "" {
		fields["error"] = event.ErrorMessage
	}
	for k, v := range event.Metadata {
		fields[k] = v
	}

	entry := o.logger.WithFields(fields)
	switch event.EventType {
	case LookupStarted, GenerationStarted:
		entry.Debug("Pipeline started")
	case LookupCompleted:
		entry.Info("Patent lookup completed")
	case LookupNotFound:
		entry.Warn("Patent not found")
	case PageFetchFailed:
		entry.Error("Patent page fetch failed")
	case GenerationComplete:
		entry.Info("Image description completed")
	case GenerationFailed:
		entry.Error("Image description failed")
	default:
		entry.Info("Pipeline event occurred")
	}
}

func (o *LoggingObserver) GetObserverName() string {
	return "logging_observer"
}
