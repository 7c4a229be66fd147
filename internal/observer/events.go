package observer

import (
	"context"
	"time"
)

// EventType represents the type of pipeline event
type EventType string

const (
	LookupStarted      EventType = "lookup_started"
	LookupCompleted    EventType = "lookup_completed"
	LookupNotFound     EventType = "lookup_not_found"
	PageFetchFailed    EventType = "page_fetch_failed"
	GenerationStarted  EventType = "generation_started"
	GenerationComplete EventType = "generation_completed"
	GenerationFailed   EventType = "generation_failed"
)

// PipelineEvent describes one step of a lookup or description request.
type PipelineEvent struct {
	EventType      EventType              `json:"event_type"`
	Timestamp      time.Time              `json:"timestamp"`
	Subject        string                 `json:"subject"`
	ProcessingTime time.Duration          `json:"processing_time"`
	Success        bool                   `json:"success"`
	ErrorMessage   string                 `json:"error_message,omitempty"`
	Metadata       map[string]interface{} `json:"metadata,omitempty"`
}

// Observer defines the interface for event observers
type Observer interface {
	OnEvent(ctx context.Context, event PipelineEvent)
	GetObserverName() string
}

// Subject defines the interface for event publishers
type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	NotifyObservers(ctx context.Context, event PipelineEvent)
}
