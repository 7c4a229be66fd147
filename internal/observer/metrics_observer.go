package observer

import (
	"context"
	"sync"
	"time"
)

// Snapshot is a point-in-time copy of the collected counters.
type Snapshot struct {
	Lookups             int64   `json:"lookups"`
	LookupsFound        int64   `json:"lookups_found"`
	LookupsNotFound     int64   `json:"lookups_not_found"`
	PageFetchFailures   int64   `json:"page_fetch_failures"`
	Generations         int64   `json:"generations"`
	GenerationFailures  int64   `json:"generation_failures"`
	AvgLookupMillis     float64 `json:"avg_lookup_ms"`
	AvgGenerationMillis float64 `json:"avg_generation_ms"`
}

// MetricsObserver counts pipeline outcomes.
type MetricsObserver struct {
	mu                 sync.RWMutex
	lookups            int64
	found              int64
	notFound           int64
	fetchFailures      int64
	generations        int64
	generationFailures int64
	lookupTime         time.Duration
	generationTime     time.Duration
}

func NewMetricsObserver() *MetricsObserver {
	return &MetricsObserver{}
}

func (o *MetricsObserver) OnEvent(ctx context.Context, event PipelineEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()

	switch event.EventType {
	case LookupStarted:
		o.lookups++
	case LookupCompleted:
		o.found++
		o.lookupTime += event.ProcessingTime
	case LookupNotFound:
		o.notFound++
	case PageFetchFailed:
		o.fetchFailures++
	case GenerationStarted:
		o.generations++
	case GenerationComplete:
		o.generationTime += event.ProcessingTime
	case GenerationFailed:
		o.generationFailures++
	}
}

func (o *MetricsObserver) GetObserverName() string {
	return "metrics_observer"
}

func (o *MetricsObserver) Snapshot() Snapshot {
	o.mu.RLock()
	defer o.mu.RUnlock()

	s := Snapshot{
		Lookups:            o.lookups,
		LookupsFound:       o.found,
		LookupsNotFound:    o.notFound,
		PageFetchFailures:  o.fetchFailures,
		Generations:        o.generations,
		GenerationFailures: o.generationFailures,
	}
	if o.found > 0 {
		s.AvgLookupMillis = float64(o.lookupTime.Milliseconds()) / float64(o.found)
	}
	if ok := o.generations - o.generationFailures; ok > 0 {
		s.AvgGenerationMillis = float64(o.generationTime.Milliseconds()) / float64(ok)
	}
	return s
}
