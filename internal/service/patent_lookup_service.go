package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "go-patent-vision/internal/errors"
	"go-patent-vision/internal/extractor"
	"go-patent-vision/internal/logger"
	"go-patent-vision/internal/observer"
	"go-patent-vision/internal/repository"
	"go-patent-vision/internal/search"
	"go-patent-vision/pkg/models"

	"github.com/sirupsen/logrus"
)

// MsgEnterIdentifier is shown when the lookup form is submitted empty.
const MsgEnterIdentifier = "please enter an identifier"

// PatentLookupService runs the search, fetch and extract pipeline.
type PatentLookupService interface {
	Lookup(ctx context.Context, patentID string) (*models.LookupResult, error)
}

// LookupTimeouts bounds the outbound calls of one lookup.
type LookupTimeouts struct {
	Search time.Duration
	Fetch  time.Duration
}

type patentLookupService struct {
	searcher  search.PatentSearcher
	pages     repository.PatentPageRepository
	extractor extractor.FieldExtractor
	events    observer.Subject
	timeouts  LookupTimeouts
}

func NewPatentLookupService(
	searcher search.PatentSearcher,
	pages repository.PatentPageRepository,
	fx extractor.FieldExtractor,
	events observer.Subject,
	timeouts LookupTimeouts,
) PatentLookupService {
	if events == nil {
		events = observer.Nop{}
	}
	return &patentLookupService{
		searcher:  searcher,
		pages:     pages,
		extractor: fx,
		events:    events,
		timeouts:  timeouts,
	}
}

// Lookup never returns an error for provider or page failures; those are
// reported through the result status and messages. Only invalid input
// produces an error.
func (s *patentLookupService) Lookup(ctx context.Context, patentID string) (*models.LookupResult, error) {
	patentID = strings.TrimSpace(patentID)
	if patentID == "" {
		return nil, apperrors.NewValidationError(MsgEnterIdentifier, nil)
	}

	start := time.Now()
	s.events.NotifyObservers(ctx, observer.PipelineEvent{EventType: observer.LookupStarted, Subject: patentID})

	searchCtx, cancel := withTimeout(ctx, s.timeouts.Search)
	link, ok, err := s.searcher.FirstResultURL(searchCtx, patentID)
	cancel()
	if err != nil {
		logger.WithError(err).WithField("patent_id", patentID).Warn("Patent search failed")
		return s.notFound(ctx, patentID, start, err), nil
	}
	if !ok {
		return s.notFound(ctx, patentID, start, nil), nil
	}

	record, err := s.fetchRecord(ctx, link)
	if err != nil {
		s.events.NotifyObservers(ctx, observer.PipelineEvent{
			EventType:      observer.PageFetchFailed,
			Subject:        patentID,
			ProcessingTime: time.Since(start),
			ErrorMessage:   err.Error(),
			Metadata:       map[string]interface{}{"url": link},
		})
		return &models.LookupResult{
			PatentID: patentID,
			Status:   models.LookupFetchFailed,
			URL:      link,
			Messages: []models.StatusMessage{
				models.Error(fmt.Sprintf("Error fetching and parsing patent webpage: %v", err)),
			},
		}, nil
	}

	s.events.NotifyObservers(ctx, observer.PipelineEvent{
		EventType:      observer.LookupCompleted,
		Subject:        patentID,
		ProcessingTime: time.Since(start),
		Success:        true,
		Metadata: map[string]interface{}{
			"url":          link,
			"has_title":    record.Title != nil,
			"has_inventor": record.Inventors != nil,
			"has_assignee": record.Assignee != nil,
		},
	})
	return &models.LookupResult{
		PatentID: patentID,
		Status:   models.LookupFound,
		URL:      link,
		Record:   record,
		Messages: []models.StatusMessage{
			models.Success(fmt.Sprintf("Patent ID '%s' Found!", patentID)),
		},
	}, nil
}

func (s *patentLookupService) fetchRecord(ctx context.Context, link string) (*models.PatentRecord, error) {
	fetchCtx, cancel := withTimeout(ctx, s.timeouts.Fetch)
	defer cancel()

	logger.WithFields(logrus.Fields{"url": link}).Debug("Fetching patent page")
	body, err := s.pages.FetchPage(fetchCtx, link)
	if err != nil {
		return nil, err
	}
	doc, err := s.extractor.Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	record := extractor.Extract(s.extractor, doc)
	return &record, nil
}

func (s *patentLookupService) notFound(ctx context.Context, patentID string, start time.Time, searchErr error) *models.LookupResult {
	event := observer.PipelineEvent{
		EventType:      observer.LookupNotFound,
		Subject:        patentID,
		ProcessingTime: time.Since(start),
	}
	messages := []models.StatusMessage{
		models.Warning(fmt.Sprintf("Patent ID '%s' not found on Google Patents.", patentID)),
	}
	if searchErr != nil {
		event.ErrorMessage = searchErr.Error()
		messages = append(messages, models.Warning(fmt.Sprintf("Patent search is unavailable: %v", searchErr)))
	}
	s.events.NotifyObservers(ctx, event)

	return &models.LookupResult{
		PatentID: patentID,
		Status:   models.LookupNotFound,
		Messages: messages,
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
