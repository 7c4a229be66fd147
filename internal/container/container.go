package container

import (
	"net/http"

	"go-patent-vision/internal/config"
	"go-patent-vision/internal/extractor"
	"go-patent-vision/internal/generation"
	"go-patent-vision/internal/logger"
	"go-patent-vision/internal/observer"
	"go-patent-vision/internal/repository"
	"go-patent-vision/internal/search"
	"go-patent-vision/internal/service"
	"go-patent-vision/internal/storage"
	"go-patent-vision/internal/transport"
	"go-patent-vision/pkg/validation"
)

// Container holds all application dependencies
type Container struct {
	config          *config.Config
	events          *observer.EventPublisher
	metrics         *observer.MetricsObserver
	generator       *generation.GeminiGenerator
	lookupService   service.PatentLookupService
	describeService service.ImageDescriptionService
	handler         http.Handler
}

// NewContainer builds the dependency graph from cfg.
func NewContainer(cfg *config.Config) (*Container, error) {
	events := observer.NewEventPublisher()
	metrics := observer.NewMetricsObserver()
	events.Subscribe(observer.NewLoggingObserver(logger.Logger))
	events.Subscribe(metrics)

	searcher := search.NewSerpAPIClient(search.Options{
		APIKey:   cfg.SerpAPIKey,
		BaseURL:  cfg.SerpAPIBaseURL,
		Language: cfg.SearchLanguage,
		Timeout:  cfg.SearchTimeout,
	})
	pages := repository.NewHTTPPatentPageRepository(
		storage.NewHTTPPageFetcher(cfg.PageFetchTimeout, cfg.MaxPageSize),
		validation.NewURLValidatorWithOptions(nil, cfg.PageAllowedHosts),
	)
	fx := extractor.NewSelectorExtractor(extractor.Selectors{
		Title:             cfg.Selectors.Title,
		InventorsList:     cfg.Selectors.InventorsList,
		InventorItem:      cfg.Selectors.InventorItem,
		AssigneeContainer: cfg.Selectors.AssigneeContainer,
		AssigneeName:      cfg.Selectors.AssigneeName,
	})
	lookupService := service.NewPatentLookupService(searcher, pages, fx, events, service.LookupTimeouts{
		Search: cfg.SearchTimeout,
		Fetch:  cfg.PageFetchTimeout,
	})

	generator := generation.NewGeminiGenerator(cfg.GoogleAPIKey, cfg.GeminiModel)
	describeService := service.NewImageDescriptionService(
		generator,
		validation.NewImageValidator(cfg.MaxImageSize),
		events,
		cfg.GenerationTimeout,
	)

	handler := transport.NewHandler(lookupService, describeService, metrics, cfg)

	return &Container{
		config:          cfg,
		events:          events,
		metrics:         metrics,
		generator:       generator,
		lookupService:   lookupService,
		describeService: describeService,
		handler:         handler,
	}, nil
}

// Handler returns the HTTP handler
func (c *Container) Handler() http.Handler {
	return c.handler
}

// Config returns the configuration
func (c *Container) Config() *config.Config {
	return c.config
}

func (c *Container) PatentLookupService() service.PatentLookupService {
	return c.lookupService
}

func (c *Container) ImageDescriptionService() service.ImageDescriptionService {
	return c.describeService
}

// Close releases provider clients.
func (c *Container) Close() error {
	return c.generator.Close()
}
