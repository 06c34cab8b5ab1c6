package config

import (
	"pdf-upload-server/internal/domain"
	"pdf-upload-server/internal/repository"
	"pdf-upload-server/internal/service"
	"pdf-upload-server/pkg/logger"
)

// Container holds all application dependencies
type Container struct {
	Config               domain.Config
	Logger               domain.Logger
	SupabaseClient       domain.SupabaseClient
	ExtractionRepository domain.ExtractionRepository
	UploadService        domain.UploadService
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	config := NewConfig()
	appLogger := logger.NewLogger(config.GetLogLevel())

	// Persistence is optional: without Supabase credentials the service
	// extracts text but stores nothing.
	var supabaseClient domain.SupabaseClient
	var extractionRepo domain.ExtractionRepository
	if config.GetSupabaseURL() != "" && config.GetSupabaseKey() != "" {
		supabaseClient = repository.NewSupabaseClient(config, appLogger)
		if err := supabaseClient.Initialize(); err != nil {
			appLogger.Error("Failed to initialize Supabase client, persistence disabled", err)
			supabaseClient = nil
		} else {
			extractionRepo = repository.NewSupabaseExtractionRepository(supabaseClient, config.GetExtractionsTable(), appLogger)
		}
	}

	tempStore := service.NewTempStore(config.GetTempPath(), appLogger)
	ingestor := service.NewIngestor(tempStore, config.GetMaxFileSize(), appLogger)
	extractor := service.NewPDFExtractor(appLogger)
	uploadService := service.NewUploadService(ingestor, tempStore, extractor, extractionRepo, appLogger)

	return &Container{
		Config:               config,
		Logger:               appLogger,
		SupabaseClient:       supabaseClient,
		ExtractionRepository: extractionRepo,
		UploadService:        uploadService,
	}
}

// GetConfig returns the configuration instance
func (c *Container) GetConfig() domain.Config {
	return c.Config
}

// GetLogger returns the logger instance
func (c *Container) GetLogger() domain.Logger {
	return c.Logger
}

// GetUploadService returns the upload service instance
func (c *Container) GetUploadService() domain.UploadService {
	return c.UploadService
}
