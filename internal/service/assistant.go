package service

import (
	"context"
	"io"

	"go.uber.org/zap"

	"farmapi/internal/model"
	"farmapi/internal/storage"
)

// Client-facing validation messages.
const (
	MsgQueryRequired    = "Query is required."
	MsgImageRequired    = "Image file is required."
	MsgLocationRequired = "Location is required."
	MsgFieldsRequired   = "All fields are required."
)

// ValidationError reports missing client input. Its message is safe to return verbatim.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func validationError(msg string) error { return &ValidationError{Message: msg} }

// AssistantService defines the farming assistant use cases.
type AssistantService interface {
	// Ask answers a free-text question.
	Ask(ctx context.Context, query string) (*model.Answer, error)

	// AnalyzeImage stores the upload under its (sanitized) original file name, replacing
	// any earlier upload with the same name, and returns the analysis.
	AnalyzeImage(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*model.ImageAnalysis, error)

	// Weather returns the weather summary for a location.
	Weather(ctx context.Context, location string) (*model.WeatherReport, error)

	// Contact records a contact form submission in the operational log.
	Contact(ctx context.Context, sub model.ContactSubmission) (*model.ContactReceipt, error)
}

type assistantService struct {
	store  storage.Storage
	logger *zap.Logger
}

// NewAssistantService constructs a new AssistantService.
func NewAssistantService(store storage.Storage, logger *zap.Logger) AssistantService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &assistantService{store: store, logger: logger}
}
