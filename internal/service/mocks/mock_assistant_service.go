package mocks

import (
	"context"
	"io"

	"farmapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockAssistantService struct {
	mock.Mock
}

func (m *MockAssistantService) Ask(ctx context.Context, query string) (*model.Answer, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Answer), args.Error(1)
}

func (m *MockAssistantService) AnalyzeImage(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*model.ImageAnalysis, error) {
	args := m.Called(ctx, r, filename, contentType, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ImageAnalysis), args.Error(1)
}

func (m *MockAssistantService) Weather(ctx context.Context, location string) (*model.WeatherReport, error) {
	args := m.Called(ctx, location)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WeatherReport), args.Error(1)
}

func (m *MockAssistantService) Contact(ctx context.Context, sub model.ContactSubmission) (*model.ContactReceipt, error) {
	args := m.Called(ctx, sub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ContactReceipt), args.Error(1)
}
