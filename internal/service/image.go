package service

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"farmapi/internal/model"
	"farmapi/internal/storage"
)

const imageAnalysisResult = "🌱 Image analysis result: Healthy crop detected."

func (s *assistantService) AnalyzeImage(ctx context.Context, r io.Reader, filename, contentType string, size int64) (*model.ImageAnalysis, error) {
	if r == nil {
		return nil, validationError(MsgImageRequired)
	}
	key, err := storage.SanitizeKey(filename)
	if err != nil {
		return nil, validationError(MsgImageRequired)
	}
	if key != filename {
		s.logger.Warn("upload_filename_sanitized",
			zap.String("original", filename),
			zap.String("stored", key),
		)
	}

	info, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
		},
	})
	if err != nil {
		if errors.Is(err, storage.ErrInvalidKey) {
			return nil, validationError(MsgImageRequired)
		}
		return nil, fmt.Errorf("store upload: %w", err)
	}

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("upload.key", info.Key),
		attribute.Int64("upload.size", info.Size),
	)

	return &model.ImageAnalysis{
		Result:   imageAnalysisResult,
		Filename: info.Key,
		Size:     info.Size,
	}, nil
}
