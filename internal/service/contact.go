package service

import (
	"context"

	"go.uber.org/zap"

	"farmapi/internal/model"
)

const contactAck = "✅ Your message has been received!"

// Contact logs the submission and acknowledges it. Nothing is persisted.
func (s *assistantService) Contact(ctx context.Context, sub model.ContactSubmission) (*model.ContactReceipt, error) {
	if sub.Name == "" || sub.Email == "" || sub.Message == "" {
		return nil, validationError(MsgFieldsRequired)
	}

	s.logger.Info("contact_message_received",
		zap.String("name", sub.Name),
		zap.String("email", sub.Email),
		zap.String("message", sub.Message),
	)

	return &model.ContactReceipt{Success: true, Message: contactAck}, nil
}
