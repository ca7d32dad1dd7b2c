package service

import (
	"context"
	"fmt"

	"farmapi/internal/model"
)

const answerTemplate = `🤖 You asked: "%s". This is the AI response.`

func (s *assistantService) Ask(ctx context.Context, query string) (*model.Answer, error) {
	if query == "" {
		return nil, validationError(MsgQueryRequired)
	}
	return &model.Answer{Answer: fmt.Sprintf(answerTemplate, query)}, nil
}
