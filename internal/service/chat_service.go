package service

import (
	"context"
	"errors"
	"fmt"
	"mediaplanner/internal/chat"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
	"strings"
	"unicode/utf8"
)

const maxQuestionLength = 1000

// ChatApology is shown to the user when answering fails
const ChatApology = "ขออภัยครับ เกิดข้อผิดพลาดในการประมวลผล กรุณาลองใหม่อีกครั้ง"

// ChatService answers planning questions using the knowledge base and Gemini
type ChatService struct {
	kb  *chat.Knowledge
	gen TextGenerator
	log *logger.Logger
}

// NewChatService creates a chat service; gen may be nil for canned answers only
func NewChatService(kb *chat.Knowledge, gen TextGenerator, log *logger.Logger) *ChatService {
	return &ChatService{kb: kb, gen: gen, log: log}
}

// Ask classifies the question, builds the prompt and asks the generator
func (s *ChatService) Ask(ctx context.Context, question string) (*model.ChatResponse, error) {
	if strings.TrimSpace(question) == "" {
		return nil, badRequest("invalid_question", "Question is required and must be a non-empty string")
	}
	if utf8.RuneCountInString(question) > maxQuestionLength {
		return nil, badRequest("question_too_long", "Question is too long (max 1000 characters)")
	}

	category := chat.Detect(question)
	retrieved := s.kb.Context(category)
	resp := &model.ChatResponse{Category: category, RetrievedContext: retrieved}

	if s.gen == nil {
		resp.Answer = s.kb.CannedAnswer(category)
		return resp, nil
	}

	answer, err := s.gen.GenerateText(ctx, s.kb.BuildPrompt(question, category, retrieved))
	if errors.Is(err, ErrProviderNotConfigured) {
		resp.Answer = s.kb.CannedAnswer(category)
		return resp, nil
	}
	if err != nil {
		return nil, fmt.Errorf("answer question: %w", err)
	}

	s.log.Debug("chat answered", "category", category, "questionLength", utf8.RuneCountInString(question))
	resp.Answer = answer
	return resp, nil
}
