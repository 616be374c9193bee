package service

import (
	"context"
	"fmt"
	"mediaplanner/internal/chat"
	"mediaplanner/internal/engine"
	"mediaplanner/internal/model"
	"mediaplanner/internal/platform/logger"
	"mediaplanner/internal/repository"
	"strings"
	"time"

	"github.com/google/uuid"
)

// BriefService builds client briefs from the scored questionnaire
type BriefService struct {
	planner *engine.Planner
	briefs  repository.BriefRepo
	advisor TextGenerator
	kb      *chat.Knowledge
	log     *logger.Logger
	now     func() time.Time
}

// NewBriefService creates a new brief service; advisor may be nil
func NewBriefService(planner *engine.Planner, briefs repository.BriefRepo, advisor TextGenerator, kb *chat.Knowledge, log *logger.Logger) *BriefService {
	return &BriefService{
		planner: planner,
		briefs:  briefs,
		advisor: advisor,
		kb:      kb,
		log:     log,
		now:     time.Now,
	}
}

// Create classifies answers, asks for planner advice and saves the brief.
// Advice falls back to a canned line when the generator is unavailable.
func (s *BriefService) Create(ctx context.Context, clientName string, answers []model.Answer) (*model.Brief, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, badRequest("missing_client_name", "clientName is required")
	}
	if err := validateAnswers(answers); err != nil {
		return nil, err
	}

	answers = stampAnswers(answers, s.now())
	rec, err := s.planner.Recommend(engine.StrategyScored, answers)
	if err != nil {
		return nil, err
	}
	class := rec.Classification
	if class == nil {
		return nil, fmt.Errorf("scored recommendation without classification")
	}

	advice, byAI := s.kb.AdviceFallback, false
	if s.advisor != nil {
		text, err := s.advisor.GenerateText(ctx, chat.AdvicePrompt(clientName, *class, rec.Allocations))
		if err != nil {
			s.log.Warn("advice generation failed, using fallback", "client", clientName, "error", err)
		} else {
			advice, byAI = text, true
		}
	}

	brief := &model.Brief{
		ID:         uuid.New().String(),
		ClientName: clientName,
		BucketID:   class.BucketID,
		BucketName: class.BucketName,
		Allocation: rec.Allocations,
		Efficiency: class.Efficiency,
		Advice:     advice,
		AdviceByAI: byAI,
		Answers:    answers,
		CreatedAt:  s.now().UTC(),
	}
	if err := s.briefs.Create(ctx, brief); err != nil {
		return nil, fmt.Errorf("save brief: %w", err)
	}
	s.log.Info("brief created", "briefId", brief.ID, "bucket", brief.BucketID, "efficiency", brief.Efficiency)
	return brief, nil
}

// List returns the newest briefs
func (s *BriefService) List(ctx context.Context, limit int) ([]*model.Brief, error) {
	return s.briefs.List(ctx, clampLimit(limit))
}

// Delete removes a brief
func (s *BriefService) Delete(ctx context.Context, id string) error {
	deleted, err := s.briefs.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return notFound("brief_not_found", ErrBriefNotFound)
	}
	return nil
}
