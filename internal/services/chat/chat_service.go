// Package chat runs the question pipeline: intent classification, section
// routing, context assembly, and grounded answer generation. Stages are
// strictly sequential; each one gates the next.
package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/common"
	"github.com/lebonkosi/foliochat/internal/interfaces"
	"github.com/lebonkosi/foliochat/internal/models"
)

// Service implements interfaces.ChatService.
type Service struct {
	llmService     interfaces.LLMService
	profileService interfaces.ProfileService
	logger         arbor.ILogger
	ownerName      string
	sessionQuota   int
	stageTimeout   time.Duration
}

// NewService creates the pipeline service.
func NewService(
	llmService interfaces.LLMService,
	profileService interfaces.ProfileService,
	cfg *common.ChatConfig,
	logger arbor.ILogger,
) *Service {
	return &Service{
		llmService:     llmService,
		profileService: profileService,
		logger:         logger,
		ownerName:      cfg.OwnerName,
		sessionQuota:   cfg.SessionQuota,
		stageTimeout:   common.ParseDurationOr(cfg.StageTimeout, 30*time.Second),
	}
}

// Ask processes one trimmed, non-empty question through the pipeline.
// Classification failures degrade to "question"; every other upstream
// failure is fatal for the request and surfaces to the handler.
func (s *Service) Ask(ctx context.Context, question string) (*interfaces.ChatResult, error) {
	doc, err := s.loadProfile(ctx)
	if err != nil {
		return nil, err
	}

	classification := s.classify(ctx, question)

	switch classification {
	case interfaces.ClassificationGreeting:
		return &interfaces.ChatResult{
			Answer:           greetingResponse(s.ownerName),
			CountsAsQuestion: classification.CountsAsQuestion(),
			Classification:   classification,
		}, nil
	case interfaces.ClassificationClarification:
		return &interfaces.ChatResult{
			Answer:           clarificationResponse(s.ownerName, s.sessionQuota),
			CountsAsQuestion: classification.CountsAsQuestion(),
			Classification:   classification,
		}, nil
	}

	keys, err := s.route(ctx, question, doc)
	if err != nil {
		return nil, fmt.Errorf("failed to route question: %w", err)
	}

	contextBlock := BuildContext(doc, keys)

	answer, err := s.generate(ctx, question, contextBlock)
	if err != nil {
		return nil, fmt.Errorf("failed to generate answer: %w", err)
	}
	if answer == "" {
		answer = fallbackAnswer
	}

	s.logger.Info().
		Str("classification", string(classification)).
		Strs("sections", keys).
		Int("answer_length", len(answer)).
		Msg("Question answered")

	return &interfaces.ChatResult{
		Answer:           answer,
		CountsAsQuestion: classification.CountsAsQuestion(),
		Classification:   classification,
		SelectedSections: keys,
	}, nil
}

// HealthCheck verifies the oracle and the knowledge source are usable.
func (s *Service) HealthCheck(ctx context.Context) error {
	if err := s.llmService.HealthCheck(ctx); err != nil {
		return fmt.Errorf("llm service unhealthy: %w", err)
	}

	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	if _, err := s.profileService.Load(stageCtx); err != nil {
		return fmt.Errorf("profile source unhealthy: %w", err)
	}
	return nil
}

func (s *Service) loadProfile(ctx context.Context) (*models.ProfileDocument, error) {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()
	return s.profileService.Load(stageCtx)
}

// classify fails open: a provider outage degrades to treating the message
// as a substantive question rather than blocking all traffic.
func (s *Service) classify(ctx context.Context, question string) interfaces.Classification {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	classification, err := s.llmService.Classify(stageCtx, question)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Classification failed, treating message as a question")
		return interfaces.ClassificationQuestion
	}
	return classification
}

func (s *Service) route(ctx context.Context, question string, doc *models.ProfileDocument) ([]string, error) {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	raw, err := s.llmService.Route(stageCtx, question, doc.SectionKeys(), doc.Metadata.QueryHandling)
	if err != nil {
		return nil, err
	}
	return ParseRoutedKeys(raw, doc.SectionKeys()), nil
}

func (s *Service) generate(ctx context.Context, question, contextBlock string) (string, error) {
	stageCtx, cancel := context.WithTimeout(ctx, s.stageTimeout)
	defer cancel()

	return s.llmService.Generate(stageCtx, question, contextBlock)
}
