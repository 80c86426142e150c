// Package llm implements the pipeline's oracle: three bounded-output
// provider calls (classify, route, generate) on top of a provider factory
// that speaks both Claude and Gemini.
package llm

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"

	"github.com/lebonkosi/foliochat/internal/interfaces"
)

// Output budgets per stage. Classification and routing are labels, not
// prose; the generator gets the provider's configured ceiling.
const (
	classifyMaxTokens = 10
	routeMaxTokens    = 50
)

// Service implements interfaces.LLMService on a content provider.
type Service struct {
	provider  Provider
	ownerName string
	logger    arbor.ILogger
}

// NewService creates the oracle service. ownerName is interpolated into
// every system instruction so prompts speak about the profile's subject.
func NewService(provider Provider, ownerName string, logger arbor.ILogger) *Service {
	return &Service{
		provider:  provider,
		ownerName: ownerName,
		logger:    logger,
	}
}

// Classify labels a message as greeting, clarification, or question.
// The raw label is normalized; anything unrecognized becomes "question".
func (s *Service) Classify(ctx context.Context, message string) (interfaces.Classification, error) {
	resp, err := s.provider.GenerateContent(ctx, &ContentRequest{
		SystemInstruction: classifySystemPrompt(s.ownerName),
		UserContent:       fmt.Sprintf("Classify this message: %q", message),
		MaxTokens:         classifyMaxTokens,
	})
	if err != nil {
		return "", err
	}

	classification := interfaces.ParseClassification(resp.Text)
	s.logger.Debug().
		Str("raw", resp.Text).
		Str("classification", string(classification)).
		Msg("Message classified")
	return classification, nil
}

// Route asks the provider which section keys a question touches and
// returns the raw comma-separated output. Filtering against the valid key
// list happens in the pipeline, not here.
func (s *Service) Route(ctx context.Context, question string, keys []string, hint string) (string, error) {
	resp, err := s.provider.GenerateContent(ctx, &ContentRequest{
		SystemInstruction: routeSystemPrompt(s.ownerName),
		UserContent:       routeUserContent(question, keys, hint),
		MaxTokens:         routeMaxTokens,
	})
	if err != nil {
		return "", err
	}

	s.logger.Debug().
		Str("raw", resp.Text).
		Msg("Question routed")
	return resp.Text, nil
}

// Generate produces an answer grounded strictly in the context block.
func (s *Service) Generate(ctx context.Context, question string, contextBlock string) (string, error) {
	resp, err := s.provider.GenerateContent(ctx, &ContentRequest{
		SystemInstruction: answerSystemPrompt(s.ownerName),
		UserContent:       answerUserContent(question, contextBlock),
	})
	if err != nil {
		return "", err
	}
	return resp.Text, nil
}

// HealthCheck verifies the provider is usable.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.provider.HealthCheck(ctx)
}

// Close releases provider clients.
func (s *Service) Close() error {
	return s.provider.Close()
}
