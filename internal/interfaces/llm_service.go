package interfaces

import (
	"context"
	"strings"
)

// Classification is the three-way intent label assigned to an incoming
// message before the pipeline decides how much work it deserves.
type Classification string

const (
	// ClassificationGreeting covers salutations and pleasantries.
	ClassificationGreeting Classification = "greeting"

	// ClassificationClarification covers questions about the assistant
	// itself: its rules, quota, or how to use it.
	ClassificationClarification Classification = "clarification"

	// ClassificationQuestion covers substantive questions about the
	// profile. This is the only label that debits the caller's quota.
	ClassificationQuestion Classification = "question"
)

// CountsAsQuestion reports whether this label debits the session quota.
func (c Classification) CountsAsQuestion() bool {
	return c == ClassificationQuestion
}

// ParseClassification normalizes a raw model label. Anything that is not
// recognizably a greeting or clarification is treated as a question, so an
// unexpected label degrades toward full processing rather than toward
// answering without context.
func ParseClassification(raw string) Classification {
	label := strings.ToLower(strings.TrimSpace(raw))
	label = strings.Trim(label, `"'`)
	switch Classification(label) {
	case ClassificationGreeting:
		return ClassificationGreeting
	case ClassificationClarification:
		return ClassificationClarification
	default:
		return ClassificationQuestion
	}
}

// LLMService is the pipeline's oracle: each method is one bounded-output
// call to the generation provider. Implementations must be safe for
// concurrent use; stubs replace them in tests.
type LLMService interface {
	// Classify labels a message as greeting, clarification, or question.
	Classify(ctx context.Context, message string) (Classification, error)

	// Route returns the provider's raw routing output for a question: one
	// or more section keys as comma-separated text. Callers own the
	// server-side filtering of that output against the valid key list.
	Route(ctx context.Context, question string, keys []string, hint string) (string, error)

	// Generate produces an answer grounded strictly in the supplied
	// context block.
	Generate(ctx context.Context, question string, contextBlock string) (string, error)

	// HealthCheck verifies the provider is configured and reachable.
	HealthCheck(ctx context.Context) error

	// Close releases provider clients.
	Close() error
}
