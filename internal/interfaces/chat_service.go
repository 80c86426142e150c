package interfaces

import "context"

// ChatRequest is the wire format for POST /api/chat.
type ChatRequest struct {
	Question string `json:"question"`
}

// ChatResponse is the wire envelope returned for every chat outcome,
// success or failure. CountsAsQuestion is a pointer so error payloads can
// omit it while every 200 carries an explicit true/false for the
// caller-side quota accounting.
type ChatResponse struct {
	Answer           string `json:"answer"`
	CountsAsQuestion *bool  `json:"countsAsQuestion,omitempty"`
}

// ChatResult is the outcome of one pipeline run.
type ChatResult struct {
	// Answer is the text returned to the caller.
	Answer string

	// CountsAsQuestion reports whether this exchange should debit the
	// caller's session quota. Only substantive questions count; greetings
	// and clarifications do not.
	CountsAsQuestion bool

	// Classification is the intent label the pipeline acted on.
	Classification Classification

	// SelectedSections lists the knowledge sections the answer was
	// grounded on. Empty for short-circuited exchanges.
	SelectedSections []string
}

// ChatService runs the question pipeline: classify, route, assemble
// context, generate a grounded answer.
type ChatService interface {
	// Ask processes one trimmed, non-empty question.
	Ask(ctx context.Context, question string) (*ChatResult, error)

	// HealthCheck verifies the pipeline's upstream collaborators are
	// reachable.
	HealthCheck(ctx context.Context) error
}
