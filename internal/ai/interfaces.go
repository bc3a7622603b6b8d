package ai

import (
	"context"

	"resumeforge/internal/types"
)

// AIProvider interface for different AI implementations.
// All methods return token usage information - callers can ignore it if not needed.
type AIProvider interface {
	ParseResume(ctx context.Context, rawText string) (types.ResumeProfile, *TokenUsage, error)
	RewriteResume(ctx context.Context, resume types.ResumeProfile, jobDescription string) (types.ResumeProfile, *TokenUsage, error)
	GenerateCoverLetter(ctx context.Context, input types.CoverLetterRequest) (string, *TokenUsage, error)
	GenerateInterviewQuestions(ctx context.Context, input types.InterviewQuestionsRequest) (string, *TokenUsage, error)
	GetModelInfo(ctx context.Context) *ModelInfo
	Close() error
}

// ModelInfo represents information about the AI model
type ModelInfo struct {
	Name        string `json:"name"`
	DisplayName string `json:"displayName,omitempty"`
	Version     string `json:"version,omitempty"`
	Available   bool   `json:"available"`
	Error       string `json:"error,omitempty"`
}

// TokenUsage represents token usage information from AI responses
type TokenUsage struct {
	InputTokens  int64
	OutputTokens int64
	TotalTokens  int64
}

// BreakerStats is implemented by providers that expose circuit breaker state
type BreakerStats interface {
	GetCircuitBreakerStats() map[string]any
}
