package ai

import (
	"context"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// Degraded-mode artifacts returned when generation fails and the caller asked
// for graceful handling.
const (
	FallbackCoverLetter        = "Unable to generate cover letter at this time."
	FallbackInterviewQuestions = "Unable to generate interview questions at this time."
)

// Service handles AI operations for resume processing
type Service struct {
	Provider AIProvider // Exported for access from server package
	config   *config.OperationAIConfig
	logger   *errors.Logger
}

// NewService creates a new AI service instance with configuration for a specific operation
func NewService(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*Service, error) {
	var provider AIProvider
	var err error

	// Debug logging for service initialization
	logger.Debug("Initializing AI service",
		"provider", cfg.Provider,
		"operation_type", operationType,
		"model", cfg.Model,
		"temperature", *cfg.Temperature,
		"timeout", *cfg.Timeout,
		"max_retries", *cfg.MaxRetries,
		"use_system_prompts", *cfg.UseSystemPrompts)

	switch cfg.Provider {
	case "gemini":
		provider, err = NewGeminiProvider(cfg, operationType, logger)
	case "anthropic":
		provider, err = NewAnthropicProvider(cfg, operationType, logger)
	default:
		return nil, errors.NewConfigError(errors.ErrCodeInvalidConfig,
			fmt.Sprintf("Unsupported AI provider: %s", cfg.Provider), nil)
	}

	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create AI provider", err)
	}

	return &Service{
		Provider: provider,
		config:   cfg,
		logger:   logger,
	}, nil
}

// withTimeout applies the operation's configured timeout to the context
func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, *s.config.Timeout)
}

// ParseResume structures raw resume text. On failure it returns the error and
// an empty profile with every field present, so callers can degrade gracefully.
func (s *Service) ParseResume(ctx context.Context, rawText string) (types.ResumeProfile, *TokenUsage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	profile, usage, err := s.Provider.ParseResume(ctx, rawText)
	if err != nil {
		s.logger.LogError(err, "Resume parsing failed", "raw_text_length", len(rawText))
		return types.EmptyProfile(), usage, err
	}
	return profile, usage, nil
}

// RewriteResume optimizes a profile against a job description. On failure the
// original profile is returned unchanged alongside the error.
func (s *Service) RewriteResume(ctx context.Context, resume types.ResumeProfile, jobDescription string) (types.ResumeProfile, *TokenUsage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rewritten, usage, err := s.Provider.RewriteResume(ctx, resume, jobDescription)
	if err != nil {
		s.logger.LogError(err, "Resume rewrite failed, returning original content")
		return resume, usage, err
	}
	return rewritten, usage, nil
}

// GenerateCoverLetter produces a cover letter. On failure it returns a
// fixed placeholder alongside the error.
func (s *Service) GenerateCoverLetter(ctx context.Context, input types.CoverLetterRequest) (string, *TokenUsage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	letter, usage, err := s.Provider.GenerateCoverLetter(ctx, input)
	if err != nil {
		s.logger.LogError(err, "Cover letter generation failed")
		return FallbackCoverLetter, usage, err
	}
	return letter, usage, nil
}

// GenerateInterviewQuestions produces interview preparation questions. On
// failure it returns a fixed placeholder alongside the error.
func (s *Service) GenerateInterviewQuestions(ctx context.Context, input types.InterviewQuestionsRequest) (string, *TokenUsage, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	questions, usage, err := s.Provider.GenerateInterviewQuestions(ctx, input)
	if err != nil {
		s.logger.LogError(err, "Interview question generation failed")
		return FallbackInterviewQuestions, usage, err
	}
	return questions, usage, nil
}

// GetModelInfo returns information about the AI model for health checks
func (s *Service) GetModelInfo(ctx context.Context) any {
	return s.Provider.GetModelInfo(ctx)
}
