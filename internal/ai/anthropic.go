package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// anthropicMaxTokens bounds completion length for resume-sized payloads
const anthropicMaxTokens = 8192

// AnthropicProvider implements AIProvider for Anthropic Claude models
type AnthropicProvider struct {
	client         anthropic.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker[*anthropic.Message]
	modelBreaker   *AICircuitBreaker[*anthropic.ModelInfo]
	logger         *errors.Logger
}

var _ AIProvider = (*AnthropicProvider)(nil)

// NewAnthropicProvider creates a new Anthropic provider instance for a specific operation
func NewAnthropicProvider(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*AnthropicProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.NewConfigError(errors.ErrCodeMissingAPIKey,
			"Anthropic API key is required", nil)
	}

	return &AnthropicProvider{
		client:         anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: NewAICircuitBreaker[*anthropic.Message](operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker[*anthropic.ModelInfo](operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (a *AnthropicProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      a.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := a.modelBreaker.Execute(func() (*anthropic.ModelInfo, error) {
		return a.client.Models.Get(checkCtx, a.config.Model, anthropic.ModelGetParams{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		a.logger.Warn("Model availability check failed",
			"model", a.config.Model,
			"provider", a.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.DisplayName
	return modelInfo
}

// generate runs one Claude call with tracing, circuit breaking and retries
func (a *AnthropicProvider) generate(ctx context.Context, operationName, systemPrompt, userPrompt string, spanAttributes ...attribute.KeyValue) (string, *TokenUsage, error) {
	tracer := otel.Tracer("resumeforge.ai.anthropic")
	ctx, span := tracer.Start(ctx, "anthropic."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "anthropic"),
		attribute.String("ai.model", a.config.Model),
		attribute.Float64("ai.temperature", float64(*a.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(a.config.Model),
		MaxTokens:   anthropicMaxTokens,
		Temperature: anthropic.Float(float64(*a.config.Temperature)),
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					{OfText: &anthropic.TextBlockParam{Text: userPrompt}},
				},
			},
		},
	}
	if *a.config.UseSystemPrompts && systemPrompt != "" {
		params.System = []anthropic.TextBlockParam{{Text: systemPrompt}}
	}

	policy := retryPolicy{
		maxRetries:  *a.config.MaxRetries,
		logger:      a.logger,
		isRetryable: isRetryableAnthropicError,
	}

	message, err := a.circuitBreaker.Execute(func() (*anthropic.Message, error) {
		return executeWithRetry(ctx, operationName, policy, func() (*anthropic.Message, error) {
			return a.client.Messages.New(ctx, params)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return "", nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	var text strings.Builder
	for _, block := range message.Content {
		if textBlock := block.AsText(); textBlock.Text != "" {
			text.WriteString(textBlock.Text)
		}
	}

	tokenUsage := &TokenUsage{
		InputTokens:  message.Usage.InputTokens,
		OutputTokens: message.Usage.OutputTokens,
		TotalTokens:  message.Usage.InputTokens + message.Usage.OutputTokens,
	}
	span.SetAttributes(
		attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
		attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
		attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		attribute.Bool("success", true),
	)
	return text.String(), tokenUsage, nil
}

// ParseResume implements AIProvider for structuring raw resume text
func (a *AnthropicProvider) ParseResume(ctx context.Context, rawText string) (types.ResumeProfile, *TokenUsage, error) {
	systemPrompt := resolveSystemPrompt("parse", a.config)
	userPrompt := fmt.Sprintf(resolveUserPrompt("parse", a.config), rawText)

	raw, tokenUsage, err := a.generate(ctx, "parse_resume", systemPrompt, userPrompt,
		attribute.Int("input.raw_text_length", len(rawText)))
	if err != nil {
		return types.EmptyProfile(), nil, err
	}

	profile, err := decodeProfile(raw)
	if err != nil {
		return types.EmptyProfile(), nil, err
	}
	return profile, tokenUsage, nil
}

// RewriteResume implements AIProvider for optimizing a profile against a JD
func (a *AnthropicProvider) RewriteResume(ctx context.Context, resume types.ResumeProfile, jobDescription string) (types.ResumeProfile, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return resume, nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode resume for rewrite", err)
	}

	systemPrompt := resolveSystemPrompt("rewrite", a.config)
	userPrompt := fmt.Sprintf(resolveUserPrompt("rewrite", a.config), string(resumeJSON), jobDescription)

	raw, tokenUsage, err := a.generate(ctx, "rewrite_resume", systemPrompt, userPrompt,
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Int("input.job_length", len(jobDescription)))
	if err != nil {
		return resume, nil, err
	}

	profile, err := decodeProfile(raw)
	if err != nil {
		return resume, nil, err
	}
	return profile, tokenUsage, nil
}

// GenerateCoverLetter implements AIProvider for cover letter generation
func (a *AnthropicProvider) GenerateCoverLetter(ctx context.Context, input types.CoverLetterRequest) (string, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(input.Resume)
	if err != nil {
		return "", nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode resume for cover letter", err)
	}

	systemPrompt := resolveSystemPrompt("coverletter", a.config)
	userPrompt := fmt.Sprintf(resolveUserPrompt("coverletter", a.config),
		string(resumeJSON), input.JobDescription,
		defaultIfEmpty(input.CompanyName, "the hiring company"),
		defaultIfEmpty(input.PositionTitle, "the position"))

	return a.generate(ctx, "generate_cover_letter", systemPrompt, userPrompt,
		attribute.Int("input.job_length", len(input.JobDescription)))
}

// GenerateInterviewQuestions implements AIProvider for interview preparation
func (a *AnthropicProvider) GenerateInterviewQuestions(ctx context.Context, input types.InterviewQuestionsRequest) (string, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(input.Resume)
	if err != nil {
		return "", nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode resume for interview questions", err)
	}

	systemPrompt := resolveSystemPrompt("interview", a.config)
	userPrompt := fmt.Sprintf(resolveUserPrompt("interview", a.config),
		string(resumeJSON), input.JobDescription,
		defaultIfEmpty(input.PositionTitle, "the position"))

	return a.generate(ctx, "generate_interview_questions", systemPrompt, userPrompt,
		attribute.Int("input.job_length", len(input.JobDescription)))
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (a *AnthropicProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    a.circuitBreaker.GetStats(),
		"model_operations": a.modelBreaker.GetStats(),
		"overall_healthy":  a.circuitBreaker.IsHealthy() && a.modelBreaker.IsHealthy(),
	}
}

// Close implements AIProvider
func (a *AnthropicProvider) Close() error {
	return nil
}

// isRetryableAnthropicError determines if an error should trigger a retry
func isRetryableAnthropicError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *anthropic.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusRequestTimeout,
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}
