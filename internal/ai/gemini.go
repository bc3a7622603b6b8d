package ai

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"
)

// GeminiProvider implements AIProvider for Google Gemini
type GeminiProvider struct {
	client         *genai.Client
	config         *config.OperationAIConfig
	operationType  string
	circuitBreaker *AICircuitBreaker[*genai.GenerateContentResponse]
	modelBreaker   *AICircuitBreaker[*genai.Model]
	logger         *errors.Logger
}

var _ AIProvider = (*GeminiProvider)(nil)

// NewGeminiProvider creates a new Gemini provider instance for a specific operation
func NewGeminiProvider(cfg *config.OperationAIConfig, operationType string, logger *errors.Logger) (*GeminiProvider, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to create Gemini client", err)
	}

	return &GeminiProvider{
		client:         client,
		config:         cfg,
		operationType:  operationType,
		circuitBreaker: NewAICircuitBreaker[*genai.GenerateContentResponse](operationType, cfg, logger),
		modelBreaker:   NewModelCircuitBreaker[*genai.Model](operationType, cfg, logger),
		logger:         logger,
	}, nil
}

// GetModelInfo checks the readiness and availability of the configured model
func (g *GeminiProvider) GetModelInfo(ctx context.Context) *ModelInfo {
	modelInfo := &ModelInfo{
		Name:      g.config.Model,
		Available: false,
	}

	checkCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	model, err := g.modelBreaker.Execute(func() (*genai.Model, error) {
		return g.client.Models.Get(checkCtx, g.config.Model, &genai.GetModelConfig{})
	})
	if err != nil {
		modelInfo.Error = fmt.Sprintf("Failed to get model info: %v", err)
		g.logger.Warn("Model availability check failed",
			"model", g.config.Model,
			"provider", g.config.Provider,
			"error", err.Error())
		return modelInfo
	}

	modelInfo.Available = true
	modelInfo.DisplayName = model.DisplayName
	modelInfo.Version = model.Version
	return modelInfo
}

// generate runs one Gemini call with tracing, circuit breaking and retries
func (g *GeminiProvider) generate(ctx context.Context, operationName, systemPrompt, userPrompt string, genaiConfig *genai.GenerateContentConfig, spanAttributes ...attribute.KeyValue) (*genai.GenerateContentResponse, *TokenUsage, error) {
	tracer := otel.Tracer("resumeforge.ai.gemini")
	ctx, span := tracer.Start(ctx, "gemini."+operationName)
	defer span.End()

	span.SetAttributes(
		attribute.String("ai.provider", "gemini"),
		attribute.String("ai.model", g.config.Model),
		attribute.Float64("ai.temperature", float64(*g.config.Temperature)),
	)
	span.SetAttributes(spanAttributes...)

	if *g.config.UseSystemPrompts && systemPrompt != "" {
		genaiConfig.SystemInstruction = genai.NewContentFromText(systemPrompt, genai.RoleUser)
	}

	policy := retryPolicy{
		maxRetries:  *g.config.MaxRetries,
		logger:      g.logger,
		isRetryable: isRetryableGeminiError,
	}

	result, err := g.circuitBreaker.Execute(func() (*genai.GenerateContentResponse, error) {
		return executeWithRetry(ctx, operationName, policy, func() (*genai.GenerateContentResponse, error) {
			return g.client.Models.GenerateContent(ctx, g.config.Model, genai.Text(userPrompt), genaiConfig)
		})
	})
	if err != nil {
		span.RecordError(err)
		span.SetAttributes(attribute.Bool("success", false))
		return nil, nil, errors.NewAIError(errors.ErrCodeAIServiceFailed,
			"Failed to generate content for "+operationName, err)
	}

	tokenUsage := extractGeminiTokenUsage(result)
	if tokenUsage != nil {
		span.SetAttributes(
			attribute.Int64("ai.tokens.input", tokenUsage.InputTokens),
			attribute.Int64("ai.tokens.output", tokenUsage.OutputTokens),
			attribute.Int64("ai.tokens.total", tokenUsage.TotalTokens),
		)
	}
	span.SetAttributes(attribute.Bool("success", true))
	return result, tokenUsage, nil
}

// ParseResume implements AIProvider for structuring raw resume text
func (g *GeminiProvider) ParseResume(ctx context.Context, rawText string) (types.ResumeProfile, *TokenUsage, error) {
	systemPrompt := g.systemPrompt("parse")
	userPrompt := fmt.Sprintf(g.userPrompt("parse"), rawText)

	result, tokenUsage, err := g.generate(ctx, "parse_resume", systemPrompt, userPrompt,
		g.profileResponseConfig(),
		attribute.Int("input.raw_text_length", len(rawText)))
	if err != nil {
		return types.EmptyProfile(), nil, err
	}

	profile, err := decodeProfile(result.Text())
	if err != nil {
		return types.EmptyProfile(), nil, err
	}
	return profile, tokenUsage, nil
}

// RewriteResume implements AIProvider for optimizing a profile against a JD
func (g *GeminiProvider) RewriteResume(ctx context.Context, resume types.ResumeProfile, jobDescription string) (types.ResumeProfile, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(resume)
	if err != nil {
		return resume, nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode resume for rewrite", err)
	}

	systemPrompt := g.systemPrompt("rewrite")
	userPrompt := fmt.Sprintf(g.userPrompt("rewrite"), string(resumeJSON), jobDescription)

	result, tokenUsage, err := g.generate(ctx, "rewrite_resume", systemPrompt, userPrompt,
		g.profileResponseConfig(),
		attribute.Int("input.resume_length", len(resumeJSON)),
		attribute.Int("input.job_length", len(jobDescription)))
	if err != nil {
		return resume, nil, err
	}

	profile, err := decodeProfile(result.Text())
	if err != nil {
		return resume, nil, err
	}
	return profile, tokenUsage, nil
}

// GenerateCoverLetter implements AIProvider for cover letter generation
func (g *GeminiProvider) GenerateCoverLetter(ctx context.Context, input types.CoverLetterRequest) (string, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(input.Resume)
	if err != nil {
		return "", nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode resume for cover letter", err)
	}

	systemPrompt := g.systemPrompt("coverletter")
	userPrompt := fmt.Sprintf(g.userPrompt("coverletter"),
		string(resumeJSON), input.JobDescription,
		defaultIfEmpty(input.CompanyName, "the hiring company"),
		defaultIfEmpty(input.PositionTitle, "the position"))

	result, tokenUsage, err := g.generate(ctx, "generate_cover_letter", systemPrompt, userPrompt,
		g.textResponseConfig(),
		attribute.Int("input.job_length", len(input.JobDescription)))
	if err != nil {
		return "", nil, err
	}
	return result.Text(), tokenUsage, nil
}

// GenerateInterviewQuestions implements AIProvider for interview preparation
func (g *GeminiProvider) GenerateInterviewQuestions(ctx context.Context, input types.InterviewQuestionsRequest) (string, *TokenUsage, error) {
	resumeJSON, err := json.Marshal(input.Resume)
	if err != nil {
		return "", nil, errors.NewInternalError(errors.ErrCodeInvalidFormat,
			"Failed to encode resume for interview questions", err)
	}

	systemPrompt := g.systemPrompt("interview")
	userPrompt := fmt.Sprintf(g.userPrompt("interview"),
		string(resumeJSON), input.JobDescription,
		defaultIfEmpty(input.PositionTitle, "the position"))

	result, tokenUsage, err := g.generate(ctx, "generate_interview_questions", systemPrompt, userPrompt,
		g.textResponseConfig(),
		attribute.Int("input.job_length", len(input.JobDescription)))
	if err != nil {
		return "", nil, err
	}
	return result.Text(), tokenUsage, nil
}

// GetCircuitBreakerStats returns circuit breaker statistics
func (g *GeminiProvider) GetCircuitBreakerStats() map[string]any {
	return map[string]any{
		"ai_operations":    g.circuitBreaker.GetStats(),
		"model_operations": g.modelBreaker.GetStats(),
		"overall_healthy":  g.circuitBreaker.IsHealthy() && g.modelBreaker.IsHealthy(),
	}
}

// Close implements AIProvider
func (g *GeminiProvider) Close() error {
	return nil
}

// profileResponseConfig constrains responses to the resume profile schema
func (g *GeminiProvider) profileResponseConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   buildProfileSchema(),
	}
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}

// textResponseConfig is used for plain-text artifacts
func (g *GeminiProvider) textResponseConfig() *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}
	if *g.config.Temperature > 0 {
		cfg.Temperature = g.config.Temperature
	}
	return cfg
}

// buildProfileSchema describes the structured resume record for the model.
// Certifications are emitted in the detailed object form; the decoder also
// accepts the plain-string form from older producers.
func buildProfileSchema() *genai.Schema {
	stringArray := &genai.Schema{Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"contact_info": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"full_name": {Type: genai.TypeString},
					"email":     {Type: genai.TypeString},
					"phone":     {Type: genai.TypeString},
					"location":  {Type: genai.TypeString},
				},
				Required: []string{"full_name", "email", "phone", "location"},
			},
			"links": {
				Type: genai.TypeObject,
			},
			"summary": {Type: genai.TypeString},
			"education": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"institution":     {Type: genai.TypeString},
						"degree":          {Type: genai.TypeString},
						"field":           {Type: genai.TypeString},
						"location":        {Type: genai.TypeString},
						"graduation_date": {Type: genai.TypeString},
						"gpa":             {Type: genai.TypeString},
					},
					Required: []string{"institution", "degree", "field", "location", "graduation_date", "gpa"},
				},
			},
			"experience": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"company":      {Type: genai.TypeString},
						"position":     {Type: genai.TypeString},
						"location":     {Type: genai.TypeString},
						"start_date":   {Type: genai.TypeString},
						"end_date":     {Type: genai.TypeString},
						"achievements": stringArray,
					},
					Required: []string{"company", "position", "location", "start_date", "end_date", "achievements"},
				},
			},
			"projects": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"title":        {Type: genai.TypeString},
						"description":  {Type: genai.TypeString},
						"technologies": stringArray,
						"bullets":      stringArray,
					},
					Required: []string{"title", "description", "technologies", "bullets"},
				},
			},
			"certifications": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":   {Type: genai.TypeString},
						"issuer": {Type: genai.TypeString},
						"year":   {Type: genai.TypeString},
					},
					Required: []string{"name"},
				},
			},
			"skills": {
				Type: genai.TypeObject,
			},
			"languages": stringArray,
		},
		Required: []string{"contact_info", "links", "summary", "education", "experience", "projects", "certifications", "skills", "languages"},
	}
}

// decodeProfile sanitizes model output and decodes it into a profile with
// every field present.
func decodeProfile(raw string) (types.ResumeProfile, error) {
	cleaned := EnsureProfileDefaults(CleanModelJSON(raw))

	profile := types.EmptyProfile()
	if err := json.Unmarshal([]byte(cleaned), &profile); err != nil {
		return types.EmptyProfile(), errors.NewAIError("AI_RESPONSE_PARSE_FAILED",
			"Failed to parse AI response into resume profile", err)
	}
	return normalizeProfile(profile), nil
}

// normalizeProfile replaces nil collections with empty ones so downstream
// consumers never see absent fields.
func normalizeProfile(profile types.ResumeProfile) types.ResumeProfile {
	if profile.Links == nil {
		profile.Links = map[string]string{}
	}
	if profile.Education == nil {
		profile.Education = []types.Education{}
	}
	if profile.Experience == nil {
		profile.Experience = []types.Experience{}
	}
	if profile.Projects == nil {
		profile.Projects = []types.Project{}
	}
	if profile.Certifications == nil {
		profile.Certifications = []types.Certification{}
	}
	if profile.Skills == nil {
		profile.Skills = map[string][]string{}
	}
	if profile.Languages == nil {
		profile.Languages = []string{}
	}
	return profile
}

// isRetryableGeminiError determines if an error should trigger a retry
func isRetryableGeminiError(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return true
	}

	var apiErr *googleapi.Error
	if stderrors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return true
		}
	}

	return false
}

// extractGeminiTokenUsage extracts token usage information from a response
func extractGeminiTokenUsage(result *genai.GenerateContentResponse) *TokenUsage {
	if result == nil || result.UsageMetadata == nil {
		return nil
	}
	usage := result.UsageMetadata
	return &TokenUsage{
		InputTokens:  int64(usage.PromptTokenCount),
		OutputTokens: int64(usage.CandidatesTokenCount),
		TotalTokens:  int64(usage.TotalTokenCount),
	}
}

// systemPrompt resolves the system prompt for an operation: file-loaded
// content wins, then config overrides, then hardcoded defaults.
func (g *GeminiProvider) systemPrompt(operation string) string {
	return resolveSystemPrompt(operation, g.config)
}

// userPrompt resolves the user prompt template for an operation
func (g *GeminiProvider) userPrompt(operation string) string {
	return resolveUserPrompt(operation, g.config)
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
