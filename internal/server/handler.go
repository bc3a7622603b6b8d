package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/history"
	"resumeforge/internal/observability"
	"resumeforge/internal/render"
	"resumeforge/internal/types"

	"go.opentelemetry.io/otel/attribute"
)

// validateRequest runs struct-tag validation on a decoded request DTO
func (s *Server) validateRequest(req any) error {
	return s.Validator.Struct(req)
}

// createScoreHandler scores a structured resume against a job description.
// Scoring is pure and local; no AI provider is involved.
func (s *Server) createScoreHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.score")
		defer span.End()

		var req types.ScoreRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateRequest(&req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job_description field is required", http.StatusBadRequest)
			return
		}

		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("job_description exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "score"),
		)

		result := s.Scorer.Score(&req.Resume, req.JobDescription)

		s.recordScoreHistory(ctx, &req, &result)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_scored", true, om,
			attribute.Int("ats.score", result.ATSScore))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("ats.score", result.ATSScore),
		)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			span.RecordError(err)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// recordScoreHistory persists a scoring run when history is enabled.
// Persistence failures are logged, never surfaced to the caller.
func (s *Server) recordScoreHistory(ctx context.Context, req *types.ScoreRequest, result *types.ScoreResult) {
	if s.History == nil {
		return
	}

	entry := &history.Entry{
		CandidateName:  req.Resume.Contact.FullName,
		JobDescription: req.JobDescription,
		ATSScore:       result.ATSScore,
		Breakdown:      result.ScoreBreakdown,
	}
	if err := s.History.Save(ctx, entry); err != nil {
		s.Logger.LogError(err, "Failed to record score history",
			"candidate", entry.CandidateName)
	}
}

// createParseHandler structures raw resume text into a profile via the AI
// provider. On provider failure the empty-profile fallback is returned.
func (s *Server) createParseHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.parse")
		defer span.End()

		var req types.ParseRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateRequest(&req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing resume text", "raw_text field is required", http.StatusBadRequest)
			return
		}

		if len(req.RawText) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("resume text too large: %d chars", len(req.RawText))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Resume text too large", fmt.Sprintf("raw_text exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.raw_text_length", len(req.RawText)),
			attribute.String("operation", "parse"),
		)

		// HTML submissions are stripped to visible text before parsing
		rawText := s.Extractor.Extract("", []byte(req.RawText))
		if strings.TrimSpace(rawText) == "" {
			writeErrorResponse(w, "Empty resume content", "no text could be extracted from raw_text", http.StatusBadRequest)
			return
		}

		parseConfig := s.AppConfig.GetParseConfig()
		aiService, err := ai.NewService(&parseConfig, "parse", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var profile types.ResumeProfile
		err = metrics.TrackAIOperationWithTokens(ctx, "parse", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.ParseResume(ctx, rawText)
			profile = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		// A failed parse degrades to the empty profile rather than an error
		if err != nil {
			span.SetAttributes(attribute.String("degraded", "empty_profile"))
			metrics.RecordBusinessMetric(ctx, "resume_parsed", false, om,
				attribute.String("error", err.Error()))
		} else {
			metrics.RecordBusinessMetric(ctx, "resume_parsed", true, om,
				attribute.Int("experience_entries", len(profile.Experience)))
		}

		span.SetAttributes(
			attribute.Bool("success", err == nil),
			attribute.Int("response.experience_entries", len(profile.Experience)),
		)

		w.Header().Set("Content-Type", "application/json")
		if encodeErr := json.NewEncoder(w).Encode(profile); encodeErr != nil {
			span.RecordError(encodeErr)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRewriteHandler optimizes a profile against a job description and
// rescores the result. On provider failure the original profile is returned.
func (s *Server) createRewriteHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.rewrite")
		defer span.End()

		var req types.RewriteRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateRequest(&req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job_description field is required", http.StatusBadRequest)
			return
		}

		if len(req.JobDescription) > int(s.MaxRequestSize/2) {
			err := fmt.Errorf("job description too large: %d chars", len(req.JobDescription))
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Job description too large", fmt.Sprintf("job_description exceeds recommended size limit of %d characters", s.MaxRequestSize/2), http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("operation", "rewrite"),
		)

		rewriteConfig := s.AppConfig.GetRewriteConfig()
		aiService, err := ai.NewService(&rewriteConfig, "rewrite", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var rewritten types.ResumeProfile
		err = metrics.TrackAIOperationWithTokens(ctx, "rewrite", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.RewriteResume(ctx, req.Resume, req.JobDescription)
			rewritten = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		// A failed rewrite degrades to the original profile, rescored as-is
		if err != nil {
			span.SetAttributes(attribute.String("degraded", "original_profile"))
		}

		result := types.RewriteResponse{
			Resume: rewritten,
			ATS:    s.Scorer.Score(&rewritten, req.JobDescription),
		}

		metrics.RecordBusinessMetric(ctx, "resume_rewritten", err == nil, om,
			attribute.Int("ats.score", result.ATS.ATSScore))

		span.SetAttributes(
			attribute.Bool("success", err == nil),
			attribute.Int("ats.score", result.ATS.ATSScore),
		)

		w.Header().Set("Content-Type", "application/json")
		if encodeErr := json.NewEncoder(w).Encode(result); encodeErr != nil {
			span.RecordError(encodeErr)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRenderHandler renders a profile to a standalone HTML document
func (s *Server) createRenderHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.render")
		defer span.End()

		var req types.RenderRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		span.SetAttributes(attribute.String("operation", "render"))

		document := render.HTML(&req.Resume)

		metrics := om.GetMetrics()
		metrics.RecordBusinessMetric(ctx, "resume_rendered", true, om,
			attribute.Int("output.document_length", len(document)))

		span.SetAttributes(
			attribute.Bool("success", true),
			attribute.Int("response.document_length", len(document)),
		)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if _, err := w.Write([]byte(document)); err != nil {
			span.RecordError(err)
			s.Logger.LogError(err, "Failed to write rendered resume")
		}
	}
}

// createCoverLetterHandler generates a cover letter for a specific opening.
// On provider failure a fixed placeholder letter is returned.
func (s *Server) createCoverLetterHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.cover_letter")
		defer span.End()

		var req types.CoverLetterRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateRequest(&req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job_description field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.company", req.CompanyName),
			attribute.String("operation", "cover_letter"),
		)

		coverLetterConfig := s.AppConfig.GetCoverLetterConfig()
		aiService, err := ai.NewService(&coverLetterConfig, "coverletter", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var letter string
		err = metrics.TrackAIOperationWithTokens(ctx, "coverletter", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.GenerateCoverLetter(ctx, req)
			letter = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.SetAttributes(attribute.String("degraded", "placeholder_letter"))
		}
		metrics.RecordBusinessMetric(ctx, "cover_letter_generated", err == nil, om,
			attribute.Int("output.letter_length", len(letter)))

		span.SetAttributes(
			attribute.Bool("success", err == nil),
			attribute.Int("response.letter_length", len(letter)),
		)

		w.Header().Set("Content-Type", "application/json")
		if encodeErr := json.NewEncoder(w).Encode(types.CoverLetterResponse{CoverLetter: letter}); encodeErr != nil {
			span.RecordError(encodeErr)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createInterviewHandler generates likely interview questions for an opening.
// On provider failure a fixed placeholder is returned.
func (s *Server) createInterviewHandler(om *observability.ObservabilityManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		tracer := om.Tracer("resumeforge.api")
		ctx, span := tracer.Start(ctx, "api.interview_questions")
		defer span.End()

		var req types.InterviewQuestionsRequest
		if err := parseJSONRequest(r, &req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Invalid request body", err.Error(), http.StatusBadRequest)
			return
		}

		if err := s.validateRequest(&req); err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "validation"))
			writeErrorResponse(w, "Missing job description", "job_description field is required", http.StatusBadRequest)
			return
		}

		span.SetAttributes(
			attribute.Int("request.job_length", len(req.JobDescription)),
			attribute.String("request.position", req.PositionTitle),
			attribute.String("operation", "interview_questions"),
		)

		interviewConfig := s.AppConfig.GetInterviewConfig()
		aiService, err := ai.NewService(&interviewConfig, "interview", s.Logger)
		if err != nil {
			span.RecordError(err)
			span.SetAttributes(attribute.String("error.type", "service_creation"))
			writeErrorResponse(w, "Failed to create AI service", err.Error(), http.StatusInternalServerError)
			return
		}

		metrics := om.GetMetrics()
		var questions string
		err = metrics.TrackAIOperationWithTokens(ctx, "interview", func(ctx context.Context) *observability.AIOperationResult {
			output, tokenUsage, aiErr := aiService.GenerateInterviewQuestions(ctx, req)
			questions = output
			return &observability.AIOperationResult{
				Error:      aiErr,
				TokenUsage: (*observability.TokenUsage)(tokenUsage),
			}
		}, om)

		if err != nil {
			span.SetAttributes(attribute.String("degraded", "placeholder_questions"))
		}
		metrics.RecordBusinessMetric(ctx, "interview_questions_generated", err == nil, om,
			attribute.Int("output.questions_length", len(questions)))

		span.SetAttributes(
			attribute.Bool("success", err == nil),
			attribute.Int("response.questions_length", len(questions)),
		)

		w.Header().Set("Content-Type", "application/json")
		if encodeErr := json.NewEncoder(w).Encode(types.InterviewQuestionsResponse{Questions: questions}); encodeErr != nil {
			span.RecordError(encodeErr)
			http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		}
	}
}

// createRateLimitMiddleware adds observability to rate limiting
func (s *Server) createRateLimitMiddleware(om *observability.ObservabilityManager) func(http.HandlerFunc) http.HandlerFunc {
	originalMiddleware := s.rateLimitMiddleware()

	return func(next http.HandlerFunc) http.HandlerFunc {
		return originalMiddleware(func(w http.ResponseWriter, r *http.Request) {
			// Check if this request was rate limited by examining the response
			// We'll wrap the ResponseWriter to detect rate limit responses
			wrapper := &responseWrapper{ResponseWriter: w, statusCode: 200}

			next(wrapper, r)

			// If rate limited, record metric
			if wrapper.statusCode == http.StatusTooManyRequests {
				metrics := om.GetMetrics()
				metrics.RecordBusinessMetric(r.Context(), "rate_limit_hit", true, om,
					attribute.String("endpoint", r.URL.Path),
					attribute.String("method", r.Method))
			}
		})
	}
}

// responseWrapper wraps http.ResponseWriter to capture status code
type responseWrapper struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWrapper) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
