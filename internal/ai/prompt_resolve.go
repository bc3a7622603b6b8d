package ai

import (
	"resumeforge/internal/config"
)

// resolveSystemPrompt picks the system prompt for an operation.
// Priority: file-loaded content, then config overrides, then built-in defaults.
func resolveSystemPrompt(operation string, cfg *config.OperationAIConfig) string {
	loaded := config.GetPromptsForOperation(operation)

	switch operation {
	case "parse":
		if loaded.SystemPrompts.ParseResume != "" {
			return loaded.SystemPrompts.ParseResume
		}
		if cfg.CustomPrompts.SystemPrompts.ParseResume != "" {
			return cfg.CustomPrompts.SystemPrompts.ParseResume
		}
		return DefaultSystemPrompts.ParseResume
	case "rewrite":
		if loaded.SystemPrompts.RewriteResume != "" {
			return loaded.SystemPrompts.RewriteResume
		}
		if cfg.CustomPrompts.SystemPrompts.RewriteResume != "" {
			return cfg.CustomPrompts.SystemPrompts.RewriteResume
		}
		return DefaultSystemPrompts.RewriteResume
	case "coverletter":
		if loaded.SystemPrompts.CoverLetter != "" {
			return loaded.SystemPrompts.CoverLetter
		}
		if cfg.CustomPrompts.SystemPrompts.CoverLetter != "" {
			return cfg.CustomPrompts.SystemPrompts.CoverLetter
		}
		return DefaultSystemPrompts.CoverLetter
	case "interview":
		if loaded.SystemPrompts.InterviewQuestions != "" {
			return loaded.SystemPrompts.InterviewQuestions
		}
		if cfg.CustomPrompts.SystemPrompts.InterviewQuestions != "" {
			return cfg.CustomPrompts.SystemPrompts.InterviewQuestions
		}
		return DefaultSystemPrompts.InterviewQuestions
	}
	return ""
}

// resolveUserPrompt picks the user prompt template for an operation.
// Same priority as resolveSystemPrompt. Custom templates must keep the
// placeholder arity of the defaults.
func resolveUserPrompt(operation string, cfg *config.OperationAIConfig) string {
	loaded := config.GetPromptsForOperation(operation)

	switch operation {
	case "parse":
		if loaded.UserPrompts.ParseResume != "" {
			return loaded.UserPrompts.ParseResume
		}
		if cfg.CustomPrompts.UserPrompts.ParseResume != "" {
			return cfg.CustomPrompts.UserPrompts.ParseResume
		}
		return DefaultUserPrompts.ParseResume
	case "rewrite":
		if loaded.UserPrompts.RewriteResume != "" {
			return loaded.UserPrompts.RewriteResume
		}
		if cfg.CustomPrompts.UserPrompts.RewriteResume != "" {
			return cfg.CustomPrompts.UserPrompts.RewriteResume
		}
		return DefaultUserPrompts.RewriteResume
	case "coverletter":
		if loaded.UserPrompts.CoverLetter != "" {
			return loaded.UserPrompts.CoverLetter
		}
		if cfg.CustomPrompts.UserPrompts.CoverLetter != "" {
			return cfg.CustomPrompts.UserPrompts.CoverLetter
		}
		return DefaultUserPrompts.CoverLetter
	case "interview":
		if loaded.UserPrompts.InterviewQuestions != "" {
			return loaded.UserPrompts.InterviewQuestions
		}
		if cfg.CustomPrompts.UserPrompts.InterviewQuestions != "" {
			return cfg.CustomPrompts.UserPrompts.InterviewQuestions
		}
		return DefaultUserPrompts.InterviewQuestions
	}
	return ""
}
