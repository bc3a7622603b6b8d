package config

import "os"

// applyOperationDefaults applies global defaults to operation-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = defaultModelForProvider(opCfg.Provider, c.AI.Model)
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = providerAPIKeyFromEnv(opCfg.Provider)
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// defaultModelForProvider picks a model when the operation does not name one.
// The global model only applies to the global provider; a different provider
// gets its own known default.
func defaultModelForProvider(provider, globalModel string) string {
	switch provider {
	case "anthropic":
		return "claude-sonnet-4-5"
	default:
		if globalModel != "" {
			return globalModel
		}
		return "gemini-2.0-flash"
	}
}

// providerAPIKeyFromEnv returns the provider's conventional API key variable
func providerAPIKeyFromEnv(provider string) string {
	switch provider {
	case "anthropic":
		return os.Getenv("ANTHROPIC_API_KEY")
	default:
		return os.Getenv("GEMINI_API_KEY")
	}
}

// GetParseConfig returns the AI configuration for parse operations with fallback to global config
func (c *Config) GetParseConfig() OperationAIConfig {
	config := c.AI.Parse

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply parse-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.ParseResume == "" {
		config.CustomPrompts.SystemPrompts.ParseResume = c.AI.CustomPrompts.SystemPrompts.ParseResume
	}
	if config.CustomPrompts.UserPrompts.ParseResume == "" {
		config.CustomPrompts.UserPrompts.ParseResume = c.AI.CustomPrompts.UserPrompts.ParseResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.ParseResumeFile == "" {
		config.CustomPrompts.SystemPrompts.ParseResumeFile = c.AI.CustomPrompts.SystemPrompts.ParseResumeFile
	}
	if config.CustomPrompts.UserPrompts.ParseResumeFile == "" {
		config.CustomPrompts.UserPrompts.ParseResumeFile = c.AI.CustomPrompts.UserPrompts.ParseResumeFile
	}

	return config
}

// GetRewriteConfig returns the AI configuration for rewrite operations with fallback to global config
func (c *Config) GetRewriteConfig() OperationAIConfig {
	config := c.AI.Rewrite

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply rewrite-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.RewriteResume == "" {
		config.CustomPrompts.SystemPrompts.RewriteResume = c.AI.CustomPrompts.SystemPrompts.RewriteResume
	}
	if config.CustomPrompts.UserPrompts.RewriteResume == "" {
		config.CustomPrompts.UserPrompts.RewriteResume = c.AI.CustomPrompts.UserPrompts.RewriteResume
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.RewriteResumeFile == "" {
		config.CustomPrompts.SystemPrompts.RewriteResumeFile = c.AI.CustomPrompts.SystemPrompts.RewriteResumeFile
	}
	if config.CustomPrompts.UserPrompts.RewriteResumeFile == "" {
		config.CustomPrompts.UserPrompts.RewriteResumeFile = c.AI.CustomPrompts.UserPrompts.RewriteResumeFile
	}

	return config
}

// GetCoverLetterConfig returns the AI configuration for cover letter operations with fallback to global config
func (c *Config) GetCoverLetterConfig() OperationAIConfig {
	config := c.AI.CoverLetter

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply cover-letter-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.CoverLetter == "" {
		config.CustomPrompts.SystemPrompts.CoverLetter = c.AI.CustomPrompts.SystemPrompts.CoverLetter
	}
	if config.CustomPrompts.UserPrompts.CoverLetter == "" {
		config.CustomPrompts.UserPrompts.CoverLetter = c.AI.CustomPrompts.UserPrompts.CoverLetter
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.CoverLetterFile == "" {
		config.CustomPrompts.SystemPrompts.CoverLetterFile = c.AI.CustomPrompts.SystemPrompts.CoverLetterFile
	}
	if config.CustomPrompts.UserPrompts.CoverLetterFile == "" {
		config.CustomPrompts.UserPrompts.CoverLetterFile = c.AI.CustomPrompts.UserPrompts.CoverLetterFile
	}

	return config
}

// GetInterviewConfig returns the AI configuration for interview question operations with fallback to global config
func (c *Config) GetInterviewConfig() OperationAIConfig {
	config := c.AI.Interview

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply interview-specific prompt fallbacks
	if config.CustomPrompts.SystemPrompts.InterviewQuestions == "" {
		config.CustomPrompts.SystemPrompts.InterviewQuestions = c.AI.CustomPrompts.SystemPrompts.InterviewQuestions
	}
	if config.CustomPrompts.UserPrompts.InterviewQuestions == "" {
		config.CustomPrompts.UserPrompts.InterviewQuestions = c.AI.CustomPrompts.UserPrompts.InterviewQuestions
	}
	// Also copy file paths for potential later loading
	if config.CustomPrompts.SystemPrompts.InterviewQuestionsFile == "" {
		config.CustomPrompts.SystemPrompts.InterviewQuestionsFile = c.AI.CustomPrompts.SystemPrompts.InterviewQuestionsFile
	}
	if config.CustomPrompts.UserPrompts.InterviewQuestionsFile == "" {
		config.CustomPrompts.UserPrompts.InterviewQuestionsFile = c.AI.CustomPrompts.UserPrompts.InterviewQuestionsFile
	}

	return config
}

// GetLoadedParsePrompts returns a copy of the loaded prompts for the parse operation
func (c *Config) GetLoadedParsePrompts() OperationLoadedPrompts {
	return loadedPrompts.Parse
}

// GetLoadedRewritePrompts returns a copy of the loaded prompts for the rewrite operation
func (c *Config) GetLoadedRewritePrompts() OperationLoadedPrompts {
	return loadedPrompts.Rewrite
}

// GetLoadedCoverLetterPrompts returns a copy of the loaded prompts for the cover letter operation
func (c *Config) GetLoadedCoverLetterPrompts() OperationLoadedPrompts {
	return loadedPrompts.CoverLetter
}

// GetLoadedInterviewPrompts returns a copy of the loaded prompts for the interview operation
func (c *Config) GetLoadedInterviewPrompts() OperationLoadedPrompts {
	return loadedPrompts.Interview
}

// GetLoadedGlobalPrompts returns a copy of the loaded global prompts
func (c *Config) GetLoadedGlobalPrompts() LoadedPrompts {
	return loadedPrompts.Global
}
