package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// GetLoadedPrompts returns the loaded prompt content in a thread-safe way
func GetLoadedPrompts() *AllLoadedPrompts {
	return &loadedPrompts
}

// loadPromptsFromFiles loads custom prompts from external files if file paths are specified
func (c *Config) loadPromptsFromFiles() error {
	log.Println("[CONFIG] Starting custom prompt loading from files")

	// Initialize loaded prompts exactly once
	loadedPromptsOnce.Do(func() {
		loadedPrompts = AllLoadedPrompts{}
	})

	// Load global prompts
	if err := c.loadSystemPromptsFromFiles(&c.AI.CustomPrompts.SystemPrompts, &loadedPrompts.Global.SystemPrompts); err != nil {
		return fmt.Errorf("failed to load global system prompts: %w", err)
	}
	if err := c.loadUserPromptsFromFiles(&c.AI.CustomPrompts.UserPrompts, &loadedPrompts.Global.UserPrompts); err != nil {
		return fmt.Errorf("failed to load global user prompts: %w", err)
	}

	// Load operation-specific prompts
	operations := []struct {
		name   string
		config *OperationAIConfig
		target *OperationLoadedPrompts
	}{
		{"parse", &c.AI.Parse, &loadedPrompts.Parse},
		{"rewrite", &c.AI.Rewrite, &loadedPrompts.Rewrite},
		{"coverletter", &c.AI.CoverLetter, &loadedPrompts.CoverLetter},
		{"interview", &c.AI.Interview, &loadedPrompts.Interview},
	}

	for _, op := range operations {
		if err := c.loadSystemPromptsFromFiles(&op.config.CustomPrompts.SystemPrompts, &op.target.SystemPrompts); err != nil {
			return fmt.Errorf("failed to load %s system prompts: %w", op.name, err)
		}
		if err := c.loadUserPromptsFromFiles(&op.config.CustomPrompts.UserPrompts, &op.target.UserPrompts); err != nil {
			return fmt.Errorf("failed to load %s user prompts: %w", op.name, err)
		}
	}

	// Log summary of prompt sources after loading
	c.logPromptLoadingSummary()

	return nil
}

// loadSystemPromptsFromFiles loads system prompts from files if file paths are specified
func (c *Config) loadSystemPromptsFromFiles(prompts *SystemPrompts, target *LoadedSystemPrompts) error {
	entries := []struct {
		file      string
		operation string
		target    *string
	}{
		{prompts.ParseResumeFile, "parseResume", &target.ParseResume},
		{prompts.RewriteResumeFile, "rewriteResume", &target.RewriteResume},
		{prompts.CoverLetterFile, "coverLetter", &target.CoverLetter},
		{prompts.InterviewQuestionsFile, "interviewQuestions", &target.InterviewQuestions},
	}

	for _, entry := range entries {
		if entry.file == "" {
			continue
		}
		content, err := c.loadPromptFromFile(entry.file, "system", entry.operation)
		if err != nil {
			return err
		}
		*entry.target = content
	}

	return nil
}

// loadUserPromptsFromFiles loads user prompts from files if file paths are specified
func (c *Config) loadUserPromptsFromFiles(prompts *UserPrompts, target *LoadedUserPrompts) error {
	entries := []struct {
		file      string
		operation string
		target    *string
	}{
		{prompts.ParseResumeFile, "parseResume", &target.ParseResume},
		{prompts.RewriteResumeFile, "rewriteResume", &target.RewriteResume},
		{prompts.CoverLetterFile, "coverLetter", &target.CoverLetter},
		{prompts.InterviewQuestionsFile, "interviewQuestions", &target.InterviewQuestions},
	}

	for _, entry := range entries {
		if entry.file == "" {
			continue
		}
		content, err := c.loadPromptFromFile(entry.file, "user", entry.operation)
		if err != nil {
			return err
		}
		*entry.target = content
	}

	return nil
}

// loadPromptFromFile loads a prompt from a file with proper error handling and logging
func (c *Config) loadPromptFromFile(filePath, promptType, operation string) (string, error) {
	// Resolve relative paths
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to resolve absolute path for %s %s prompt file '%s': %w", promptType, operation, filePath, err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return "", fmt.Errorf("%s %s prompt file not found: %s", promptType, operation, absPath)
	}

	// Read file content
	content, err := os.ReadFile(absPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s %s prompt file '%s': %w", promptType, operation, absPath, err)
	}

	// Validate content is not empty
	trimmedContent := strings.TrimSpace(string(content))
	if trimmedContent == "" {
		return "", fmt.Errorf("%s %s prompt file '%s' is empty", promptType, operation, absPath)
	}

	// Log successful loading
	log.Printf("[CONFIG] Successfully loaded %s %s prompt from file: %s (%d characters)",
		promptType, operation, absPath, len(trimmedContent))

	return trimmedContent, nil
}

// validatePromptFiles validates that prompt files exist and are readable before loading
func (c *Config) validatePromptFiles() error {
	var validationErrors []string

	// Helper function to validate a file path
	validateFile := func(filePath, promptType, operation string) {
		if filePath == "" {
			return // No file specified, skip validation
		}

		absPath, err := filepath.Abs(filePath)
		if err != nil {
			validationErrors = append(validationErrors, fmt.Sprintf("invalid path for %s %s prompt: %s", promptType, operation, filePath))
			return
		}

		if _, err := os.Stat(absPath); os.IsNotExist(err) {
			validationErrors = append(validationErrors, fmt.Sprintf("%s %s prompt file not found: %s", promptType, operation, absPath))
		}
	}

	validatePromptSet := func(scope string, prompts *PromptConfig) {
		validateFile(prompts.SystemPrompts.ParseResumeFile, scope+" system", "parseResume")
		validateFile(prompts.SystemPrompts.RewriteResumeFile, scope+" system", "rewriteResume")
		validateFile(prompts.SystemPrompts.CoverLetterFile, scope+" system", "coverLetter")
		validateFile(prompts.SystemPrompts.InterviewQuestionsFile, scope+" system", "interviewQuestions")
		validateFile(prompts.UserPrompts.ParseResumeFile, scope+" user", "parseResume")
		validateFile(prompts.UserPrompts.RewriteResumeFile, scope+" user", "rewriteResume")
		validateFile(prompts.UserPrompts.CoverLetterFile, scope+" user", "coverLetter")
		validateFile(prompts.UserPrompts.InterviewQuestionsFile, scope+" user", "interviewQuestions")
	}

	validatePromptSet("global", &c.AI.CustomPrompts)
	validatePromptSet("parse", &c.AI.Parse.CustomPrompts)
	validatePromptSet("rewrite", &c.AI.Rewrite.CustomPrompts)
	validatePromptSet("coverletter", &c.AI.CoverLetter.CustomPrompts)
	validatePromptSet("interview", &c.AI.Interview.CustomPrompts)

	if len(validationErrors) > 0 {
		return fmt.Errorf("prompt file validation failed:\n%s", strings.Join(validationErrors, "\n"))
	}

	return nil
}

// logPromptLoadingSummary logs a summary of loaded prompts
func (c *Config) logPromptLoadingSummary() {
	log.Println("[CONFIG] === Custom Prompt Loading Summary ===")

	promptCount := 0

	logSet := func(scope string, prompts OperationLoadedPrompts) {
		checks := []struct {
			content string
			label   string
		}{
			{prompts.SystemPrompts.ParseResume, "system parse"},
			{prompts.SystemPrompts.RewriteResume, "system rewrite"},
			{prompts.SystemPrompts.CoverLetter, "system cover letter"},
			{prompts.SystemPrompts.InterviewQuestions, "system interview"},
			{prompts.UserPrompts.ParseResume, "user parse"},
			{prompts.UserPrompts.RewriteResume, "user rewrite"},
			{prompts.UserPrompts.CoverLetter, "user cover letter"},
			{prompts.UserPrompts.InterviewQuestions, "user interview"},
		}
		for _, check := range checks {
			if check.content != "" {
				log.Printf("[CONFIG] %s %s prompt: loaded from config/file", scope, check.label)
				promptCount++
			}
		}
	}

	logSet("Global", OperationLoadedPrompts{
		SystemPrompts: loadedPrompts.Global.SystemPrompts,
		UserPrompts:   loadedPrompts.Global.UserPrompts,
	})
	logSet("Parse-specific", loadedPrompts.Parse)
	logSet("Rewrite-specific", loadedPrompts.Rewrite)
	logSet("CoverLetter-specific", loadedPrompts.CoverLetter)
	logSet("Interview-specific", loadedPrompts.Interview)

	if promptCount == 0 {
		log.Println("[CONFIG] No custom prompts loaded - using built-in defaults")
	} else {
		log.Printf("[CONFIG] Total custom prompts loaded: %d", promptCount)
	}

	log.Println("[CONFIG] ==========================================")
}
