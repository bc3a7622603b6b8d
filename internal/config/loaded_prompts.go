package config

import (
	"sync"
)

var (
	loadedPrompts     AllLoadedPrompts
	loadedPromptsOnce sync.Once
)

// LoadedPrompts holds the content of prompts loaded from files
type LoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// LoadedSystemPrompts contains loaded system-level instructions
type LoadedSystemPrompts struct {
	ParseResume        string
	RewriteResume      string
	CoverLetter        string
	InterviewQuestions string
}

// LoadedUserPrompts contains loaded user-level prompt templates
type LoadedUserPrompts struct {
	ParseResume        string
	RewriteResume      string
	CoverLetter        string
	InterviewQuestions string
}

// OperationLoadedPrompts holds loaded prompts for a specific operation
type OperationLoadedPrompts struct {
	SystemPrompts LoadedSystemPrompts
	UserPrompts   LoadedUserPrompts
}

// AllLoadedPrompts holds all loaded prompts for all operations
type AllLoadedPrompts struct {
	Global      LoadedPrompts
	Parse       OperationLoadedPrompts
	Rewrite     OperationLoadedPrompts
	CoverLetter OperationLoadedPrompts
	Interview   OperationLoadedPrompts
}

// GetPromptsForOperation returns a copy of the loaded prompts for an operation type
func GetPromptsForOperation(operationType string) OperationLoadedPrompts {
	switch operationType {
	case "parse":
		return loadedPrompts.Parse
	case "rewrite":
		return loadedPrompts.Rewrite
	case "coverletter":
		return loadedPrompts.CoverLetter
	case "interview":
		return loadedPrompts.Interview
	default:
		return OperationLoadedPrompts{
			SystemPrompts: loadedPrompts.Global.SystemPrompts,
			UserPrompts:   loadedPrompts.Global.UserPrompts,
		}
	}
}
