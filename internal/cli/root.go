package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"resumeforge/internal/config"
	"resumeforge/internal/errors"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

// Define custom private types for context keys.
type configKeyType struct{}
type loggerKeyType struct{}

// Use variables of these types as the keys.
var configKey = configKeyType{}
var loggerKey = loggerKeyType{}

var rootCmd = &cobra.Command{
	Use:   "resumeforge",
	Short: "A CLI tool for scoring and optimizing resumes using AI",
	Long: `ResumeForge is a command-line tool that scores resumes against job
descriptions the way applicant tracking systems do, and uses AI to parse raw
resume text, optimize resumes for specific openings, and generate cover
letters and interview preparation questions.`,
}

func Execute(ctx context.Context, cfg *config.Config, logger *errors.Logger) error {
	// Attach the config and logger to the context, making them available to all subcommands
	ctx = context.WithValue(ctx, configKey, cfg)
	ctx = context.WithValue(ctx, loggerKey, logger)
	rootCmd.SetContext(ctx)
	return rootCmd.Execute()
}

// getConfigFromContext is a helper function to get config from context
func getConfigFromContext(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey).(*config.Config); ok {
		return cfg
	}
	panic("config not found in context") // Should not happen if properly initialized
}

// getLoggerFromContext is a helper function to get logger from context
func getLoggerFromContext(ctx context.Context) *errors.Logger {
	if logger, ok := ctx.Value(loggerKey).(*errors.Logger); ok {
		return logger
	}
	panic("logger not found in context") // Should not happen if properly initialized
}

// loadProfile decodes a structured resume profile from file content
func loadProfile(content string) (types.ResumeProfile, error) {
	profile := types.EmptyProfile()
	if err := json.Unmarshal([]byte(content), &profile); err != nil {
		return types.EmptyProfile(), fmt.Errorf("resume file is not valid profile JSON: %w", err)
	}
	return profile, nil
}

func init() {
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(rewriteCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(coverLetterCmd)
	rootCmd.AddCommand(interviewCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
}
