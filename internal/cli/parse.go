package cli

import (
	"context"
	"fmt"
	"strings"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/extract"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [resume-text-file]",
	Short: "Parse raw resume text into a structured profile",
	Long: `Parse raw resume text into a structured profile using AI. The command
takes one argument: the path to a plain text resume file. The output is a
profile JSON document suitable for the score, rewrite, and render commands.`,
	Args: cobra.ExactArgs(1),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if parseConfig.OutputFormat == "" {
			parseConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(parseConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runParse,
}

var parseConfig common.CommandConfig

func init() {
	parseCmd.Flags().StringVarP(&parseConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	parseCmd.Flags().StringVar(&parseConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = parseCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runParse(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for parse operation
	parseAIConfig := cfg.GetParseConfig()
	aiService, err := ai.NewService(&parseAIConfig, "parse", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	extractor := extract.New(logger)

	createInput := func(contents []string) (string, error) {
		if len(contents) != 1 {
			return "", fmt.Errorf("expected 1 file path, got %d", len(contents))
		}
		rawText := extractor.Extract(args[0], []byte(contents[0]))
		if strings.TrimSpace(rawText) == "" {
			return "", fmt.Errorf("no text could be extracted from %s", args[0])
		}
		return rawText, nil
	}

	logDetails := func(input string, cfg common.CommandConfig) {
		logger.Info("Starting resume parsing",
			"resume_chars", len(input),
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	parseOperation := func(ctx context.Context, rawText string) (types.ResumeProfile, *ai.TokenUsage, error) {
		return aiService.ParseResume(ctx, rawText)
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		parseConfig,
		args,
		createInput,
		parseOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to parse resume: %w", err)
	}
	logger.Info("Resume parsing completed successfully")
	return nil
}
