package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter [resume-file] [job-description-file]",
	Short: "Generate a cover letter for a specific opening",
	Long: `Generate a cover letter for a specific opening using AI. The command
takes two arguments: the path to a resume profile JSON file and the path to
the job description file. Use --company and --position to address the letter.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if coverLetterConfig.OutputFormat == "" {
			coverLetterConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(coverLetterConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runCoverLetter,
}

var coverLetterConfig common.CommandConfig
var coverLetterCompany string
var coverLetterPosition string

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	coverLetterCmd.Flags().StringVar(&coverLetterConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	coverLetterCmd.Flags().StringVar(&coverLetterCompany, "company", "", "Company name to address the letter to")
	coverLetterCmd.Flags().StringVar(&coverLetterPosition, "position", "", "Position title for the letter")

	// Add completion for format flag
	_ = coverLetterCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runCoverLetter(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for cover letter operation
	coverLetterAIConfig := cfg.GetCoverLetterConfig()
	aiService, err := ai.NewService(&coverLetterAIConfig, "coverletter", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.CoverLetterRequest, error) {
		if len(contents) != 2 {
			return types.CoverLetterRequest{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		resume, err := loadProfile(contents[0])
		if err != nil {
			return types.CoverLetterRequest{}, err
		}
		return types.CoverLetterRequest{
			Resume:         resume,
			JobDescription: contents[1],
			CompanyName:    coverLetterCompany,
			PositionTitle:  coverLetterPosition,
		}, nil
	}

	logDetails := func(input types.CoverLetterRequest, cfg common.CommandConfig) {
		logger.Info("Starting cover letter generation",
			"job_chars", len(input.JobDescription),
			"company", input.CompanyName,
			"position", input.PositionTitle,
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	coverLetterOperation := func(ctx context.Context, input types.CoverLetterRequest) (types.CoverLetterResponse, *ai.TokenUsage, error) {
		letter, usage, err := aiService.GenerateCoverLetter(ctx, input)
		if err != nil {
			return types.CoverLetterResponse{}, usage, err
		}
		return types.CoverLetterResponse{CoverLetter: letter}, usage, nil
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		coverLetterConfig,
		args,
		createInput,
		coverLetterOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate cover letter: %w", err)
	}
	logger.Info("Cover letter generation completed successfully")
	return nil
}
