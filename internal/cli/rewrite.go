package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/ats"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [resume-file] [job-description-file]",
	Short: "Optimize a resume for a specific job description",
	Long: `Optimize a structured resume for a specific job description using AI.
The command takes two arguments: the path to a resume profile JSON file and
the path to the job description file. The optimized profile is rescored and
returned together with its fresh ATS analysis.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if rewriteConfig.OutputFormat == "" {
			rewriteConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(rewriteConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runRewrite,
}

var rewriteConfig common.CommandConfig

func init() {
	rewriteCmd.Flags().StringVarP(&rewriteConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	rewriteCmd.Flags().StringVar(&rewriteConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = rewriteCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runRewrite(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for rewrite operation
	rewriteAIConfig := cfg.GetRewriteConfig()
	aiService, err := ai.NewService(&rewriteAIConfig, "rewrite", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.RewriteRequest, error) {
		if len(contents) != 2 {
			return types.RewriteRequest{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		resume, err := loadProfile(contents[0])
		if err != nil {
			return types.RewriteRequest{}, err
		}
		return types.RewriteRequest{
			Resume:         resume,
			JobDescription: contents[1],
		}, nil
	}

	logDetails := func(input types.RewriteRequest, cfg common.CommandConfig) {
		logger.Info("Starting resume optimization",
			"job_chars", len(input.JobDescription),
			"output_format", cfg.OutputFormat)
	}

	scorer := ats.New()

	// Optimize the profile, then rescore the result locally
	rewriteOperation := func(ctx context.Context, input types.RewriteRequest) (types.RewriteResponse, *ai.TokenUsage, error) {
		rewritten, usage, err := aiService.RewriteResume(ctx, input.Resume, input.JobDescription)
		if err != nil {
			return types.RewriteResponse{}, usage, err
		}
		return types.RewriteResponse{
			Resume: rewritten,
			ATS:    scorer.Score(&rewritten, input.JobDescription),
		}, usage, nil
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		rewriteConfig,
		args,
		createInput,
		rewriteOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to optimize resume: %w", err)
	}
	logger.Info("Resume optimization completed successfully")
	return nil
}
