package cli

import (
	"context"
	"fmt"

	"resumeforge/internal/ai"
	"resumeforge/internal/common"
	"resumeforge/internal/types"

	"github.com/spf13/cobra"
)

var interviewCmd = &cobra.Command{
	Use:   "interview [resume-file] [job-description-file]",
	Short: "Generate likely interview questions for an opening",
	Long: `Generate likely interview questions for an opening using AI. The
command takes two arguments: the path to a resume profile JSON file and the
path to the job description file. Use --position to name the role.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if interviewConfig.OutputFormat == "" {
			interviewConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(interviewConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runInterview,
}

var interviewConfig common.CommandConfig
var interviewPosition string

func init() {
	interviewCmd.Flags().StringVarP(&interviewConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	interviewCmd.Flags().StringVar(&interviewConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")
	interviewCmd.Flags().StringVar(&interviewPosition, "position", "", "Position title to prepare for")

	// Add completion for format flag
	_ = interviewCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runInterview(cmd *cobra.Command, args []string) error {
	cfg := getConfigFromContext(cmd.Context())
	logger := getLoggerFromContext(cmd.Context())

	// Create AI service for interview operation
	interviewAIConfig := cfg.GetInterviewConfig()
	aiService, err := ai.NewService(&interviewAIConfig, "interview", logger)
	if err != nil {
		return fmt.Errorf("failed to create AI service: %w", err)
	}

	createInput := func(contents []string) (types.InterviewQuestionsRequest, error) {
		if len(contents) != 2 {
			return types.InterviewQuestionsRequest{}, fmt.Errorf("expected 2 file paths, got %d", len(contents))
		}
		resume, err := loadProfile(contents[0])
		if err != nil {
			return types.InterviewQuestionsRequest{}, err
		}
		return types.InterviewQuestionsRequest{
			Resume:         resume,
			JobDescription: contents[1],
			PositionTitle:  interviewPosition,
		}, nil
	}

	logDetails := func(input types.InterviewQuestionsRequest, cfg common.CommandConfig) {
		logger.Info("Starting interview question generation",
			"job_chars", len(input.JobDescription),
			"position", input.PositionTitle,
			"output_format", cfg.OutputFormat)
	}

	// Create a wrapper function that uses our specific AI service
	interviewOperation := func(ctx context.Context, input types.InterviewQuestionsRequest) (types.InterviewQuestionsResponse, *ai.TokenUsage, error) {
		questions, usage, err := aiService.GenerateInterviewQuestions(ctx, input)
		if err != nil {
			return types.InterviewQuestionsResponse{}, usage, err
		}
		return types.InterviewQuestionsResponse{Questions: questions}, usage, nil
	}

	err = common.RunAICommand(
		cmd.Context(),
		logger,
		interviewConfig,
		args,
		createInput,
		interviewOperation,
		logDetails,
	)

	if err != nil {
		return fmt.Errorf("failed to generate interview questions: %w", err)
	}
	logger.Info("Interview question generation completed successfully")
	return nil
}
