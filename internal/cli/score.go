package cli

import (
	"fmt"

	"resumeforge/internal/ats"
	"resumeforge/internal/common"

	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score [resume-file] [job-description-file]",
	Short: "Score a resume against a job description",
	Long: `Score a structured resume against a job description the way an
applicant tracking system would. The command takes two arguments: the path to
a resume profile JSON file and the path to the job description file. Scoring
is fully local and does not call any AI provider.`,
	Args: cobra.ExactArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := getConfigFromContext(cmd.Context())
		// Apply default format if not specified
		if scoreConfig.OutputFormat == "" {
			scoreConfig.OutputFormat = cfg.App.DefaultFormat
		}
		// Validate format against supported formats
		return common.ValidateOutputFormat(scoreConfig.OutputFormat, cfg.App.SupportedFormats)
	},
	RunE: runScore,
}

var scoreConfig common.CommandConfig

func init() {
	scoreCmd.Flags().StringVarP(&scoreConfig.OutputFile, "output", "o", "", "Output file path (default: stdout)")
	scoreCmd.Flags().StringVar(&scoreConfig.OutputFormat, "format", "", "Output format: json, text, or markdown")

	// Add completion for format flag
	_ = scoreCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		cfg := getConfigFromContext(cmd.Context())
		return common.GetSupportedFormats(cfg.App.SupportedFormats), cobra.ShellCompDirectiveNoFileComp
	})
}

func runScore(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)
	outputHandler := common.NewOutputHandler(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	resume, err := loadProfile(contents[0])
	if err != nil {
		return err
	}
	jobDescription := contents[1]

	logger.Info("Starting resume scoring",
		"job_chars", len(jobDescription),
		"output_format", scoreConfig.OutputFormat)

	result := ats.New().Score(&resume, jobDescription)

	if err := outputHandler.HandleOutput(result, scoreConfig); err != nil {
		return fmt.Errorf("failed to score resume: %w", err)
	}
	logger.Info("Resume scoring completed successfully", "ats_score", result.ATSScore)
	return nil
}
