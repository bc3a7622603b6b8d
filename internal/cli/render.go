package cli

import (
	"fmt"

	"resumeforge/internal/common"
	"resumeforge/internal/render"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render [resume-file]",
	Short: "Render a resume profile to an HTML document",
	Long: `Render a structured resume profile to a standalone HTML document.
The command takes one argument: the path to a resume profile JSON file.
Rendering is fully local and does not call any AI provider.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var renderOutputFile string

func init() {
	renderCmd.Flags().StringVarP(&renderOutputFile, "output", "o", "", "Output file path (default: stdout)")
}

func runRender(cmd *cobra.Command, args []string) error {
	logger := getLoggerFromContext(cmd.Context())

	fileProcessor := common.NewFileProcessor(logger)

	contents, err := fileProcessor.ValidateAndReadFiles(args...)
	if err != nil {
		return err
	}

	resume, err := loadProfile(contents[0])
	if err != nil {
		return err
	}

	logger.Info("Starting resume rendering", "output_file", renderOutputFile)

	document := render.HTML(&resume)

	if renderOutputFile != "" {
		if err := fileProcessor.WriteFile(renderOutputFile, document); err != nil {
			return err
		}
		logger.Info("Rendered resume written successfully",
			"file", renderOutputFile, "document_bytes", len(document))
	} else {
		fmt.Print(document)
	}

	return nil
}
