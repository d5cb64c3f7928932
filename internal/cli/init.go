package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdrefcheck/internal/configloader"
	"github.com/yaklabco/mdrefcheck/internal/logging"
)

type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a starter .mdrefcheck.yml",
		Long: `Create a commented .mdrefcheck.yml configuration file in the current
directory. When the file exists you are asked before it is replaced;
non-interactive runs require --force.

Examples:
  mdrefcheck init                     Create a minimal .mdrefcheck.yml
  mdrefcheck init --full              Document every rule and option
  mdrefcheck init --output ci.yml     Write to a custom path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd.Context(), cmd.InOrStdin(), cmd.ErrOrStderr(), flags, configloader.IsInteractive())
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "generate a full template with all rules documented")
	cmd.Flags().StringVarP(&flags.output, "output", "o", configloader.ProjectConfigFile, "output file path")

	return cmd
}

func runInit(ctx context.Context, in io.Reader, out io.Writer, flags *initFlags, interactive bool) error {
	logger := logging.NewInteractive()
	logger.SetOutput(out)

	path := flags.output
	if path == "" {
		path = configloader.ProjectConfigFile
	}

	err := configloader.WriteStarterConfig(ctx, path, flags.full, flags.force)
	if errors.Is(err, configloader.ErrConfigExists) {
		if !interactive {
			return fmt.Errorf("%w; use --force to overwrite", err)
		}
		overwrite, promptErr := configloader.PromptOverwrite(in, out, path)
		if promptErr != nil {
			return promptErr
		}
		if !overwrite {
			logger.Info("kept existing configuration", logging.FieldPath, path)
			return nil
		}
		err = configloader.WriteStarterConfig(ctx, path, flags.full, true)
	}
	if err != nil {
		return err
	}

	logger.Info("created configuration file", logging.FieldPath, path)
	logger.Info("run 'mdrefcheck rules' to see all available rules")

	return nil
}
