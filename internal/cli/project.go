package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/iwvelando/housing-advisor/internal/advice"
	"github.com/iwvelando/housing-advisor/internal/config"
	"github.com/iwvelando/housing-advisor/internal/report"
	"github.com/iwvelando/housing-advisor/internal/scenario"
	"github.com/iwvelando/housing-advisor/pkg/constants"
	"github.com/iwvelando/housing-advisor/pkg/validation"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type projectOptions struct {
	configPath   string
	outputFormat string
}

func newProjectCommand(root *rootOptions) *cobra.Command {
	opts := &projectOptions{}

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Project the cost of buying against renting and investing",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProject(cmd, root, opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", constants.DefaultConfigFile, "path to configuration file")
	cmd.Flags().StringVar(&opts.outputFormat, "output-format", "", "type of output override: pretty, csv")
	return cmd
}

// loadProjectConfiguration reads the configuration file. A missing default
// file falls back to the built-in defaults, an explicitly named one does not.
func loadProjectConfiguration(path string, explicit bool) (*config.Configuration, error) {
	conf, err := config.LoadConfiguration(path)
	if err == nil {
		return conf, nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return config.Default()
	}
	return nil, err
}

func runProject(cmd *cobra.Command, root *rootOptions, opts *projectOptions) error {
	conf, err := loadProjectConfiguration(opts.configPath, cmd.Flags().Changed("config"))
	if err != nil {
		return fmt.Errorf("failed to load configuration at %s: %w", opts.configPath, err)
	}

	logger, err := initializeLogger(conf.Logging, root.logLevel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync()
	}()

	// CLI override takes precedence over config
	outputFormat := conf.Output.Format
	if opts.outputFormat != "" {
		outputFormat = opts.outputFormat
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return err
	}

	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "cli.project"),
		)
	}

	summary, err := scenario.NewComparator(logger).Compare(conf.ToInputs())
	if err != nil {
		logger.Error("failed to compute projection",
			zap.String("op", "cli.project"),
			zap.Error(err),
		)
		return err
	}
	for _, warning := range summary.Warnings {
		logger.Warn(warning, zap.String("op", "cli.project"))
	}

	switch outputFormat {
	case constants.OutputFormatCSV:
		return report.CSV(cmd.OutOrStdout(), summary)
	default:
		return report.Pretty(cmd.OutOrStdout(), summary, advice.Generate(summary))
	}
}
