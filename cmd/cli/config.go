package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/anstrom/scanview/internal/config"
	"github.com/anstrom/scanview/internal/errors"
)

const defaultConfigFile = "scanview.yaml"

var configForce bool

// configCmd represents the config command.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Create and check configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init [FILE]",
	Short: "Write the effective configuration to a file",
	Long: `Write the configuration currently in effect (defaults, config file and
SCANVIEW_ environment variables) as YAML. The default file is ./scanview.yaml.`,
	Example: `  scanview config init
  SCANVIEW_VIEW_SORT_KEY=ip scanview config init team.yaml --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:     "check FILE",
	Short:   "Validate a configuration file",
	Example: `  scanview config check scanview.yaml`,
	Args:    cobra.ExactArgs(1),
	RunE:    runConfigCheck,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := defaultConfigFile
	if len(args) == 1 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.NewConfigFieldError(errors.CodeConfiguration,
			"config file already exists, use --force to overwrite", "path", path)
	}
	if err := appConfig.Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Configuration written to %s\n", path)
	return nil
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	if _, err := os.Stat(path); err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "cannot read config file "+path, err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: valid (workers %d, sort %s %s, report %q)\n",
		path, cfg.Ingest.Workers, cfg.View.SortKey, cfg.View.SortDir, cfg.Export.ReportFile)
	return nil
}
