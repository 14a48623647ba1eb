// Package cli provides the command-line interface for scanview, a viewer for
// nmap XML scan results. It implements the Cobra-based command tree for
// viewing, filtering and exporting merged scan files.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/anstrom/scanview/internal/config"
	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/logging"
	"github.com/anstrom/scanview/internal/metrics"
)

const envPrefix = "SCANVIEW"

var (
	cfgFile     string
	verbose     bool
	metricsFile string

	// appConfig is resolved once per invocation by initConfig.
	appConfig = config.Default()

	recorder     metrics.Recorder = metrics.NopRecorder{}
	promRecorder *metrics.PrometheusRecorder
)

// Build information - these will be set by ldflags during build.
var (
	version   = "dev"
	commit    = "none"
	buildTime = "unknown"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "scanview",
	Short: "Nmap XML scan viewer",
	Long: `scanview loads one or more nmap XML output files, merges them into a
single host list without duplicates, and lets you filter, sort and export
the result as a PDF report, a hosts file or follow-up nmap commands.`,
	Version:       getVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return writeMetrics()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", describeError(err))
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./scanview.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVar(&metricsFile, "metrics-file", "",
		"write Prometheus metrics in text format to this file after the command")

	bindFlags()
}

// bindFlags binds global flags to viper keys.
func bindFlags() {
	if err := viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind verbose flag: %v\n", err)
	}
	if err := viper.BindPFlag("metrics.textfile", rootCmd.PersistentFlags().Lookup("metrics-file")); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to bind metrics-file flag: %v\n", err)
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("scanview")
	}

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setConfigDefaults(config.Default())

	if err := viper.ReadInConfig(); err == nil {
		if verbose {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	} else if cfgFile != "" {
		fmt.Fprintf(os.Stderr, "Warning: cannot read config file %s: %v\n", cfgFile, err)
	}

	cfg, err := resolveConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %s, using defaults\n", describeError(err))
		cfg = config.Default()
	}
	appConfig = cfg

	initLogging()
	initMetrics()
}

// setConfigDefaults registers every configuration key so environment
// variables can override keys absent from the config file.
func setConfigDefaults(d *config.Config) {
	// Logging configuration
	viper.SetDefault("logging.level", d.Logging.Level)
	viper.SetDefault("logging.format", d.Logging.Format)
	viper.SetDefault("logging.output", d.Logging.Output)
	viper.SetDefault("logging.add_source", d.Logging.AddSource)

	// Ingest configuration
	viper.SetDefault("ingest.workers", d.Ingest.Workers)
	viper.SetDefault("ingest.max_file_bytes", d.Ingest.MaxFileBytes)

	// View configuration
	viper.SetDefault("view.mode", d.View.Mode)
	viper.SetDefault("view.sort_key", d.View.SortKey)
	viper.SetDefault("view.sort_dir", d.View.SortDir)

	// Export configuration
	viper.SetDefault("export.report_title", d.Export.ReportTitle)
	viper.SetDefault("export.report_file", d.Export.ReportFile)
	viper.SetDefault("export.hosts_file", d.Export.HostsFile)
	viper.SetDefault("export.commands_file", d.Export.CommandsFile)
	viper.SetDefault("export.show_extra", d.Export.ShowExtra)

	// Metrics configuration
	viper.SetDefault("metrics.enabled", d.Metrics.Enabled)
	viper.SetDefault("metrics.textfile", d.Metrics.Textfile)
}

// resolveConfig decodes the merged viper settings into a validated Config.
func resolveConfig() (*config.Config, error) {
	cfg := config.Default()
	if err := viper.Unmarshal(cfg); err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration, "failed to decode configuration", err)
	}
	if cfg.Metrics.Textfile != "" {
		cfg.Metrics.Enabled = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// getVersion returns the version string.
func getVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime)
}

// SetVersion sets the version information (called from main).
func SetVersion(v, c, bt string) {
	version = v
	commit = c
	buildTime = bt
	rootCmd.Version = getVersion()
}

// initLogging initializes structured logging based on configuration.
func initLogging() {
	logConfig := appConfig.LoggingConfig()
	if verbose && logConfig.Level != logging.LevelDebug {
		logConfig.Level = logging.LevelInfo
	}

	logger, err := logging.New(logConfig)
	if err != nil {
		logger = logging.NewDefault()
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logging: %v\n", err)
	}
	logging.SetDefault(logger)

	if verbose {
		logging.Info("Structured logging initialized", "level", logConfig.Level, "format", logConfig.Format)
	}
}

func initMetrics() {
	if !appConfig.Metrics.Enabled {
		promRecorder = nil
		recorder = metrics.NopRecorder{}
		return
	}
	promRecorder = metrics.NewPrometheusRecorder()
	recorder = promRecorder
}

func writeMetrics() error {
	if promRecorder == nil || appConfig.Metrics.Textfile == "" {
		return nil
	}
	return promRecorder.WriteTextfile(appConfig.Metrics.Textfile)
}

// describeError prefers the user-facing message of coded errors.
func describeError(err error) string {
	if errors.GetCode(err) == errors.CodeUnknown {
		return err.Error()
	}
	return errors.UserMessage(err)
}
