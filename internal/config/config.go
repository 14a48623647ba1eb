// Package config provides configuration management for scanview. It defines
// the YAML file layout, its defaults and validation, and converts settings
// into the option types of the ingest, view and export packages.
package config

import (
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/anstrom/scanview/internal/errors"
	"github.com/anstrom/scanview/internal/export"
	"github.com/anstrom/scanview/internal/ingest"
	"github.com/anstrom/scanview/internal/logging"
	"github.com/anstrom/scanview/internal/view"
)

// Config represents the complete scanview configuration
type Config struct {
	// Logging configuration
	Logging LoggingConfig `yaml:"logging" json:"logging" mapstructure:"logging"`

	// Scan file ingestion
	Ingest IngestConfig `yaml:"ingest" json:"ingest" mapstructure:"ingest"`

	// Initial view settings
	View ViewConfig `yaml:"view" json:"view" mapstructure:"view"`

	// Export destinations
	Export ExportConfig `yaml:"export" json:"export" mapstructure:"export"`

	// Metrics output
	Metrics MetricsConfig `yaml:"metrics" json:"metrics" mapstructure:"metrics"`
}

// LoggingConfig holds logging settings
type LoggingConfig struct {
	// Log level (debug, info, warn, error)
	Level string `yaml:"level" json:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// Log format (text, json)
	Format string `yaml:"format" json:"format" mapstructure:"format" validate:"oneof=text json"`

	// Log output (stdout, stderr, file path)
	Output string `yaml:"output" json:"output" mapstructure:"output"`

	// Include source locations
	AddSource bool `yaml:"add_source" json:"add_source" mapstructure:"add_source"`
}

// IngestConfig holds scan file parsing settings
type IngestConfig struct {
	// Files parsed concurrently
	Workers int `yaml:"workers" json:"workers" mapstructure:"workers" validate:"min=1,max=64"`

	// Largest accepted scan file in bytes
	MaxFileBytes int64 `yaml:"max_file_bytes" json:"max_file_bytes" mapstructure:"max_file_bytes" validate:"min=1"`
}

// ViewConfig holds the initial filter mode and sort
type ViewConfig struct {
	Mode    string `yaml:"mode" json:"mode" mapstructure:"mode" validate:"oneof=and or"`
	SortKey string `yaml:"sort_key" json:"sort_key" mapstructure:"sort_key" validate:"oneof=none ip hostname portCount"`
	SortDir string `yaml:"sort_dir" json:"sort_dir" mapstructure:"sort_dir" validate:"oneof=asc desc"`
}

// ExportConfig holds default export settings
type ExportConfig struct {
	ReportTitle  string `yaml:"report_title" json:"report_title" mapstructure:"report_title" validate:"required"`
	ReportFile   string `yaml:"report_file" json:"report_file" mapstructure:"report_file" validate:"required"`

	// Default targets of the text exports; empty means stdout
	HostsFile    string `yaml:"hosts_file" json:"hosts_file" mapstructure:"hosts_file"`
	CommandsFile string `yaml:"commands_file" json:"commands_file" mapstructure:"commands_file"`

	// Add an extra-info column to report tables
	ShowExtra bool `yaml:"show_extra" json:"show_extra" mapstructure:"show_extra"`
}

// MetricsConfig holds the Prometheus textfile settings
type MetricsConfig struct {
	Enabled  bool   `yaml:"enabled" json:"enabled" mapstructure:"enabled"`
	Textfile string `yaml:"textfile" json:"textfile" mapstructure:"textfile" validate:"required_if=Enabled true"`
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:  string(logging.LevelWarn),
			Format: string(logging.FormatText),
			Output: "stderr",
		},
		Ingest: IngestConfig{
			Workers:      ingest.DefaultWorkers,
			MaxFileBytes: ingest.DefaultMaxFileBytes,
		},
		View: ViewConfig{
			Mode:    string(view.ModeOr),
			SortKey: string(view.SortNone),
			SortDir: string(view.Asc),
		},
		Export: ExportConfig{
			ReportTitle: export.DefaultReportTitle,
			ReportFile:  export.DefaultReportFile,
		},
		Metrics: MetricsConfig{
			Enabled:  false,
			Textfile: "",
		},
	}
}

// Load loads configuration from a file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	config := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path comes from the command line
	if err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration, "failed to read config file", err)
	}

	// JSON is a subset of YAML, so one decoder serves both extensions.
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, errors.WrapConfigError(errors.CodeConfiguration,
			fmt.Sprintf("failed to parse config %s", filepath.Base(path)), err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Save saves configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "failed to create config directory", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "failed to marshal config", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return errors.WrapConfigError(errors.CodeConfiguration, "failed to write config file", err)
	}

	return nil
}

// Validate validates the configuration. The first failing field is reported.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if stderrors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return errors.ErrConfigInvalid(fieldPath(fe.Namespace()), fe.Value())
	}
	return errors.WrapConfigError(errors.CodeValidation, "invalid configuration", err)
}

// fieldPath turns "Config.Ingest.Workers" into "ingest.workers".
func fieldPath(namespace string) string {
	parts := strings.Split(namespace, ".")
	if len(parts) > 1 {
		parts = parts[1:]
	}
	return strings.ToLower(strings.Join(parts, "."))
}

// LoggingConfig returns the logger configuration
func (c *Config) LoggingConfig() logging.Config {
	return logging.Config{
		Level:     logging.LogLevel(c.Logging.Level),
		Format:    logging.LogFormat(c.Logging.Format),
		Output:    c.Logging.Output,
		AddSource: c.Logging.AddSource,
	}
}

// IngestOptions returns the batch parse options
func (c *Config) IngestOptions() ingest.Options {
	return ingest.Options{
		Workers:      c.Ingest.Workers,
		MaxFileBytes: c.Ingest.MaxFileBytes,
	}
}

// ViewState returns the initial view state with no filters
func (c *Config) ViewState() view.State {
	return view.State{
		Mode:    view.Mode(c.View.Mode),
		SortKey: view.SortKey(c.View.SortKey),
		SortDir: view.Direction(c.View.SortDir),
	}
}

// ReportOptions returns the PDF report options
func (c *Config) ReportOptions() export.ReportOptions {
	return export.ReportOptions{
		Title:     c.Export.ReportTitle,
		ShowExtra: c.Export.ShowExtra,
	}
}
