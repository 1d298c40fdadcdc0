package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"larder/internal/catalog"
	"larder/internal/config"
)

func newConfigCommand(ctx *commandContext) *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Show or create the larder configuration",
	}
	configCmd.AddCommand(newConfigValidateCommand(ctx))
	configCmd.AddCommand(newConfigInitCommand())
	return configCmd
}

func newConfigInitCommand() *cobra.Command {
	var targetPath string
	var overwrite bool

	cmd := &cobra.Command{
		Use:         "init",
		Short:       "Write a sample configuration file",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := configTarget(targetPath)
			if err != nil {
				return err
			}
			if err := config.CreateSample(target, overwrite); err != nil {
				if errors.Is(err, os.ErrExist) {
					return catalog.Wrap(catalog.ErrConflict, "config init", target+" already exists (use --overwrite to replace it)", nil)
				}
				return catalog.Wrap(catalog.ErrStorageIO, "config init", "", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", target)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetPath, "path", "p", "", "Destination for the configuration file")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "Replace an existing configuration file")
	return cmd
}

func configTarget(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return config.DefaultConfigPath()
	}
	return config.ExpandPath(raw)
}

// configReport is what `config validate` prints about the effective settings.
type configReport struct {
	ConfigPath     string `json:"config_path"`
	ConfigFound    bool   `json:"config_found"`
	Database       string `json:"database"`
	DatabaseExists bool   `json:"database_exists"`
	Output         string `json:"output_format"`
	LogLevel       string `json:"log_level"`
	LogFormat      string `json:"log_format"`
	LogFile        string `json:"log_file,omitempty"`
}

func newConfigValidateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:         "validate",
		Short:       "Check the configuration and show where the catalog lives",
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if ctx.configFlag != nil {
				path = strings.TrimSpace(*ctx.configFlag)
			}
			cfg, resolved, exists, err := config.Load(path)
			if err != nil {
				return catalog.Wrap(catalog.ErrInvalidInput, "config validate", path, err)
			}
			_, statErr := os.Stat(cfg.Paths.Database)
			report := configReport{
				ConfigPath:     resolved,
				ConfigFound:    exists,
				Database:       cfg.Paths.Database,
				DatabaseExists: statErr == nil,
				Output:         cfg.Output.Format,
				LogLevel:       cfg.Logging.Level,
				LogFormat:      cfg.Logging.Format,
				LogFile:        cfg.Logging.File,
			}

			format := cfg.Output.Format
			if ctx.formatFlag != nil && strings.TrimSpace(*ctx.formatFlag) != "" {
				format = strings.ToLower(strings.TrimSpace(*ctx.formatFlag))
			}
			if format == formatJSON {
				return writeJSON(cmd.OutOrStdout(), report)
			}
			return writeConfigReport(cmd.OutOrStdout(), report)
		},
	}
}

func writeConfigReport(w io.Writer, r configReport) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Config path: %s\n", r.ConfigPath)
	if !r.ConfigFound {
		b.WriteString("Config file did not exist; defaults were used\n")
	}
	state := "created on first use"
	if r.DatabaseExists {
		state = "present"
	}
	fmt.Fprintf(&b, "Database: %s (%s)\n", r.Database, state)
	fmt.Fprintf(&b, "Output: %s\n", r.Output)
	logging := r.LogLevel + " " + r.LogFormat
	if r.LogFile != "" {
		logging += ", also written to " + r.LogFile
	}
	fmt.Fprintf(&b, "Logging: %s\n", logging)
	b.WriteString("Configuration valid\n")
	_, err := io.WriteString(w, b.String())
	return err
}
