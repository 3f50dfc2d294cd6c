package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/pdf2html/config"
)

func (a *app) newConfigCmd() *cobra.Command {
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pdf2html configuration",
		Long: `Manage pdf2html configuration files and settings.

Configuration hierarchy (highest to lowest priority):
1. CLI flags
2. Environment variables (PDF2HTML_*)
3. .pdf2html.yaml sections next to the input
4. Config file (~/.pdf2html/config.yaml)
5. Defaults`,
	}

	configShowCmd := &cobra.Command{
		Use:   "show [input]",
		Short: "Show current configuration",
		Long: `Display the options that would be used, combining defaults, the config
file, environment variables and flags. With an input file, the matching
sections of its .pdf2html.yaml are applied as well.`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.runConfigShow,
	}

	configInitCmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize default configuration file",
		Long:  `Create a default configuration file at ~/.pdf2html/config.yaml, or at the path given with --config.`,
		Args:  cobra.NoArgs,
		RunE:  a.runConfigInit,
	}

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	return configCmd
}

func (a *app) runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var opts config.Options
	if len(args) == 1 {
		var err error
		if opts, err = a.optionsFor(args[0]); err != nil {
			return err
		}
	} else {
		opts = config.Defaults().Merge(layerFrom(a.file)).Merge(layerFrom(a.flags))
	}
	if err := opts.Validate(); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: %v\n", err)
	}

	if used := a.file.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Configuration file: %s\n\n", used)
		} else {
			fmt.Fprintf(cmd.ErrOrStderr(), "No configuration file found (using defaults)\n\n")
		}
	}

	yamlData, err := yaml.Marshal(opts)
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}
	_, err = out.Write(yamlData)
	return err
}

func (a *app) runConfigInit(cmd *cobra.Command, _ []string) (err error) {
	configPath, err := a.configPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return fmt.Errorf("config file already exists: %s\nUse 'pdf2html config show' to view it, or delete it first to recreate", configPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error checking config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	yamlData, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return fmt.Errorf("error marshaling config: %w", err)
	}

	f, err := os.Create(configPath)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close config file: %w", closeErr)
		}
	}()

	// Helper for writing with error checking
	printf := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(f, format, args...)
	}

	printf("# pdf2html configuration file\n")
	printf("#\n")
	printf("# Configuration hierarchy (highest to lowest priority):\n")
	printf("#   1. CLI flags\n")
	printf("#   2. Environment variables (PDF2HTML_*)\n")
	printf("#   3. %s sections next to the input\n", config.RCFileName)
	printf("#   4. This config file\n")
	printf("#   5. Built-in defaults\n")
	printf("#\n")
	printf("# leading, indent, left_margin and horiz_leeway are calibrated from each\n")
	printf("# document unless set here.\n\n")
	printf("%s", yamlData)
	if err != nil {
		return fmt.Errorf("error writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created default configuration: %s\n", configPath)
	return nil
}
