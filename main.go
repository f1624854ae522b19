package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "sqltojpa <sqlFile> [namespace] [outputDir]",
		Short:         "Generate JPA entity classes from SQL CREATE TABLE statements",
		Version:       versionString(),
		Args:          cobra.MaximumNArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("SQL file required: sqltojpa <sqlFile> [namespace] [outputDir]")
			}
			cfg, err := resolveGeneratorConfig(configPath, args[1:])
			if err != nil {
				return err
			}
			_, err = runGenerate(args[0], cfg, newReporter(cmd.OutOrStdout(), cmd.ErrOrStderr()))
			return err
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a TOML or YAML generator config file")

	root.AddCommand(
		newInspectCmd(&configPath),
		newPreviewCmd(&configPath),
		newWatchCmd(&configPath),
		newVersionCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		newReporter(os.Stdout, os.Stderr).errorf("%v", err)
		os.Exit(1)
	}
}

// resolveGeneratorConfig builds the effective config: defaults, then the
// optional config file, then the positional [namespace] [outputDir] arguments.
func resolveGeneratorConfig(configPath string, positional []string) (*GeneratorConfig, error) {
	cfg := defaultGeneratorConfig()
	if configPath != "" {
		loaded, err := loadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
		cfg.OutputDir = cfg.resolvePath(cfg.OutputDir)
	}

	if len(positional) > 0 {
		cfg.Namespace = positional[0]
	}
	if len(positional) > 1 {
		cfg.OutputDir = positional[1]
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
