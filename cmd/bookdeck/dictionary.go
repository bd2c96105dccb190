package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/at-ishikawa/bookdeck/internal/dictionary"
)

type OutputFormat string

func (f *OutputFormat) Set(val string) error {
	for _, format := range allOutputFormats {
		if val == string(format) {
			*f = format
			return nil
		}
	}
	return fmt.Errorf("invalid output format: %s", val)
}

func (f OutputFormat) String() string {
	return string(f)
}

func (f *OutputFormat) Type() string {
	return "OutputFormat"
}

const (
	OutputFormatText OutputFormat = "text"
	OutputFormatYAML OutputFormat = "yaml"
)

var (
	_                pflag.Value = (*OutputFormat)(nil)
	allOutputFormats             = []OutputFormat{OutputFormatText, OutputFormatYAML}
)

func newDictionaryCommand() *cobra.Command {
	rootCommand := cobra.Command{
		Use: "dictionary",
	}
	flags := rootCommand.PersistentFlags()

	format := OutputFormatText
	flags.Var(&format, "output", fmt.Sprintf("Output format. Possible values are %v", allOutputFormats))

	rootCommand.AddCommand(&cobra.Command{
		Use:  "lookup",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]

			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			resolver, fetcher, err := newResolver(cfg)
			if err != nil {
				return fmt.Errorf("newResolver > %w", err)
			}
			defer func() {
				if err := fetcher.Close(); err != nil {
					slog.Default().Warn("Failed to close the page fetcher", "error", err)
				}
			}()

			result := resolver.Resolve(cmd.Context(), word)
			switch result.Status {
			case dictionary.StatusNotFound:
				color.Yellow("No dictionary entry found for %q", word)
				return nil
			case dictionary.StatusFailed:
				return fmt.Errorf("resolver.Resolve > %w", result.Err)
			}

			switch format {
			case OutputFormatYAML:
				if err := yaml.NewEncoder(os.Stdout).Encode(result.Entries); err != nil {
					return fmt.Errorf("yaml.Encode > %w", err)
				}
			case OutputFormatText:
				fallthrough
			default:
				for i, entry := range result.Entries {
					if i > 0 {
						fmt.Println()
					}
					fmt.Print(entry.ToFlashCard())
				}
			}
			if result.Warnings > 0 {
				color.Yellow("%d parts of the entries could not be resolved", result.Warnings)
			}
			return nil
		},
	})
	return &rootCommand
}
