package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/dhamidi/casebook/grammar"
	"github.com/dhamidi/casebook/parser"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [fragment]",
		Short: "Verify that a grammar override composes and builds",
		Long: "Parses the given override fragment (or the configured one), composes it\n" +
			"over the base grammar and builds the parser, reporting every diagnostic.",
		Args:          cobra.MaximumNArgs(1),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fragmentPath := config.Override
			if len(args) == 1 {
				fragmentPath = args[0]
			}

			var override *grammar.Spec
			if fragmentPath != "" {
				data, err := os.ReadFile(fragmentPath)
				if err != nil {
					return fmt.Errorf("read fragment: %w", err)
				}
				override, err = grammar.ParseFragment(string(data))
				if err != nil {
					printCheckFailure(fragmentPath, err)
					return err
				}
			}

			combined, err := grammar.Compose(grammar.Base(), override)
			if err != nil {
				printCheckFailure(fragmentPath, err)
				return err
			}
			p, err := parser.Build(combined)
			if err != nil {
				printCheckFailure(fragmentPath, err)
				return err
			}

			spec := p.Spec()
			color.New(color.FgGreen).Fprintf(os.Stdout, "grammar OK (%d tokens, %d rules)\n",
				len(spec.Tokens), len(spec.Rules))
			return nil
		},
	}
}

func printCheckFailure(fragmentPath string, err error) {
	label := "base grammar"
	if fragmentPath != "" {
		label = fragmentPath
	}
	color.New(color.FgRed).Fprintf(os.Stdout, "grammar check failed (%s)\n", label)

	var build *parser.BuildError
	if errors.As(err, &build) {
		for _, diag := range build.Diagnostics {
			color.New(color.FgYellow).Fprintf(os.Stdout, "  - %s\n", diag)
		}
		return
	}
	color.New(color.FgYellow).Fprintf(os.Stdout, "  - %s\n", err)
}
