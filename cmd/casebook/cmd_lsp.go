package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/casebook/engine"
	"github.com/dhamidi/casebook/lsp"
)

func newLSPCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		RunE: func(cmd *cobra.Command, args []string) error {
			overridePath := config.Override
			if overridePath == "" {
				overridePath = engine.OverrideFileName
			}
			eng, err := engine.New(engine.Options{OverridePath: overridePath})
			if err != nil {
				return err
			}
			return lsp.NewServer(eng, version).RunStdio()
		},
	}
}
