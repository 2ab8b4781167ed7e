package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newParseCmd() *cobra.Command {
	var includePositions bool

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a Casebook file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			eng, err := newEngineForFile(args[0])
			if err != nil {
				return err
			}

			node, err := eng.Parse(args[0], src)
			if err != nil {
				return fmt.Errorf("parse %s: %w", args[0], err)
			}
			if includePositions {
				fmt.Print(node.StringWithPositions())
			} else {
				fmt.Print(node.String())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includePositions, "positions", false, "include node positions in the output")

	return cmd
}
