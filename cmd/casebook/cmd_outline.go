package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newOutlineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "outline <file>",
		Short: "List the sections, entries and scenes of a Casebook file",
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

			items, err := eng.Outline(src)
			if err != nil {
				return fmt.Errorf("outline %s: %w", args[0], err)
			}
			for _, item := range items {
				fmt.Printf("%s%s %s [%s-%s]\n",
					strings.Repeat("  ", item.Depth), item.Kind, item.Name,
					item.Span.Start.String(), item.Span.End.String())
			}
			return nil
		},
	}
}
