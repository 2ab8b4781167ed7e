package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newSceneCmd() *cobra.Command {
	var offset int

	cmd := &cobra.Command{
		Use:   "scene <file>",
		Short: "Report the scene enclosing a byte offset",
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

			name, ok := eng.SceneAt(src, offset)
			if !ok {
				return fmt.Errorf("no scene at offset %d", offset)
			}
			fmt.Println(name)
			return nil
		},
	}

	cmd.Flags().IntVar(&offset, "offset", 0, "byte offset within the file")

	return cmd
}
