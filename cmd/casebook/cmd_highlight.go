package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newHighlightCmd() *cobra.Command {
	var themeName string

	cmd := &cobra.Command{
		Use:   "highlight <file>",
		Short: "Render a file with syntax highlighting on the terminal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readSource(args[0])
			if err != nil {
				return err
			}
			if themeName != "" {
				config.Theme = themeName
			}
			theme, err := loadTheme()
			if err != nil {
				return err
			}
			eng, err := newEngineForFile(args[0])
			if err != nil {
				return err
			}

			runs := eng.Classify(src)
			fmt.Print(theme.Render(src, runs))
			return nil
		},
	}

	cmd.Flags().StringVar(&themeName, "theme", "", "theme name or yaml theme file")

	return cmd
}
