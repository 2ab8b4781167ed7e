package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newTokensCmd() *cobra.Command {
	var includeIgnored bool

	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Tokenize a Casebook file and list the tokens",
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

			tokenize := eng.Parser().Tokenize
			if includeIgnored {
				tokenize = eng.Parser().TokenizeAll
			}
			tokens, scanErr := tokenize(src)

			w := table.NewWriter()
			w.SetOutputMirror(os.Stdout)
			w.SetStyle(table.StyleLight)
			w.AppendHeader(table.Row{"#", "Type", "Text", "Offset", "Position"})
			for i, tok := range tokens {
				w.AppendRow(table.Row{
					i + 1, tok.Type, fmt.Sprintf("%q", tok.Text),
					tok.Offset(), tok.Span.Start.String(),
				})
			}
			w.AppendFooter(table.Row{"", "", "", "",
				fmt.Sprintf("%s tokens / %s", humanize.Comma(int64(len(tokens))), humanize.Bytes(uint64(len(src))))})
			w.Render()

			if scanErr != nil {
				return fmt.Errorf("tokenize %s: %w", args[0], scanErr)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&includeIgnored, "all", false, "include ignored tokens (whitespace, comments)")

	return cmd
}
