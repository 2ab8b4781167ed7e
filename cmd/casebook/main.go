package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	flagConfig   string
	flagOverride string
	flagVerbose  int

	config *Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "casebook",
		Short:        "Tools for the Casebook narrative-scripting language",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			commonlog.Configure(flagVerbose, nil)
			cfg, err := loadConfig(flagConfig)
			if err != nil {
				return err
			}
			if flagOverride != "" {
				cfg.Override = flagOverride
			}
			config = cfg
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default searches .casebook.yaml in . and $HOME)")
	rootCmd.PersistentFlags().StringVar(&flagOverride, "override", "", "grammar override fragment file")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "increase log verbosity")

	rootCmd.AddCommand(newTokensCmd())
	rootCmd.AddCommand(newHighlightCmd())
	rootCmd.AddCommand(newParseCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newSceneCmd())
	rootCmd.AddCommand(newOutlineCmd())
	rootCmd.AddCommand(newLSPCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
