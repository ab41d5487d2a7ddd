package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "cafe-api",
	Short: "Cafe & Wifi REST API",
	Long: `cafe-api serves a JSON API over a single table of cafes: list, search by
location, pick one at random, add, change the coffee price and delete.

Configuration is read from defaults, an optional YAML file (--config or
CAFE_CONFIG) and CAFE_* environment variables, in that order.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return run(cmd.Context(), configPath, debug)
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "Path to a YAML config file")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Debug mode: gin debug routes, debug logs and SQL logging")
}
