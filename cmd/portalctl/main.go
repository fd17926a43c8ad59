package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "portalctl",
	Short: "Alvant portal client",
	Long: `portalctl talks to the Alvant portal API the way the website does.

It submits the contact and register-interest forms with the same field checks
the site runs, signs an admin in with an emailed one-time code, and lists the
collected records with the dashboard's search and date filters.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		initLogger()
	},
}

var logLevel string

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "error", "log level (debug, info, warn, error)")

	initFormCommands()
	initAdminCommands()
}
