package main

import (
	"fmt"

	"github.com/deppfellow/countries-api/internal/version"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "countries-api",
	Short: "Countries API - CRUD over an in-memory country collection",
	Long: `countries-api serves a small JSON REST API for reading and editing a
collection of country records kept in process memory.

Running the command without a subcommand starts the HTTP server.`,
	Version:      version.Info(),
	SilenceUsage: true,
	RunE:         runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Full())
	},
}

func init() {
	rootCmd.SetVersionTemplate("countries-api version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&portFlag, "port", "", "Port to listen on (overrides COUNTRIES_SERVER__PORT)")
	rootCmd.AddCommand(serveCmd, versionCmd)
}
