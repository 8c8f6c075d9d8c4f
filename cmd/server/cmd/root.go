package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logFormat string
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "server",
		Short: "Unity Hands server - volunteering events backend",
		Long: `Unity Hands server is the backend for the Unity Hands volunteering
platform. It serves the events board, handles volunteer applications, and
issues the session tokens the frontend stores in a cookie.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// A local .env is a development convenience; absence is fine.
			_ = godotenv.Load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}

	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error) (default: info)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (json, console) (default: json)")

	root.AddCommand(newServeCommand())
	root.AddCommand(newMigrateCommand())
	root.AddCommand(newGenTokenCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the root command; called by main.
func Execute() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
