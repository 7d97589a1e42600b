package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/adanyl0v/taskboard/internal/app"
)

var Version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:     "taskboard",
		Short:   "Single-user task tracker",
		Version: Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.InitDefaultLogger()
			app.MustReadEnv()
			app.MustInitApplicationLogger()
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(listCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the task API over HTTP",
		Run: func(cmd *cobra.Command, args []string) {
			app.MustConnectBackend()
			defer app.DisconnectBackend()

			if migrate {
				app.MustMigrateBackend()
			}
			app.MustLoadTaskStore()
			app.MustListenAndServeHTTP()
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the schema before serving")
	return cmd
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create the tasks schema in the configured backend",
		Run: func(cmd *cobra.Command, args []string) {
			app.MustConnectBackend()
			defer app.DisconnectBackend()

			app.MustMigrateBackend()
		},
	}
}
