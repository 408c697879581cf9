package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pocketdo/pocketdo/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long:  `Run a local HTTP server exposing the todo operations as a JSON API.`,
	Run: func(cmd *cobra.Command, args []string) {
		addr, _ := cmd.Flags().GetString("addr")

		cfg, store, svc := mustSetup()
		defer store.Close()

		if addr == "" {
			addr = fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort)
		}

		srv := server.New(addr, svc)
		if err := srv.ListenAndServe(); err != nil {
			handleError(err)
		}
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Address to listen on (host:port, overrides config)")
	rootCmd.AddCommand(serveCmd)
}
