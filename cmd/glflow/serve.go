package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/glflowdev/glflow/serve"
)

var serveHTTPAddr string
var serveTokenHash string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the workflow methods over JSON-RPC",
	Long: `Expose create_merge_request, rebase_on_staging, and health_check as
JSON-RPC 2.0 methods.

By default requests are read line by line from stdin and responses are
written to stdout, which is how agent tooling drives glflow. With --http
the same methods are served on POST /rpc, with a plain-text health
report on GET /healthz.

HTTP requests carry a bearer token when a serve token hash or JWT secret
is configured; with neither, the transport is open.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if serveTokenHash != "" {
			cfg.ServeTokenHash = serveTokenHash
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv := serve.NewServer(cfg)

		if serveHTTPAddr != "" {
			err = srv.ListenAndServe(ctx, serveHTTPAddr)
		} else {
			err = srv.ServeStdio(ctx, os.Stdin, os.Stdout)
		}
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHTTPAddr, "http", "", "Serve JSON-RPC over HTTP on this address instead of stdio")
	serveCmd.Flags().StringVar(&serveTokenHash, "token-hash", "", "Require a bearer token matching this hash (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
