package commands

import (
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/resserops/oopstrace/internal/traceobs"
)

const readHeaderTimeout = 10 * time.Second

// NewServeCommand returns the serve command: a minimal HTTP server exposing
// a Prometheus /metrics endpoint reporting the trace engine's own
// operational state (active goroutine lineages, published locations,
// mismatch errors observed). It never serves trace DATA itself.
func NewServeCommand() *cobra.Command {
	var addr string

	cobraCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a /metrics endpoint for the trace engine's own health",
		RunE: func(cmd *cobra.Command, _ []string) error {
			// The returned Metrics handle needs no further use here: Handler
			// already registered it as pkg/trace's mismatch observer, so
			// MismatchesTotal increments for every mismatch any Point call
			// in this process produces from here on.
			handler, _, err := traceobs.Handler()
			if err != nil {
				return fmt.Errorf("build metrics handler: %w", err)
			}

			mux := http.NewServeMux()
			mux.Handle("/metrics", handler)

			server := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: readHeaderTimeout,
			}

			fmt.Fprintf(cmd.OutOrStdout(), "serving metrics on %s/metrics\n", addr)

			return server.ListenAndServe()
		},
	}

	cobraCmd.Flags().StringVar(&addr, "addr", "localhost:9090", "address to listen on")

	return cobraCmd
}
