package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mekedron/city-discovery/internal/mock"
	"github.com/mekedron/city-discovery/internal/mockserver"
)

func newServeMockCommand(deps Dependencies) *cobra.Command {
	var addr string
	var latency time.Duration
	var failureRate float64
	var secret string

	cmd := &cobra.Command{
		Use:   "serve-mock",
		Short: "Serve the in-memory catalog over HTTP for the live backend.",
		Long: "Serve the in-memory catalog over HTTP under " + mockserver.PathPrefix + ".\n" +
			"Point the live backend at it with CITYDISCOVERY_API_BASE_URL=http://<addr>" + mockserver.PathPrefix + ".",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if failureRate < 0 || failureRate > 1 {
				return fmt.Errorf("--failure-rate must be between 0 and 1")
			}
			logger := deps.logger()
			if !cmd.Flags().Changed("latency") {
				latency = deps.Settings.Mock.Latency
			}
			if !cmd.Flags().Changed("failure-rate") {
				failureRate = deps.Settings.Mock.FailureRate
			}
			backend := mock.NewBackend(
				mock.WithLatency(latency),
				mock.WithFailureRate(failureRate),
				mock.WithLogger(logger),
			)
			opts := []mockserver.Option{mockserver.WithLogger(logger)}
			if s := strings.TrimSpace(secret); s != "" {
				opts = append(opts, mockserver.WithSecret(s))
			}
			srv, err := mockserver.New(backend, opts...)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving mock API on http://%s%s (metrics at /metrics)\n", addr, mockserver.PathPrefix)
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:5001", "Listen address.")
	cmd.Flags().DurationVar(&latency, "latency", 0, "Simulated latency per request. Defaults to the configured mock latency.")
	cmd.Flags().Float64Var(&failureRate, "failure-rate", 0, "Share of requests that fail with a network error. Defaults to the configured rate.")
	cmd.Flags().StringVar(&secret, "secret", "", "HMAC secret for issued tokens.")
	return cmd
}
