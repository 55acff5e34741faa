package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-shooter/internal/metrics"
	"github.com/vovakirdan/tui-shooter/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagMetricsAddr string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the shooter SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the mode menu. Runs from
every session are re-simulated, archived as replays and ranked in the
shared save file and run ledger.

Host key handling:
  - If --host-key or server.host_key is set, uses that key file
  - Otherwise, auto-generates a key at ~/.shooter/host_key

When server.metrics_address (or --metrics) is set, Prometheus metrics are
served at /metrics and the run ledger at /runs.

Examples:
  shooter serve                           # Listen on server.address
  shooter serve --ssh :2222               # Listen on port 2222
  shooter serve --metrics :9090           # Also expose metrics

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port), overrides server.address")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().StringVar(&flagMetricsAddr, "metrics", "", "Metrics listen address, overrides server.metrics_address")
}

func runServe(_ *cobra.Command, _ []string) {
	server := cfg.Server
	if flagSSHAddr != "" {
		server.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		server.HostKeyPath = flagHostKey
	}
	if flagMetricsAddr != "" {
		server.MetricsAddress = flagMetricsAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	archive := openArchive(m)
	archive.VerifyRuns = true

	srv, err := tui.NewSSHServer(tui.SSHServerOptions{
		Server:   server,
		TickRate: cfg.Sim.TickRate,
		Archive:  archive,
		Metrics:  m,
		Logger:   logger.WithPrefix("ssh"),
	})
	if err != nil {
		closeArchive(archive)
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	if server.MetricsAddress != "" {
		// A nil *storage.Store must not become a non-nil RunLister.
		var runs metrics.RunLister
		if archive.Store != nil {
			runs = archive.Store
		}
		go func() {
			logger.Info("serving metrics", "address", server.MetricsAddress)
			err := metrics.Serve(ctx, server.MetricsAddress, metrics.NewRouter(m, runs))
			if err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server stopped", "error", err)
			}
		}()
	}

	fmt.Printf("Starting shooter SSH server on %s\n", server.Address)
	fmt.Println("Press Ctrl+C to stop")

	err = srv.ListenAndServe(ctx)
	closeArchive(archive)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
