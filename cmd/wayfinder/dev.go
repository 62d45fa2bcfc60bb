package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/wayfinder-dev/wayfinder/internal/config"
	"github.com/wayfinder-dev/wayfinder/internal/devsrv"
)

func devCmd() *cobra.Command {
	var (
		port int
		host string
	)

	cmd := &cobra.Command{
		Use:   "dev",
		Short: "Serve the built app with live reload",
		Long: `Serve the build output directory with live reload.

The server watches the dist directory and refreshes connected browsers
on change. In history routing mode, application paths that match no
file fall back to index.html so deep links load the app.

Examples:
  wayfinder dev
  wayfinder dev --port=8080
  wayfinder dev --host=0.0.0.0`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDev(port, host)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to run on (default from wayfinder.json)")
	cmd.Flags().StringVarP(&host, "host", "H", "", "Host to bind to (default from wayfinder.json)")

	return cmd
}

func runDev(port int, host string) error {
	cfg, err := config.LoadFromWorkingDir()
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Dev.Port = port
	}
	if host != "" {
		cfg.Dev.Host = host
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	printBanner()
	fmt.Println("  dev")
	fmt.Println()

	server := devsrv.NewServer(devsrv.ServerOptions{
		Config: cfg,
		Logger: slog.Default(),
		OnReload: func(clients int) {
			success("Reloaded %d browsers", clients)
		},
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\n\n  Shutting down...")
		cancel()
		server.Stop()
	}()

	info("Serving %s at %s", cfg.OutputPath(), cfg.DevURL())
	return server.Start(ctx)
}
