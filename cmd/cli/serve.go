package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/app"
	"github.com/WeaveITMeta/Quantum-Operating-System/internal/config"
)

const shutdownGrace = 10 * time.Second

func newServeCmd() *cobra.Command {
	var (
		configPath string
		port       int
		localOnly  bool
		version    string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP control plane and streaming fabric",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			if port != 0 {
				cfg.Set("server.port", port)
			}
			if localOnly {
				cfg.Set("server.local_only", true)
			}

			srv, err := app.NewServer(app.ServerOptions{C: cfg, Version: version})
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			errCh := make(chan error, 1)
			go func() {
				errCh <- srv.Listen(cfg.GetInt("server.port"), cfg.GetBool("server.local_only"))
			}()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			select {
			case err := <-errCh:
				return err
			case <-sigCh:
				ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
				defer cancel()
				return srv.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.Flags().IntVar(&port, "port", 0, "HTTP port (overrides config)")
	cmd.Flags().BoolVar(&localOnly, "local-only", false, "bind to loopback only")
	cmd.Flags().StringVar(&version, "version", "dev", "version string reported by the server")
	return cmd
}
