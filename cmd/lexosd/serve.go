package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/LexOS/backend/internal/infrastructure/server"
)

func newServeCmd() *cobra.Command {
	var port, host, catalogGlob string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP and WebSocket server",
		Long: `Run the desktop server. Configuration comes from the environment
(PORT, HOST, LOG_LEVEL, CATALOG_GLOB, ...); flags override it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("port") {
				cfg.Server.Port = port
			}
			if flags.Changed("host") {
				cfg.Server.Host = host
			}
			if flags.Changed("catalog") {
				cfg.Catalog.Glob = catalogGlob
			}

			srv, err := server.NewServer(cfg, nil)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8000", "HTTP port (overrides PORT)")
	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "bind host (overrides HOST)")
	cmd.Flags().StringVar(&catalogGlob, "catalog", "", "glob of extra YAML/TOML app manifests (overrides CATALOG_GLOB)")

	return cmd
}
