package main

import (
	"fmt"

	"github.com/jonathan/onepager/internal/config"
	"github.com/jonathan/onepager/internal/server"
	"github.com/jonathan/onepager/internal/server/ratelimit"
	"github.com/spf13/cobra"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server that exposes the one-pager generation, preview and ATS scoring endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", config.DefaultPort, "Port to listen on (overrides PORT)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port = servePort
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	jwtConfig, err := config.OptionalJWTConfig()
	if err != nil {
		return fmt.Errorf("failed to create JWT config: %w", err)
	}
	if jwtConfig == nil {
		logger.Warn("JWT_SECRET not set, API authentication disabled")
	}

	a, err := newApp(cmd.Context(), cfg, logger, true)
	if err != nil {
		return err
	}
	defer a.Close()

	srv := server.New(server.Config{
		Addr:      cfg.Addr(),
		RateLimit: ratelimit.LoadConfig(),
		JWT:       jwtConfig,
	}, a.service, a.engine, logger)

	return srv.Start(cmd.Context())
}
