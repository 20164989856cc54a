package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/theodi/ndlcore/internal/config"
	"github.com/theodi/ndlcore/internal/mcpserver"
	"github.com/theodi/ndlcore/internal/metrics"
	chiTransport "github.com/theodi/ndlcore/internal/transport/chi"
	"github.com/theodi/ndlcore/internal/version"
)

func (a *app) mcpCmd() *cobra.Command {
	var (
		transport string
		port      int
	)

	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Run the MCP tool server (stdio or streamable HTTP)",
		Long: `Serve search_ndl_corpus and get_corpus_schema to an agent host.

stdio: newline-delimited JSON-RPC on stdin/stdout; logs go to stderr.
http:  MCP streamable HTTP at /mcp, plus /healthz and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("transport") {
				a.cfg.MCP.Transport = transport
			}
			if cmd.Flags().Changed("port") {
				a.cfg.HTTP.Port = port
			}
			if err := a.cfg.Validate(); err != nil {
				return err
			}

			metrics.Register()

			a.logger.Info("Starting ndlcore MCP server",
				zap.String("version", version.Version),
				zap.String("commit", version.Commit),
				zap.String("env", a.env),
				zap.String("transport", a.cfg.MCP.Transport),
				zap.String("base_url", a.cfg.API.BaseURL),
			)

			tools := mcpserver.New(mcpserver.Config{
				BaseURL:    a.cfg.API.BaseURL,
				HTTPClient: a.httpClient(),
				Logger:     a.logger,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if a.cfg.MCP.Transport == config.TransportHTTP {
				return a.serveHTTP(ctx, tools)
			}
			return tools.ServeStdio(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&transport, "transport", "t", config.TransportStdio, "Transport: stdio or http")
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "HTTP port (http transport only)")

	return cmd
}

func (a *app) serveHTTP(ctx context.Context, tools *mcpserver.Server) error {
	addr := fmt.Sprintf(":%d", a.cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      chiTransport.NewRouter(tools.HTTPHandler(), a.logger),
		ReadTimeout:  time.Duration(a.cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(a.cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	a.logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(a.cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
		return fmt.Errorf("shutdown: %w", err)
	}

	a.logger.Info("Server stopped gracefully")
	return nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}
