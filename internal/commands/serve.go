package commands

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	grpclib "google.golang.org/grpc"

	"github.com/simaogato/finance-dashboard/internal/adapter/auth"
	grpcadapter "github.com/simaogato/finance-dashboard/internal/adapter/grpc"
	financev1 "github.com/simaogato/finance-dashboard/internal/adapter/grpc/finance/v1"
	httpadapter "github.com/simaogato/finance-dashboard/internal/adapter/http"
	"github.com/simaogato/finance-dashboard/internal/usecase/market"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the gRPC and HTTP APIs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context(), opts)
		},
	}
}

func runServe(ctx context.Context, opts *globalOptions) error {
	// 1. Wire the application
	a, err := newApp(ctx, opts, os.Stderr, true)
	if err != nil {
		return err
	}
	cfg := a.cfg
	logger := a.logger

	var verifier auth.Verifier
	if cfg.Auth.JWTSecret != "" {
		verifier = auth.NewJWTVerifier(cfg.Auth.JWTSecret)
	}

	// 2. Market refresh
	var scheduler *market.Scheduler
	if cfg.Market.Enabled {
		scheduler, err = market.NewScheduler(a.market, cfg.Market.Schedule, logger)
		if err != nil {
			a.close(ctx)
			return err
		}
		scheduler.Start()
	}

	// 3. gRPC server
	grpcServer := grpclib.NewServer(
		grpclib.UnaryInterceptor(grpcadapter.AuthInterceptor(verifier, cfg.Auth.RequireAuth)),
	)
	financev1.RegisterDashboardServiceServer(grpcServer, grpcadapter.NewServer(a.manager, logger))

	lis, err := net.Listen("tcp", cfg.Server.GRPCAddr)
	if err != nil {
		a.close(ctx)
		return fmt.Errorf("failed to listen on %s: %w", cfg.Server.GRPCAddr, err)
	}

	// 4. HTTP server
	handler := httpadapter.NewHandler(a.manager, verifier, cfg.Auth.RequireAuth, logger)
	httpServer := &http.Server{
		Addr:         cfg.Server.HTTPAddr,
		Handler:      handler.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		logger.WithField("addr", cfg.Server.GRPCAddr).Info("gRPC server listening")
		if err := grpcServer.Serve(lis); err != nil {
			errCh <- fmt.Errorf("failed to serve gRPC server: %w", err)
		}
	}()
	go func() {
		logger.WithField("addr", cfg.Server.HTTPAddr).Info("HTTP server listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to serve HTTP server: %w", err)
		}
	}()

	serveErr := waitForShutdown(ctx, errCh, logger)

	// 5. Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	grpcServer.GracefulStop()
	logger.Info("gRPC server stopped")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Warn("HTTP server shutdown failed")
	}
	if scheduler != nil {
		scheduler.Stop(shutdownCtx)
	}
	a.close(shutdownCtx)
	logger.Info("Shutdown complete")

	return serveErr
}

// waitForShutdown blocks until SIGTERM/SIGINT, context cancellation or a server failure
func waitForShutdown(ctx context.Context, errCh <-chan error, logger *logrus.Logger) error {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		logger.WithField("signal", sig.String()).Info("Shutting down gracefully")
		return nil
	case <-ctx.Done():
		logger.Info("Context cancelled, shutting down")
		return nil
	case err := <-errCh:
		logger.WithError(err).Error("Server failed")
		return err
	}
}
