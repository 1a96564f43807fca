package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/appfx"
)

const stopTimeout = 15 * time.Second

func newServeCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the game library over HTTP",
		Long: `Start the HTTP API for the game library. Games are kept in memory
unless --data-dir is given, in which case each game is stored as a file
(zstd compressed with --compress). The API lives under /api/games;
/healthz and /metrics are served alongside.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.serve(cmd.Context())
		},
	}

	s := c.cfg.Storage
	srv := c.cfg.Server
	flags := cmd.Flags()
	flags.StringVar(&s.DataDir, "data-dir", s.DataDir, "directory for stored games; empty keeps them in memory")
	flags.BoolVar(&s.Compress, "compress", s.Compress, "zstd compress stored games")
	flags.IntVar(&s.CacheSize, "cache-size", s.CacheSize, "number of replayed games kept in memory")
	flags.StringVar(&srv.ListenAddr, "listen", srv.ListenAddr, "address to listen on")
	flags.BoolVar(&srv.MetricsEnabled, "metrics", srv.MetricsEnabled, "expose Prometheus metrics at /metrics")
	flags.BoolVar(&srv.SeedSample, "seed-sample", srv.SeedSample, "add the sample game to an empty library")
	return cmd
}

// serve runs the application until it receives a shutdown signal.
func (c *cli) serve(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app := fx.New(appfx.Options(c.cfg, c.logger))
	if err := app.Err(); err != nil {
		return err
	}

	startCtx, cancel := context.WithTimeout(ctx, fx.DefaultTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return err
	}

	var sig fx.ShutdownSignal
	select {
	case sig = <-app.Wait():
		c.logger.Info("shutting down", zap.Any("signal", sig.Signal), zap.Int("exit_code", sig.ExitCode))
	case <-ctx.Done():
		c.logger.Info("shutting down", zap.Error(ctx.Err()))
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := app.Stop(stopCtx); err != nil {
		return err
	}
	if sig.ExitCode != 0 {
		return fmt.Errorf("server stopped with exit code %d", sig.ExitCode)
	}
	return nil
}
