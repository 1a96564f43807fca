// Package appfx assembles the pgnview server with fx.
package appfx

import (
	"context"
	"errors"
	"net"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/lgbarn/pgnview-go/internal/codec"
	"github.com/lgbarn/pgnview-go/internal/codec/noopcodec"
	"github.com/lgbarn/pgnview-go/internal/codec/zstdcodec"
	"github.com/lgbarn/pgnview-go/internal/config"
	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/replay"
	"github.com/lgbarn/pgnview-go/internal/server"
	"github.com/lgbarn/pgnview-go/internal/stats"
	statslogger "github.com/lgbarn/pgnview-go/internal/stats/logger"
	promstats "github.com/lgbarn/pgnview-go/internal/stats/prometheus"
	"github.com/lgbarn/pgnview-go/internal/store"
	"github.com/lgbarn/pgnview-go/internal/store/diskstore"
	"github.com/lgbarn/pgnview-go/internal/store/memstore"
)

// StorageModule provides the store and the library.
var StorageModule = fx.Module("storage",
	fx.Provide(
		newStore,
		newReplayer,
		newLibrary,
	),
)

// MetricsModule provides the stats collector and, when metrics are
// enabled, the Prometheus registry behind it.
var MetricsModule = fx.Module("metrics",
	fx.Provide(newMetrics),
)

// ServerModule provides the HTTP server and runs it with the app.
var ServerModule = fx.Module("server",
	fx.Provide(newServer),
	fx.Invoke(runServer),
)

// Options returns the whole server application for cfg, logging with
// logger.
func Options(cfg *config.Config, logger *zap.Logger) fx.Option {
	return fx.Options(
		fx.Supply(cfg, logger),
		fx.WithLogger(func(l *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Named("fx")}
		}),
		MetricsModule,
		StorageModule,
		ServerModule,
	)
}

// MetricsResult holds the collector and the gatherer, nil when metrics
// are disabled.
type MetricsResult struct {
	fx.Out

	Collector stats.Collector
	Gatherer  prometheus.Gatherer
}

func newMetrics(cfg *config.Config, logger *zap.Logger) MetricsResult {
	if !cfg.Server.MetricsEnabled {
		return MetricsResult{Collector: statslogger.New(logger.Named("stats"))}
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return MetricsResult{Collector: promstats.New(reg), Gatherer: reg}
}

func newStore(cfg *config.Config, logger *zap.Logger) (store.Store, error) {
	if cfg.Storage.InMemory() {
		logger.Info("keeping games in memory")
		return memstore.New(), nil
	}

	var c codec.Codec = noopcodec.New()
	if cfg.Storage.Compress {
		c = zstdcodec.New()
	}
	s, err := diskstore.New(cfg.Storage.DataDir, c, logger)
	if err != nil {
		return nil, err
	}
	logger.Info("storing games on disk",
		zap.String("dir", cfg.Storage.DataDir),
		zap.Bool("compress", cfg.Storage.Compress),
	)
	return s, nil
}

func newReplayer(cfg *config.Config, logger *zap.Logger, collector stats.Collector) (*replay.Replayer, error) {
	return replay.New(
		replay.WithCacheSize(cfg.Storage.CacheSize),
		replay.WithLogger(logger),
		replay.WithStats(collector),
	)
}

// LibraryParams holds dependencies for creating the library.
type LibraryParams struct {
	fx.In

	Config    *config.Config
	Logger    *zap.Logger
	Collector stats.Collector
	Store     store.Store
	Replayer  *replay.Replayer
	Lifecycle fx.Lifecycle
}

func newLibrary(p LibraryParams) *library.Library {
	lib := library.New(p.Store, p.Replayer,
		library.WithLogger(p.Logger),
		library.WithStats(p.Collector),
	)
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if !p.Config.Server.SeedSample {
				return nil
			}
			added, err := lib.SeedSample(ctx)
			if added {
				p.Logger.Info("added sample game", zap.String("game", library.SampleID))
			}
			return err
		},
		OnStop: func(context.Context) error {
			return lib.Close()
		},
	})
	return lib
}

// ServerParams holds dependencies for creating the server.
type ServerParams struct {
	fx.In

	Library  *library.Library
	Logger   *zap.Logger
	Gatherer prometheus.Gatherer `optional:"true"`
}

func newServer(p ServerParams) *server.Server {
	opts := []server.Option{server.WithLogger(p.Logger)}
	if p.Gatherer != nil {
		opts = append(opts, server.WithMetrics(p.Gatherer))
	}
	return server.New(p.Library, opts...)
}

func runServer(lc fx.Lifecycle, s *server.Server, cfg *config.Config, logger *zap.Logger, sd fx.Shutdowner) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := net.Listen("tcp", cfg.Server.ListenAddr)
			if err != nil {
				return err
			}
			logger.Info("listening", zap.String("addr", ln.Addr().String()))
			go func() {
				if err := s.Serve(ln); err != nil && !errors.Is(err, net.ErrClosed) {
					logger.Error("server stopped", zap.Error(err))
					_ = sd.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return s.Shutdown(ctx)
		},
	})
}
