package appfx

import (
	"context"
	"testing"

	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/lgbarn/pgnview-go/internal/config"
	"github.com/lgbarn/pgnview-go/internal/library"
	"github.com/lgbarn/pgnview-go/internal/stats"
	statslogger "github.com/lgbarn/pgnview-go/internal/stats/logger"
	"github.com/lgbarn/pgnview-go/internal/store"
	"github.com/lgbarn/pgnview-go/internal/store/diskstore"
	"github.com/lgbarn/pgnview-go/internal/store/memstore"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return config.NewConfigBuilder().WithListenAddr("127.0.0.1:0").Build()
}

func TestValidateApp(t *testing.T) {
	for name, cfg := range map[string]*config.Config{
		"memory":     testConfig(t),
		"no metrics": config.NewConfigBuilder().WithListenAddr("127.0.0.1:0").WithMetrics(false).Build(),
	} {
		t.Run(name, func(t *testing.T) {
			if err := fx.ValidateApp(Options(cfg, zap.NewNop())); err != nil {
				t.Errorf("ValidateApp() error = %v", err)
			}
		})
	}
}

func TestApp_StartStop(t *testing.T) {
	cfg := testConfig(t)
	cfg.Storage.DataDir = t.TempDir()
	cfg.Storage.Compress = true

	var (
		lib *library.Library
		st  store.Store
	)
	app := fxtest.New(t, Options(cfg, zaptest.NewLogger(t)), fx.Populate(&lib, &st))
	app.RequireStart()

	if _, ok := st.(*diskstore.Store); !ok {
		t.Errorf("store = %T, want *diskstore.Store", st)
	}
	recs, err := lib.List(context.Background())
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(recs) != 1 || recs[0].ID != library.SampleID {
		t.Errorf("List() = %+v, want the sample game", recs)
	}

	app.RequireStop()
	if _, err := lib.List(context.Background()); err == nil {
		t.Error("library still open after stop")
	}
}

func TestApp_NoSeed(t *testing.T) {
	cfg := testConfig(t)
	cfg.Server.SeedSample = false
	cfg.Server.MetricsEnabled = false

	var (
		lib       *library.Library
		st        store.Store
		collector stats.Collector
	)
	app := fxtest.New(t, Options(cfg, zap.NewNop()), fx.Populate(&lib, &st, &collector))
	app.RequireStart()
	defer app.RequireStop()

	if _, ok := st.(*memstore.Store); !ok {
		t.Errorf("store = %T, want *memstore.Store", st)
	}
	if _, ok := collector.(*statslogger.Collector); !ok {
		t.Errorf("collector = %T, want the logging collector", collector)
	}
	if recs, _ := lib.List(context.Background()); len(recs) != 0 {
		t.Errorf("List() = %d games, want none", len(recs))
	}
}
