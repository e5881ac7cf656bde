package main

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/ikadraft/ika-draft-backend/internal/catalog"
	"github.com/ikadraft/ika-draft-backend/internal/config"
	"github.com/ikadraft/ika-draft-backend/internal/httpapi"
	"github.com/ikadraft/ika-draft-backend/internal/registry"
	"github.com/ikadraft/ika-draft-backend/internal/room"
	"github.com/ikadraft/ika-draft-backend/internal/storage"
)

func main() {
	cfg := config.Load()

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx := context.Background()

	cat, sink := buildStorage(ctx, cfg, log)

	reg := registry.New(ctx, registry.Options{
		RoomCount: cfg.RoomCount,
		Catalog:   cat,
		Sink:      sink,
		Log:       log,
		Tick:      cfg.Tick(),
	})
	defer reg.Shutdown()

	handler := httpapi.SetupRoutes(reg, log)

	log.Info("listening", zap.String("addr", cfg.Addr), zap.Int("rooms", cfg.RoomCount))
	if err := http.ListenAndServe(cfg.Addr, handler); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

// buildStorage wires the catalog and result sink: database-backed when
// DATABASE_URL is set, built-in catalog with a logging sink otherwise.
func buildStorage(ctx context.Context, cfg config.Config, log *zap.Logger) (*catalog.Catalog, room.ResultSink) {
	if cfg.DatabaseURL == "" {
		log.Warn("DATABASE_URL unset; using built-in catalog, results are not persisted")
		return catalog.Default(), storage.NopSink{Log: log}
	}

	store, err := storage.Open(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal("opening storage", zap.Error(err))
	}
	weapons, err := store.LoadWeapons(ctx)
	if err != nil {
		log.Fatal("loading weapon catalog", zap.Error(err))
	}
	cat, err := catalog.New(weapons)
	if err != nil {
		// Catalog inconsistency is fatal: a server without a valid
		// catalog cannot run any room correctly.
		log.Fatal("invalid weapon catalog", zap.Error(err))
	}
	return cat, store
}
