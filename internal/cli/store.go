package cli

import (
	"context"
	"fmt"

	"github.com/aretw0/turing/internal/config"
	"github.com/aretw0/turing/pkg/adapters/file"
	"github.com/aretw0/turing/pkg/adapters/memory"
	"github.com/aretw0/turing/pkg/adapters/redis"
	"github.com/aretw0/turing/pkg/adapters/sqlite"
	"github.com/aretw0/turing/pkg/persistence/middleware"
	"github.com/aretw0/turing/pkg/ports"
)

// OpenStore opens the configured run store, wrapped with redaction and
// encryption when configured. Kind "none" yields a nil store.
// On success the returned close function is never nil.
func OpenStore(ctx context.Context, cfg config.StoreConfig) (ports.RunStore, func() error, error) {
	store, closeStore, err := openBackend(ctx, cfg)
	if err != nil || store == nil {
		return store, closeStore, err
	}

	var mws []middleware.Middleware
	if len(cfg.Redact) > 0 {
		mw, err := middleware.NewRedactMiddleware(cfg.Redact)
		if err != nil {
			_ = closeStore()
			return nil, nil, err
		}
		mws = append(mws, mw)
	}
	key, err := cfg.Key()
	if err != nil {
		_ = closeStore()
		return nil, nil, err
	}
	if key != nil {
		mw, err := middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: key})
		if err != nil {
			_ = closeStore()
			return nil, nil, err
		}
		mws = append(mws, mw)
	}
	return middleware.Chain(store, mws...), closeStore, nil
}

func openBackend(ctx context.Context, cfg config.StoreConfig) (ports.RunStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Kind {
	case "", config.StoreNone:
		return nil, noop, nil
	case config.StoreMemory:
		return memory.NewStore(), noop, nil
	case config.StoreFile:
		return file.NewStore(cfg.Dir), noop, nil
	case config.StoreRedis:
		opts := []redis.Option{redis.WithPrefix(cfg.RedisPrefix)}
		if cfg.TTL > 0 {
			opts = append(opts, redis.WithTTL(cfg.TTL))
		}
		store := redis.New(cfg.RedisAddr, "", 0, opts...)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
		}
		return store, store.Close, nil
	case config.StoreSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store kind %q", cfg.Kind)
	}
}

// openStore opens the store, falling back to the file store when recording
// was requested but no store is configured.
func (a *App) openStore(ctx context.Context, record bool) (ports.RunStore, func() error, error) {
	cfg := a.Config.Store
	if record && (cfg.Kind == "" || cfg.Kind == config.StoreNone) {
		cfg.Kind = config.StoreFile
	}
	return OpenStore(ctx, cfg)
}
