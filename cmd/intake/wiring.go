package main

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/intake"
	"github.com/aretw0/intake/internal/config"
	"github.com/aretw0/intake/pkg/adapters/email"
	"github.com/aretw0/intake/pkg/adapters/logsink"
	"github.com/aretw0/intake/pkg/adapters/memory"
	"github.com/aretw0/intake/pkg/adapters/redis"
	"github.com/aretw0/intake/pkg/domain"
	"github.com/aretw0/intake/pkg/forms"
	"github.com/aretw0/intake/pkg/observability"
	"github.com/aretw0/intake/pkg/persistence/middleware"
	"github.com/aretw0/intake/pkg/ports"
	"github.com/spf13/pflag"
)

func bindFlag(f *pflag.Flag, key string) {
	if err := v.BindPFlag(key, f); err != nil {
		panic(fmt.Sprintf("bind flag %s: %v", f.Name, err))
	}
}

// storage is the session store selected by configuration.
type storage struct {
	store  ports.StateStore
	locker ports.DistributedLocker
	closer io.Closer
}

func (s storage) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

// openStorage builds the configured store, wrapped with encryption when a key is set.
func openStorage(ctx context.Context) (storage, error) {
	var out storage
	switch cfg.Session.Store {
	case config.StoreRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Session.TTL),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return out, fmt.Errorf("connect redis %s: %w", cfg.Redis.Addr, err)
		}
		out.store = rs
		out.locker = redis.NewLocker(rs.Client(), cfg.Redis.Prefix)
		out.closer = rs
		logger.Info("Using redis session store", "addr", cfg.Redis.Addr, "ttl", cfg.Session.TTL)
	default:
		out.store = memory.NewStore()
		logger.Info("Using in-memory session store")
	}

	if cfg.Session.EncryptionKey == "" {
		return out, nil
	}
	enc, err := encryptionConfig()
	if err != nil {
		_ = out.Close()
		return out, err
	}
	out.store = middleware.Chain(out.store, middleware.NewEncryptionMiddleware(enc))
	logger.Info("Session encryption enabled", "fallback_keys", len(enc.FallbackKeys))
	return out, nil
}

func encryptionConfig() (middleware.EncryptionConfig, error) {
	active, err := middleware.ParseKey(cfg.Session.EncryptionKey)
	if err != nil {
		return middleware.EncryptionConfig{}, fmt.Errorf("session.encryption_key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, encoded := range cfg.Session.FallbackKeys {
		key, err := middleware.ParseKey(encoded)
		if err != nil {
			return middleware.EncryptionConfig{}, fmt.Errorf("session.fallback_keys[%d]: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return enc, nil
}

// newDeliverer builds the configured delivery driver.
func newDeliverer(catalog *forms.Catalog) (ports.Deliverer, error) {
	switch cfg.Mail.Driver {
	case config.MailResend:
		client, err := email.NewClient(email.Config{
			APIKey:  cfg.Mail.APIKey,
			BaseURL: cfg.Mail.BaseURL,
			From:    cfg.Mail.From,
			To:      email.SplitAddresses(cfg.Mail.To),
			Timeout: cfg.Mail.Timeout,
		})
		if err != nil {
			return nil, err
		}
		renderer, err := email.NewRenderer(catalog)
		if err != nil {
			return nil, err
		}
		return email.NewDeliverer(client, renderer, email.WithLogger(logger)), nil
	case config.MailMemory:
		return memory.NewOutbox(), nil
	default:
		return logsink.New(logger, nil), nil
	}
}

// newEngine builds the engine of one form family with logging hooks attached.
func newEngine(catalog *forms.Catalog, formType domain.FormType, d ports.Deliverer) (*intake.Engine, error) {
	return intake.New(formType,
		intake.WithCatalog(catalog),
		intake.WithDeliverer(d),
		intake.WithLogger(logger),
		intake.WithLifecycleHooks(observability.LoggingHooks(logger)),
	)
}
