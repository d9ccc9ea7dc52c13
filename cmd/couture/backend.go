package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/config"
	"github.com/gaayatricouture/couture/internal/content"
	"github.com/gaayatricouture/couture/internal/db"
	"github.com/gaayatricouture/couture/internal/storage"
	"github.com/gaayatricouture/couture/internal/store"
	webembed "github.com/gaayatricouture/couture/web"
)

// openStore opens the configured database, ensures its schema and returns
// the store with a function that closes it.
func openStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (store.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		pool, err := db.OpenPostgres(ctx, cfg.Database.URL, db.PoolConfig{
			MaxConns: int32(cfg.Database.MaxConnections),
			MinConns: int32(cfg.Database.MinConnections),
		}, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := db.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info().Str("driver", cfg.Database.Driver).Msg("database ready")
		return store.NewPGStore(pool, logger), pool.Close, nil

	default:
		database, err := db.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Migrate(database); err != nil {
			database.Close()
			return nil, nil, err
		}
		logger.Info().Str("driver", cfg.Database.Driver).Str("path", cfg.Database.Path).Msg("database ready")
		return store.NewSQLStore(database), func() { database.Close() }, nil
	}
}

// openBucket returns the image bucket and, for local storage, the directory
// the web server should expose under /uploads/.
func openBucket(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (storage.Bucket, string, error) {
	if cfg.Storage.Driver == config.StorageS3 {
		bucket, err := storage.NewS3Bucket(ctx, storage.S3Config{
			Bucket:    cfg.Storage.S3Bucket,
			Region:    cfg.Storage.S3Region,
			Endpoint:  cfg.Storage.S3Endpoint,
			PublicURL: cfg.Storage.S3PublicURL,
			Prefix:    cfg.Storage.S3Prefix,
		}, logger)
		if err != nil {
			return nil, "", err
		}
		return bucket, "", nil
	}

	baseURL := strings.TrimSuffix(cfg.Server.BaseURL, "/") + "/uploads/"
	bucket, err := storage.NewLocalBucket(cfg.Storage.UploadDir, baseURL)
	if err != nil {
		return nil, "", err
	}
	return bucket, bucket.Dir(), nil
}

// loadContent loads the site copy from CONTENT_PATH, or the embedded default.
func loadContent(cfg *config.Config) (*content.Holder, error) {
	var (
		site *content.Site
		err  error
	)
	if cfg.ContentPath != "" {
		site, err = content.LoadFile(cfg.ContentPath)
	} else {
		site, err = content.LoadFS(webembed.ContentFS(), webembed.SiteContentFile)
	}
	if err != nil {
		return nil, fmt.Errorf("loading site content: %w", err)
	}
	return content.NewHolder(site), nil
}

// secret returns configured, or the value persisted under key, creating it
// on first use.
func secret(ctx context.Context, st store.SettingsStore, configured, key string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	v, err := st.GetOrCreateSecret(ctx, key)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", key, err)
	}
	return v, nil
}
