package common

import (
	"fmt"
	"log/slog"

	"github.com/launchdb/founderdex/models"
	"github.com/launchdb/founderdex/pkg/caching"
	"github.com/launchdb/founderdex/pkg/db"
	"github.com/launchdb/founderdex/pkg/fetcher"
)

// Env bundles the collaborators every command needs: configuration, the
// database, and an HTTP fetcher.
type Env struct {
	Cfg     *models.Config
	DB      *db.DB
	Fetcher *fetcher.Fetcher
}

// NewEnv loads configuration, opens the database, and builds a cached
// fetcher. Pass withCache false for commands that must always hit the origin.
func NewEnv(cfgPath string, withCache bool) (*Env, error) {
	cfg, err := models.LoadConfig(cfgPath)
	if err != nil {
		return nil, err
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var cache *caching.Cache
	if withCache {
		ttl, err := cfg.ParsedCacheTTL()
		if err != nil {
			database.Close()
			return nil, err
		}
		cache, err = caching.New(cfg.CacheDir, ttl)
		if err != nil {
			database.Close()
			return nil, err
		}
	}

	return &Env{
		Cfg:     cfg,
		DB:      database,
		Fetcher: fetcher.New(cfg.UserAgent, cfg.MaxRetries, cache),
	}, nil
}

// Close releases the environment's resources.
func (e *Env) Close() {
	if err := e.DB.Close(); err != nil {
		slog.Warn("failed to close database", "err", err)
	}
}
