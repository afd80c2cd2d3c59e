package app

import (
	"context"
	"fmt"

	"github.com/persx/persx-sub000/internal/platform/cache"
	"github.com/persx/persx-sub000/internal/platform/convertkit"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/platform/metadata"
	"github.com/persx/persx-sub000/internal/platform/neo4jdb"
	"github.com/persx/persx-sub000/internal/platform/openai"
)

// Clients holds the outbound integrations. Optional ones are nil when not
// configured.
type Clients struct {
	Cache      cache.Cache
	Neo4j      *neo4jdb.Client
	OpenAI     openai.Client
	ConvertKit convertkit.Client
	Metadata   metadata.Fetcher
}

func wireClients(log *logger.Logger, cfg Config) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis, or process memory when no address is configured
	var c cache.Cache
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedis(log, cache.RedisConfig{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return Clients{}, fmt.Errorf("init redis: %w", err)
		}
		c = rc
	} else {
		log.Warn("redis not configured; page cache and wizard sessions are process-local")
		c = cache.NewMemory()
	}

	// Neo4j
	graphClient, err := neo4jdb.New(log, neo4jdb.Config{
		URI:      cfg.Neo4j.URI,
		User:     cfg.Neo4j.User,
		Password: cfg.Neo4j.Password,
		Database: cfg.Neo4j.Database,
	})
	if err != nil {
		_ = c.Close()
		return Clients{}, fmt.Errorf("init neo4j: %w", err)
	}

	// OpenAI
	llm := openai.New(log, openai.Config{
		APIKey:     cfg.OpenAI.APIKey,
		Model:      cfg.OpenAI.Model,
		BaseURL:    cfg.OpenAI.BaseURL,
		Timeout:    cfg.OpenAI.Timeout,
		MaxRetries: cfg.OpenAI.MaxRetries,
	})
	if llm == nil {
		log.Warn("openai api key not set; generation will use fallbacks")
	}

	// ConvertKit
	newsletter, err := convertkit.New(log, convertkit.Config{
		APIKey:       cfg.ConvertKit.APIKey,
		FormID:       cfg.ConvertKit.FormID,
		BaseURL:      cfg.ConvertKit.BaseURL,
		IndustryTags: cfg.ConvertKit.IndustryTags,
	})
	if err != nil {
		_ = c.Close()
		return Clients{}, fmt.Errorf("init convertkit: %w", err)
	}

	return Clients{
		Cache:      c,
		Neo4j:      graphClient,
		OpenAI:     llm,
		ConvertKit: newsletter,
		Metadata:   metadata.NewFetcher(log, metadata.Config{Timeout: cfg.Metadata.Timeout}),
	}, nil
}

func (c *Clients) Close(ctx context.Context) {
	if c == nil {
		return
	}
	if c.Neo4j != nil {
		_ = c.Neo4j.Close(ctx)
	}
	if c.Cache != nil {
		_ = c.Cache.Close()
	}
}
