package services

import (
	"context"
	"errors"
	"time"

	"github.com/persx/persx-sub000/internal/platform/cache"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

const pageCachePrefix = "page:"

// PageCache holds rendered public pages keyed by path and industry. A nil
// *PageCache or nil backing cache disables caching.
type PageCache struct {
	c   cache.Cache
	ttl time.Duration
	log *logger.Logger
}

func NewPageCache(c cache.Cache, ttl time.Duration, log *logger.Logger) *PageCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &PageCache{c: c, ttl: ttl, log: log.With("service", "PageCache")}
}

func pageKey(path, industry string) string {
	return pageCachePrefix + path + "|" + industry
}

func (p *PageCache) enabled() bool { return p != nil && p.c != nil }

func (p *PageCache) Get(ctx context.Context, path, industry string) ([]byte, bool) {
	if !p.enabled() {
		return nil, false
	}
	raw, err := p.c.Get(ctx, pageKey(path, industry))
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			p.log.Warn("page cache read failed", "path", path, "error", err)
		}
		return nil, false
	}
	return raw, true
}

func (p *PageCache) Set(ctx context.Context, path, industry string, html []byte) {
	if !p.enabled() {
		return
	}
	if err := p.c.Set(ctx, pageKey(path, industry), html, p.ttl); err != nil {
		p.log.Warn("page cache write failed", "path", path, "error", err)
	}
}

// InvalidateAll drops every cached page. Content saves call this since a
// record can appear on several pages (index, related lists).
func (p *PageCache) InvalidateAll(ctx context.Context) {
	if !p.enabled() {
		return
	}
	if err := p.c.DeletePrefix(ctx, pageCachePrefix); err != nil {
		p.log.Warn("page cache purge failed", "error", err)
	}
}
