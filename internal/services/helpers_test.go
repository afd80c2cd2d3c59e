package services

import (
	"testing"

	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/data/graph"
	"github.com/persx/persx-sub000/internal/data/repos"
	"github.com/persx/persx-sub000/internal/data/repos/testutil"
	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/platform/cache"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type fixture struct {
	db      *gorm.DB
	tags    TagService
	tagRepo repos.TagRepo
	content ContentService
	pages   *PageCache
	cache   cache.Cache
	md      *markdown.Converter
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := testutil.DB(t)
	log := logger.Nop()
	tagRepo := repos.NewTagRepo(db, log)
	tags := NewTagService(log, tagRepo)
	c := cache.NewMemory()
	pages := NewPageCache(c, 0, log)
	md := markdown.New()
	content := NewContentService(db, log, repos.NewContentRepo(db, log), tags, md, graph.NewContentGraph(nil, log), pages)
	return &fixture{db: db, tags: tags, tagRepo: tagRepo, content: content, pages: pages, cache: c, md: md}
}

func strPtr(s string) *string { return &s }
