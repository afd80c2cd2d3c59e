package app

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/persx/persx-sub000/internal/data/graph"
	"github.com/persx/persx-sub000/internal/data/repos"
	"github.com/persx/persx-sub000/internal/data/repos/testutil"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/platform/cache"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/services"
)

const fixtureYAML = `
content:
  - title: Home
    slug: home
    type: page
    status: published
    blocks:
      - type: callout
        order: 3
        data:
          title: Hello
          content: World
  - title: Guide one
    type: guide
    body: "## Intro"
    tags: [SaaS]
`

func newContentService(t *testing.T) services.ContentService {
	t.Helper()
	db := testutil.DB(t)
	log := logger.Nop()
	tags := services.NewTagService(log, repos.NewTagRepo(db, log))
	pages := services.NewPageCache(cache.NewMemory(), 0, log)
	return services.NewContentService(db, log, repos.NewContentRepo(db, log), tags, markdown.New(), graph.NewContentGraph(nil, log), pages)
}

func TestParseSeedRejectsUnknownFields(t *testing.T) {
	_, err := ParseSeed(strings.NewReader("content:\n  - title: x\n    colour: red\n"))
	require.Error(t, err)

	f, err := ParseSeed(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Content)
}

func TestSeedCreatesAndSkipsExisting(t *testing.T) {
	ctx := context.Background()
	content := newContentService(t)

	f, err := ParseSeed(strings.NewReader(fixtureYAML))
	require.NoError(t, err)
	require.Len(t, f.Content, 2)

	res, err := Seed(ctx, logger.Nop(), content, f)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Created: 2}, res)

	home, err := content.GetPublished(ctx, "home")
	require.NoError(t, err)
	require.NotNil(t, home)
	assert.Equal(t, types.ContentTypePage, home.ContentType)

	list, err := content.ListBlocks(ctx, home.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].Order)
	assert.NotEmpty(t, list[0].ID)

	res, err = Seed(ctx, logger.Nop(), content, f)
	require.NoError(t, err)
	assert.Equal(t, SeedResult{Skipped: 2}, res)
}
