package graph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

func TestDisabledGraphIsNoop(t *testing.T) {
	g := NewContentGraph(nil, logger.Nop())
	assert.False(t, g.Enabled())

	require.NoError(t, g.Upsert(context.Background(), &types.ContentRecord{Title: "x"}))
	require.NoError(t, g.Remove(context.Background(), "abc"))
	ids, err := g.Related(context.Background(), "abc", 3)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestNormalizedDedupesCaseInsensitively(t *testing.T) {
	assert.Equal(t, []string{"saas", "ab-testing"}, normalized([]string{" SaaS", "saas", "", "ab-testing"}))
}
