package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/persx/persx-sub000/internal/platform/logger"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Personalizing SaaS Onboarding": "personalizing-saas-onboarding",
		"  A/B Testing: 10 Lessons!  ":  "a-b-testing-10-lessons",
		"Industry Insights: A, B...":    "industry-insights-a-b",
		"---":                           "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), in)
	}
	long := Slugify(strings.Repeat("word ", 40))
	assert.LessOrEqual(t, len(long), maxSlugLen)
	assert.False(t, strings.HasSuffix(long, "-"))
}

func TestPageCacheKeysByIndustry(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.pages.Set(ctx, "/", "saas", []byte("saas page"))

	got, ok := f.pages.Get(ctx, "/", "saas")
	assert.True(t, ok)
	assert.Equal(t, "saas page", string(got))
	_, ok = f.pages.Get(ctx, "/", "")
	assert.False(t, ok)

	off := NewPageCache(nil, 0, logger.Nop())
	off.Set(ctx, "/", "", []byte("x"))
	_, ok = off.Get(ctx, "/", "")
	assert.False(t, ok)
	off.InvalidateAll(ctx)
}
