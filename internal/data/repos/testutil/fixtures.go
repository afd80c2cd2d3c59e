package testutil

import (
	"context"
	"testing"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
)

func SeedContent(tb testing.TB, ctx context.Context, tx *gorm.DB, slug string, status types.ContentStatus, tags ...string) *types.ContentRecord {
	tb.Helper()
	rec := &types.ContentRecord{
		Slug:        slug,
		Title:       "Title " + slug,
		ContentType: types.ContentTypeBlogPost,
		Status:      status,
		Content:     "Body of " + slug,
		Tags:        datatypes.JSONSlice[string](tags),
	}
	if status == types.StatusPublished {
		now := time.Now().UTC()
		rec.PublishedAt = &now
	}
	if err := tx.WithContext(ctx).Create(rec).Error; err != nil {
		tb.Fatalf("seed content: %v", err)
	}
	return rec
}

func SeedTag(tb testing.TB, ctx context.Context, tx *gorm.DB, name string, usage int) *types.Tag {
	tb.Helper()
	t := &types.Tag{Name: name, UsageCount: usage}
	if err := tx.WithContext(ctx).Create(t).Error; err != nil {
		tb.Fatalf("seed tag: %v", err)
	}
	return t
}
