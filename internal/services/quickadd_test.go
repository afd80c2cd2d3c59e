package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/generation"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/platform/metadata"
	"github.com/persx/persx-sub000/internal/platform/openai"
	"github.com/persx/persx-sub000/internal/wizard"
)

type stubFetcher map[string]*metadata.Metadata

func (f stubFetcher) Fetch(_ context.Context, u string) (*metadata.Metadata, error) {
	md, ok := f[u]
	if !ok {
		return nil, errors.New("fetch " + u + ": status 404")
	}
	cp := *md
	cp.URL = u
	return &cp, nil
}

func (f stubFetcher) FetchAll(ctx context.Context, urls []string) ([]*metadata.Metadata, error) {
	out := make([]*metadata.Metadata, 0, len(urls))
	for _, u := range urls {
		md, err := f.Fetch(ctx, u)
		if err != nil {
			return nil, err
		}
		out = append(out, md)
	}
	return out, nil
}

type downLLM struct{}

func (downLLM) GenerateText(context.Context, openai.TextRequest) (string, error) {
	return "", errors.New("openai error (status 503): overloaded")
}

func newQuickAdd(t *testing.T) (*fixture, QuickAddService) {
	t.Helper()
	f := newFixture(t)
	gen, err := generation.NewService(downLLM{}, logger.Nop())
	require.NoError(t, err)
	wiz := wizard.New(logger.Nop(), stubFetcher{
		"https://a.example/1": {Title: "A", SiteName: "Alpha", Description: "About A"},
		"https://b.example/2": {Title: "B", SiteName: "Beta"},
	}, gen)
	return f, NewQuickAddService(logger.Nop(), wiz, wizard.NewStore(f.cache, 0), f.content, f.md)
}

func TestQuickAddSavesNewsRoundup(t *testing.T) {
	_, svc := newQuickAdd(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.Save(ctx, sess.ID, types.StatusDraft)
	assert.ErrorIs(t, err, wizard.ErrWrongStep)

	_, err = svc.SetURLs(ctx, sess.ID, []string{"https://a.example/1", "https://b.example/2"})
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		sess, err = svc.Next(ctx, sess.ID)
		require.NoError(t, err)
	}
	assert.Equal(t, wizard.StepTaggingAndPublishing, sess.Step)

	rec, err := svc.Save(ctx, sess.ID, types.StatusPublished)
	require.NoError(t, err)
	assert.Equal(t, types.ContentTypeNews, rec.ContentType)
	assert.Equal(t, types.SourceExternalCurated, rec.SourceType)
	assert.Equal(t, types.StatusPublished, rec.Status)
	assert.NotNil(t, rec.PublishedAt)
	assert.Equal(t, "Industry Insights: A, B...", rec.Title)
	assert.Equal(t, sess.Body(), rec.Content)
	assert.Equal(t, rec.Content, rec.PersxPerspective)
	assert.Equal(t, generation.DefaultTags, []string(rec.Tags))
	require.Len(t, rec.ExternalSources, 2)
	assert.Equal(t, "About A", rec.ExternalSources[0].Summary)
	assert.Equal(t, "Beta", rec.ExternalSources[1].Name)

	_, err = svc.Get(ctx, sess.ID)
	assert.ErrorIs(t, err, perrors.ErrNotFound)
}

func TestQuickAddSlugCollisionGetsSuffix(t *testing.T) {
	f, svc := newQuickAdd(t)
	ctx := context.Background()

	run := func() (*wizard.Session, *types.ContentRecord) {
		sess, err := svc.Start(ctx)
		require.NoError(t, err)
		_, err = svc.SetURLs(ctx, sess.ID, []string{"https://a.example/1"})
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			sess, err = svc.Next(ctx, sess.ID)
			require.NoError(t, err)
		}
		rec, err := svc.Save(ctx, sess.ID, "")
		require.NoError(t, err)
		return sess, rec
	}
	_, first := run()
	second, rec := run()
	assert.Equal(t, types.StatusDraft, rec.Status)
	assert.Equal(t, "industry-insights-a", first.Slug)
	assert.Equal(t, first.Slug+"-"+second.ID[:8], rec.Slug)

	list, total, err := f.content.List(ctx, ContentListInput{Type: string(types.ContentTypeNews)})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, list, 2)
}

func TestQuickAddFailedStepKeepsStoredSession(t *testing.T) {
	_, svc := newQuickAdd(t)
	ctx := context.Background()

	sess, err := svc.Start(ctx)
	require.NoError(t, err)
	_, err = svc.SetURLs(ctx, sess.ID, []string{"https://a.example/1", "https://missing.example/x"})
	require.NoError(t, err)

	_, err = svc.Next(ctx, sess.ID)
	require.ErrorIs(t, err, wizard.ErrFetchFailed)

	stored, err := svc.Get(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, wizard.StepCollectingURLs, stored.Step)
	assert.Equal(t, "https://missing.example/x", stored.URLs[1])

	_, err = svc.Next(ctx, "no-such-session")
	assert.ErrorIs(t, err, perrors.ErrNotFound)
}
