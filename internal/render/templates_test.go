package render

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"

	"github.com/persx/persx-sub000/internal/domain/content"
)

func record(typ content.Type, body string) *content.Record {
	published := time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)
	return &content.Record{
		Slug:         "sample",
		Title:        "Sample title",
		ContentType:  typ,
		Status:       content.StatusPublished,
		Content:      body,
		Excerpt:      "Short excerpt",
		Author:       "Sam Rivera",
		Tags:         datatypes.JSONSlice[string]{"personalization"},
		Industries:   datatypes.JSONSlice[string]{"saas"},
		Goals:        datatypes.JSONSlice[string]{"lead generation"},
		MartechTools: datatypes.JSONSlice[string]{"HubSpot"},
		PublishedAt:  &published,
	}
}

func TestTemplateEmphasisPerType(t *testing.T) {
	r := newTestRenderer()
	cases := map[content.Type]string{
		content.TypeBlogPost:     "By Sam Rivera",
		content.TypeCaseStudy:    "metrics-bar",
		content.TypeGuide:        `href="#getting-started"`,
		content.TypeTestResult:   "Test Overview",
		content.TypeBestPractice: "Checklist",
		content.TypeToolGuide:    "Tools covered",
		content.TypeNews:         "The PersX Perspective",
		content.TypePage:         "By Sam Rivera",
	}
	body := "## Getting started\n\n- Audit the funnel\n- Pick one segment\n"
	for typ, want := range cases {
		out := renderString(t, r.Article(record(typ, body), nil))
		assert.Contains(t, out, want, typ)
		assert.Contains(t, out, "Sample title", typ)
		assert.Contains(t, out, "March 4, 2026", typ)
	}
}

func TestNewsRoundupShowsSummaryAndSources(t *testing.T) {
	r := newTestRenderer()
	rec := record(content.TypeNews, "### Source A\n\nOur take.")
	rec.OverallSummary = "This roundup covers 2 key articles."
	rec.ExternalSources = datatypes.JSONSlice[content.ExternalSource]{
		{URL: "https://a.example/post", Name: "A Weekly", Title: "Post A"},
		{URL: "https://b.example/post", Name: "B Daily", Title: "Post B"},
	}
	out := renderString(t, r.Article(rec, nil))
	assert.Contains(t, out, "This roundup covers 2 key articles.")
	assert.Contains(t, out, `href="https://a.example/post"`)
	assert.Contains(t, out, "Post B")
}

func TestRecordPagePrefersBlocks(t *testing.T) {
	r := newTestRenderer()
	rec := record(content.TypePage, "stale body text")
	rec.Slug = "home"
	rec.ContentBlocks = datatypes.JSON(`[{"id":"h","type":"hero","order":1,"data":{"headline":"Block headline"}}]`)
	out := renderString(t, r.RecordPage(rec, "", nil))
	assert.Contains(t, out, "Block headline")
	assert.NotContains(t, out, "stale body text")
	assert.Contains(t, out, "<title>PersX</title>")
}

func TestRecordPageFallsBackToTemplate(t *testing.T) {
	r := newTestRenderer()
	rec := record(content.TypeGuide, "## Intro\n\nHello.")
	rec.ContentBlocks = datatypes.JSON(`[]`)
	out := renderString(t, r.RecordPage(rec, "", []*content.Record{{Slug: "other", Title: "Other article"}}))
	assert.Contains(t, out, "On this page")
	assert.Contains(t, out, `href="/knowledge/other"`)
}

func TestKnowledgeIndexAndNotFound(t *testing.T) {
	r := newTestRenderer()
	out := renderString(t, r.KnowledgeIndex([]*content.Record{record(content.TypeGuide, "")}, IndexFilter{Type: content.TypeGuide}))
	assert.Contains(t, out, `href="/knowledge/sample"`)
	assert.Contains(t, out, "active")

	empty := renderString(t, r.KnowledgeIndex(nil, IndexFilter{}))
	assert.Contains(t, empty, "Nothing published here yet.")

	assert.Contains(t, renderString(t, r.NotFound()), "Page not found")
}
