package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"

	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

func newTestRenderer() *Renderer {
	return New(logger.Nop(), markdown.New(), SiteConfig{Name: "PersX", BaseURL: "https://persx.test"})
}

func renderString(t *testing.T, n g.Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, n))
	return buf.String()
}

const wrapped = `<div class="` + containerClass + `">`

func TestBlocksRenderInOrderWithFullWidthPolicy(t *testing.T) {
	r := newTestRenderer()
	bs := []blocks.Block{
		{ID: "a", Type: blocks.TypeHero, Order: 2, Data: blocks.HeroData{Headline: "Hero A"}},
		{ID: "b", Type: blocks.TypeCTABanner, Order: 1, Data: blocks.CTABannerData{Heading: "Banner B"}},
	}
	out := renderString(t, r.Blocks(bs, ""))

	ia := strings.Index(out, `data-block-id="a"`)
	ib := strings.Index(out, `data-block-id="b"`)
	require.True(t, ia > 0 && ib >= 0)
	assert.Less(t, ib, ia)

	assert.True(t, strings.HasPrefix(out, `<section class="block block-cta_banner" data-block-id="b">`), out)
	assert.Contains(t, out, wrapped+`<section class="block block-hero" data-block-id="a">`)
}

func TestBlocksOrderIgnoresInputOrder(t *testing.T) {
	r := newTestRenderer()
	bs := []blocks.Block{
		{ID: "c", Type: blocks.TypeCallout, Order: 3, Data: blocks.CalloutData{Title: "C"}},
		{ID: "a", Type: blocks.TypeSteps, Order: 1, Data: blocks.StepsData{Heading: "A"}},
		{ID: "b", Type: blocks.TypeTrustCards, Order: 2, Data: blocks.TrustCardsData{Heading: "B"}},
	}
	out := renderString(t, r.Blocks(bs, ""))
	ia := strings.Index(out, `data-block-id="a"`)
	ib := strings.Index(out, `data-block-id="b"`)
	ic := strings.Index(out, `data-block-id="c"`)
	assert.True(t, ia < ib && ib < ic, out)
}

func TestUnknownBlocksRenderNothing(t *testing.T) {
	r := newTestRenderer()
	bs, err := blocks.ParseList([]byte(`[{"id":"x","type":"carousel","order":1,"data":{"slides":[]}}]`))
	require.NoError(t, err)
	assert.Equal(t, "", renderString(t, r.Blocks(bs, "")))
}

func TestMalformedDataRendersBlanks(t *testing.T) {
	r := newTestRenderer()
	bs, err := blocks.ParseList([]byte(`[{"id":"h","type":"hero","order":1,"data":"oops"}]`))
	require.NoError(t, err)
	out := renderString(t, r.Blocks(bs, ""))
	assert.Contains(t, out, `data-block-id="h"`)
	assert.Contains(t, out, "<h1")
}

func TestHeroPersonalizedForIndustry(t *testing.T) {
	r := newTestRenderer()
	b := blocks.Block{
		ID: "h", Type: blocks.TypeHero, Order: 1,
		Data: blocks.HeroData{Headline: "Default headline"},
		Personalization: &blocks.Personalization{Enabled: true, Variants: map[string]json.RawMessage{
			"saas": json.RawMessage(`{"headline":"Grow ARR with personalization"}`),
		}},
	}
	assert.Contains(t, renderString(t, r.Blocks([]blocks.Block{b}, blocks.IndustrySaaS)), "Grow ARR with personalization")
	assert.Contains(t, renderString(t, r.Blocks([]blocks.Block{b}, blocks.IndustryEducation)), "Default headline")
}

func TestContactFormCarriesIndustry(t *testing.T) {
	r := newTestRenderer()
	b := blocks.Block{ID: "cf", Type: blocks.TypeContactForm, Order: 1, Data: blocks.ContactFormData{
		Heading: "Talk", Subheading: "Panel headline", Reasons: []string{"Benchmarks"},
	}}
	out := renderString(t, r.Blocks([]blocks.Block{b}, blocks.IndustryHealthcare))
	assert.Contains(t, out, "Panel headline")
	assert.Contains(t, out, "Benchmarks")
	assert.Contains(t, out, `value="healthcare"`)
}

func TestEveryDefaultBlockRenders(t *testing.T) {
	r := newTestRenderer()
	l := blocks.NewList(nil)
	for _, typ := range blocks.Types {
		_, err := l.Add(typ)
		require.NoError(t, err)
	}
	out := renderString(t, r.Blocks(l.Blocks(), ""))
	for _, typ := range blocks.Types {
		assert.Contains(t, out, "block-"+string(typ))
	}
}
