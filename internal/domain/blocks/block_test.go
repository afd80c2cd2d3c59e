package blocks

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseListDecodesKnownTypes(t *testing.T) {
	raw := []byte(`[
		{"id":"hero-1","type":"hero","order":1,"data":{"headline":"Hi","primaryCta":{"text":"Go","url":"/go"}}},
		{"id":"steps-1","type":"steps","order":2,"data":{"steps":[{"title":"One"}]}}
	]`)
	bs, err := ParseList(raw)
	require.NoError(t, err)
	require.Len(t, bs, 2)

	hero, ok := bs[0].Data.(HeroData)
	require.True(t, ok)
	assert.Equal(t, "Hi", hero.Headline)
	assert.Equal(t, "/go", hero.PrimaryCTA.URL)

	steps, ok := bs[1].Data.(StepsData)
	require.True(t, ok)
	assert.Equal(t, "One", steps.Steps[0].Title)
}

func TestUnknownTypeRoundTripsRawData(t *testing.T) {
	raw := []byte(`[{"id":"x-1","type":"carousel","order":1,"data":{"slides":[1,2]}}]`)
	bs, err := ParseList(raw)
	require.NoError(t, err)
	require.Len(t, bs, 1)

	u, ok := bs[0].Data.(Unknown)
	require.True(t, ok)
	assert.Equal(t, Type("carousel"), u.Kind)

	out, err := json.Marshal(bs)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}

func TestMalformedDataDecodesToZeroValue(t *testing.T) {
	raw := []byte(`[{"id":"h","type":"hero","order":1,"data":{"headline":42}}]`)
	bs, err := ParseList(raw)
	require.NoError(t, err)
	assert.Equal(t, HeroData{}, bs[0].Data)
}

func TestParseListDropsUndecodableItems(t *testing.T) {
	raw := []byte(`[{"id":"h","type":"hero","order":"first"},{"id":"c","type":"callout","order":2,"data":{}}]`)
	bs, err := ParseList(raw)
	assert.Error(t, err)
	require.Len(t, bs, 1)
	assert.Equal(t, "c", bs[0].ID)
}

func TestPersonalizationSurvivesRoundTrip(t *testing.T) {
	b := Block{
		ID: "hero-1", Type: TypeHero, Order: 1, Data: HeroData{Headline: "Default"},
		Personalization: &Personalization{
			Enabled:  true,
			Variants: map[string]json.RawMessage{"saas": json.RawMessage(`{"headline":"For SaaS"}`)},
		},
	}
	raw, err := json.Marshal(b)
	require.NoError(t, err)

	var got Block
	require.NoError(t, json.Unmarshal(raw, &got))
	require.NotNil(t, got.Personalization)
	assert.True(t, got.Personalization.Enabled)
	assert.JSONEq(t, `{"headline":"For SaaS"}`, string(got.Personalization.Variants["saas"]))
}

func TestDefaultDataCoversEveryType(t *testing.T) {
	for _, typ := range Types {
		d, err := DefaultData(typ)
		require.NoError(t, err, typ)
		assert.Equal(t, typ, d.BlockType())
	}
	_, err := DefaultData("nope")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestFullWidthAllowList(t *testing.T) {
	for _, typ := range Types {
		want := typ == TypeTwoColumn || typ == TypeCTABanner
		assert.Equal(t, want, typ.FullWidth(), typ)
	}
}
