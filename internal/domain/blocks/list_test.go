package blocks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(l *List) *List {
	l.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return l
}

func orders(l *List) []int {
	var out []int
	for _, b := range l.Blocks() {
		out = append(out, b.Order)
	}
	return out
}

func ids(l *List) []string {
	var out []string
	for _, b := range l.Blocks() {
		out = append(out, b.ID)
	}
	return out
}

func TestNewListNormalizesOrder(t *testing.T) {
	l := NewList([]Block{
		{ID: "a", Type: TypeHero, Order: 7},
		{ID: "b", Type: TypeSteps, Order: 2},
		{ID: "c", Type: TypeCallout, Order: 7},
	})
	assert.Equal(t, []string{"b", "a", "c"}, ids(l))
	assert.Equal(t, []int{1, 2, 3}, orders(l))
}

func TestNewListAssignsStableMissingIDs(t *testing.T) {
	stored := []Block{
		{Type: TypeHero, Order: 2},
		{ID: "hero-1", Type: TypeHero, Order: 5},
		{Type: TypeHero, Order: 1},
	}
	first := ids(NewList(stored))
	assert.Equal(t, []string{"hero-1-2", "hero-2", "hero-1"}, first)
	assert.Equal(t, first, ids(NewList(stored)))
	assert.Empty(t, stored[0].ID)
}

func TestAddAppendsWithDefaultsAndUniqueIDs(t *testing.T) {
	l := fixedClock(NewList(nil))
	b1, err := l.Add(TypeHero)
	require.NoError(t, err)
	b2, err := l.Add(TypeHero)
	require.NoError(t, err)

	assert.Equal(t, "hero-1700000000000", b1.ID)
	assert.Equal(t, "hero-1700000000000-2", b2.ID)
	assert.Equal(t, 2, b2.Order)
	assert.IsType(t, HeroData{}, b1.Data)

	_, err = l.Add("slider")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDeleteRenumbers(t *testing.T) {
	l := NewList([]Block{
		{ID: "a", Type: TypeHero, Order: 1},
		{ID: "b", Type: TypeSteps, Order: 2},
		{ID: "c", Type: TypeCallout, Order: 3},
	})
	require.NoError(t, l.Delete("a"))
	assert.Equal(t, []string{"b", "c"}, ids(l))
	assert.Equal(t, []int{1, 2}, orders(l))

	assert.ErrorIs(t, l.Delete("zzz"), ErrBlockNotFound)
}

func TestMoveSwapsNeighbours(t *testing.T) {
	l := NewList([]Block{
		{ID: "a", Type: TypeHero, Order: 1},
		{ID: "b", Type: TypeSteps, Order: 2},
		{ID: "c", Type: TypeCallout, Order: 3},
	})
	require.NoError(t, l.MoveDown(0))
	assert.Equal(t, []string{"b", "a", "c"}, ids(l))
	require.NoError(t, l.MoveUp(2))
	assert.Equal(t, []string{"b", "c", "a"}, ids(l))
	assert.Equal(t, []int{1, 2, 3}, orders(l))

	require.NoError(t, l.MoveUp(0))
	require.NoError(t, l.MoveDown(2))
	assert.Equal(t, []string{"b", "c", "a"}, ids(l))
	assert.ErrorIs(t, l.MoveUp(3), ErrOutOfRange)
}

func TestUpdateRequiresMatchingType(t *testing.T) {
	l := NewList([]Block{{ID: "a", Type: TypeHero, Order: 1, Data: HeroData{}}})
	require.NoError(t, l.Update("a", HeroData{Headline: "New"}))
	got, _ := l.Get("a")
	assert.Equal(t, "New", got.Data.(HeroData).Headline)

	assert.ErrorIs(t, l.Update("a", CalloutData{}), ErrTypeMismatch)
	assert.ErrorIs(t, l.Update("b", HeroData{}), ErrBlockNotFound)
}

func TestSetPersonalization(t *testing.T) {
	l := NewList([]Block{{ID: "a", Type: TypeHero, Order: 1}})
	require.NoError(t, l.SetPersonalization("a", &Personalization{Enabled: true}))
	got, _ := l.Get("a")
	assert.True(t, got.Personalization.Enabled)
}
