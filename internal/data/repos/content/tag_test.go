package content

import (
	"context"
	"errors"
	"testing"

	"github.com/persx/persx-sub000/internal/data/repos/testutil"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
)

func TestTagRepo(t *testing.T) {
	db := testutil.DB(t)
	repo := NewTagRepo(db, testutil.Logger(t))
	ctx := context.Background()
	dbc := dbctx.Of(ctx)

	topic := types.TagCategory("topic")
	if _, err := repo.Create(dbc, []*types.Tag{{Name: "personalization", Category: &topic}, {Name: "saas"}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := repo.Create(dbc, []*types.Tag{{Name: "saas"}}); !errors.Is(err, perrors.ErrConflict) {
		t.Fatalf("Create(dup): expected ErrConflict, got %v", err)
	}

	topics, err := repo.List(dbc, &topic)
	if err != nil || len(topics) != 1 || topics[0].Name != "personalization" {
		t.Fatalf("List(topic): %+v %v", topics, err)
	}

	if err := repo.AdjustUsage(dbc, []string{"saas", "personalization"}, 1); err != nil {
		t.Fatalf("AdjustUsage(+1): %v", err)
	}
	if err := repo.AdjustUsage(dbc, []string{"saas"}, -3); err != nil {
		t.Fatalf("AdjustUsage(-3): %v", err)
	}
	got, err := repo.GetByNames(dbc, []string{"saas", "personalization"})
	if err != nil || len(got) != 2 {
		t.Fatalf("GetByNames: %+v %v", got, err)
	}
	for _, tg := range got {
		want := 1
		if tg.Name == "saas" {
			want = 0
		}
		if tg.UsageCount != want {
			t.Fatalf("usage_count for %s = %d, want %d", tg.Name, tg.UsageCount, want)
		}
	}

	all, err := repo.List(dbc, nil)
	if err != nil || len(all) != 2 || all[0].Name != "personalization" {
		t.Fatalf("List(all): %+v %v", all, err)
	}
}
