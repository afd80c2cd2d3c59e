package leads

import (
	"context"
	"testing"

	"github.com/persx/persx-sub000/internal/data/repos/testutil"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
)

func TestRoadmapAndContactRepos(t *testing.T) {
	db := testutil.DB(t)
	dbc := dbctx.Of(context.Background())

	roadmaps := NewRoadmapSubmissionRepo(db, testutil.Logger(t))
	if err := roadmaps.Create(dbc, &types.RoadmapSubmission{
		Industry:     "saas",
		Goals:        []string{"increase-conversions"},
		MartechStack: []string{"segment", "optimizely"},
		Email:        "lead@example.com",
	}); err != nil {
		t.Fatalf("roadmap Create: %v", err)
	}
	rs, err := roadmaps.ListRecent(dbc, 10)
	if err != nil || len(rs) != 1 || rs[0].MartechStack[1] != "optimizely" {
		t.Fatalf("roadmap ListRecent: %+v %v", rs, err)
	}

	contacts := NewContactSubmissionRepo(db, testutil.Logger(t))
	if err := contacts.Create(dbc, &types.ContactSubmission{Name: "Ana", Email: "ana@example.com", Message: "hi"}); err != nil {
		t.Fatalf("contact Create: %v", err)
	}
	cs, err := contacts.ListRecent(dbc, 0)
	if err != nil || len(cs) != 1 || cs[0].Name != "Ana" {
		t.Fatalf("contact ListRecent: %+v %v", cs, err)
	}
}
