package graph

import (
	"context"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/platform/neo4jdb"
)

// ContentGraph mirrors published content into neo4j as
// (:Content)-[:TAGGED]->(:Tag) and (:Content)-[:FOR_INDUSTRY]->(:Industry).
type ContentGraph interface {
	Enabled() bool
	Upsert(ctx context.Context, rec *types.ContentRecord) error
	Remove(ctx context.Context, contentID string) error
	// Related returns ids of published content sharing tags or industries,
	// strongest overlap first.
	Related(ctx context.Context, contentID string, limit int) ([]string, error)
}

type contentGraph struct {
	client *neo4jdb.Client
	log    *logger.Logger
}

func NewContentGraph(client *neo4jdb.Client, baseLog *logger.Logger) ContentGraph {
	return &contentGraph{client: client, log: baseLog.With("graph", "ContentGraph")}
}

func (g *contentGraph) Enabled() bool {
	return g != nil && g.client != nil && g.client.Driver != nil
}

func (g *contentGraph) session(ctx context.Context, mode neo4j.AccessMode) neo4j.SessionWithContext {
	return g.client.Driver.NewSession(ctx, neo4j.SessionConfig{
		AccessMode:   mode,
		DatabaseName: g.client.Database,
	})
}

func (g *contentGraph) Upsert(ctx context.Context, rec *types.ContentRecord) error {
	if !g.Enabled() || rec == nil {
		return nil
	}
	if !rec.IsPublished() {
		return g.Remove(ctx, rec.ID.String())
	}

	node := map[string]any{
		"id":           rec.ID.String(),
		"slug":         rec.Slug,
		"title":        rec.Title,
		"content_type": string(rec.ContentType),
		"synced_at":    time.Now().UTC().Format(time.RFC3339Nano),
	}
	tags := normalized(rec.Tags)
	industries := normalized(rec.Industries)

	session := g.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)

	if res, err := session.Run(ctx, `CREATE CONSTRAINT content_id_unique IF NOT EXISTS FOR (c:Content) REQUIRE c.id IS UNIQUE`, nil); err != nil {
		g.log.Warn("neo4j schema init failed (continuing)", "error", err)
	} else {
		_, _ = res.Consume(ctx)
	}

	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MERGE (c:Content {id: $node.id})
SET c += $node
WITH c
OPTIONAL MATCH (c)-[old:TAGGED|FOR_INDUSTRY]->()
DELETE old
WITH DISTINCT c
FOREACH (name IN $tags |
  MERGE (t:Tag {name: name})
  MERGE (c)-[:TAGGED]->(t))
FOREACH (key IN $industries |
  MERGE (i:Industry {key: key})
  MERGE (c)-[:FOR_INDUSTRY]->(i))
`, map[string]any{"node": node, "tags": tags, "industries": industries})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	return err
}

func (g *contentGraph) Remove(ctx context.Context, contentID string) error {
	if !g.Enabled() || strings.TrimSpace(contentID) == "" {
		return nil
	}
	session := g.session(ctx, neo4j.AccessModeWrite)
	defer session.Close(ctx)
	_, err := session.ExecuteWrite(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `MATCH (c:Content {id: $id}) DETACH DELETE c`, map[string]any{"id": contentID})
		if err != nil {
			return nil, err
		}
		_, err = res.Consume(ctx)
		return nil, err
	})
	return err
}

func (g *contentGraph) Related(ctx context.Context, contentID string, limit int) ([]string, error) {
	if !g.Enabled() || strings.TrimSpace(contentID) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}
	session := g.session(ctx, neo4j.AccessModeRead)
	defer session.Close(ctx)

	out, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, `
MATCH (c:Content {id: $id})-[:TAGGED|FOR_INDUSTRY]->(x)<-[:TAGGED|FOR_INDUSTRY]-(other:Content)
WHERE other.id <> c.id
WITH other, count(x) AS shared
RETURN other.id AS id
ORDER BY shared DESC, other.title ASC
LIMIT $limit
`, map[string]any{"id": contentID, "limit": int64(limit)})
		if err != nil {
			return nil, err
		}
		records, err := res.Collect(ctx)
		if err != nil {
			return nil, err
		}
		ids := make([]string, 0, len(records))
		for _, r := range records {
			if v, ok := r.Get("id"); ok {
				if s, ok := v.(string); ok && s != "" {
					ids = append(ids, s)
				}
			}
		}
		return ids, nil
	})
	if err != nil {
		return nil, err
	}
	ids, _ := out.([]string)
	return ids, nil
}

func normalized(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
