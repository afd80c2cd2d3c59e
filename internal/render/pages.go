package render

import (
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/domain/content"
)

// RecordPage renders a full document for rec. A non-empty block array wins
// over the markdown body.
func (r *Renderer) RecordPage(rec *content.Record, industry blocks.Industry, related []*content.Record) g.Node {
	meta := PageMeta{Title: rec.Title, Description: rec.Excerpt, Path: recordPath(rec)}
	if rec.Slug == "home" {
		meta.Title = ""
	}
	if rec.HasBlocks() {
		bs, err := blocks.ParseList(rec.ContentBlocks)
		if err != nil {
			r.log.Warn("some blocks could not be decoded", "slug", rec.Slug, "error", err)
		}
		if strings.TrimSpace(rec.Content) != "" {
			r.log.Debug("record has blocks and a body; rendering blocks", "slug", rec.Slug)
		}
		return r.Page(meta, r.Blocks(bs, industry))
	}
	return r.Page(meta, r.Article(rec, related))
}

func recordPath(rec *content.Record) string {
	switch {
	case rec.Slug == "home":
		return "/"
	case rec.ContentType == content.TypePage:
		return "/pages/" + rec.Slug
	default:
		return "/knowledge/" + rec.Slug
	}
}

type IndexFilter struct {
	Type content.Type
	Tag  string
}

// KnowledgeIndex lists published articles with type filter links.
func (r *Renderer) KnowledgeIndex(recs []*content.Record, f IndexFilter) g.Node {
	filters := []g.Node{filterLink("All", "/knowledge", f.Type == "")}
	for _, t := range content.Types {
		if t == content.TypePage {
			continue
		}
		filters = append(filters, filterLink(t.Label(), "/knowledge?type="+string(t), f.Type == t))
	}
	heading := "Knowledge Base"
	if f.Tag != "" {
		heading = "Tagged “" + f.Tag + "”"
	}
	var list g.Node = P(Class("empty mt-10 text-slate-500"), g.Text("Nothing published here yet."))
	if len(recs) > 0 {
		list = Ul(
			Class("mt-10 grid gap-6 md:grid-cols-2 lg:grid-cols-3"),
			g.Group(g.Map(recs, r.card)),
		)
	}
	return r.Page(
		PageMeta{Title: "Knowledge Base", Path: "/knowledge"},
		Div(
			Class(containerClass+" py-12"),
			H1(Class("text-4xl font-bold"), g.Text(heading)),
			Nav(Class("filters mt-6 flex flex-wrap gap-2 text-sm"), g.Group(filters)),
			list,
		),
	)
}

func filterLink(label, href string, active bool) g.Node {
	cls := "rounded-full border px-3 py-1"
	if active {
		cls += " active bg-slate-900 text-white"
	}
	return A(Href(href), Class(cls), g.Text(label))
}

func (r *Renderer) card(rec *content.Record) g.Node {
	return Li(
		Class("card rounded-xl border p-6"),
		Span(Class("text-xs font-semibold uppercase text-indigo-600"), g.Text(rec.ContentType.Label())),
		H2(Class("mt-2 text-lg font-semibold"), A(Href("/knowledge/"+rec.Slug), g.Text(rec.Title))),
		g.If(rec.Excerpt != "", P(Class("mt-2 text-sm text-slate-600"), g.Text(rec.Excerpt))),
		g.If(rec.PublishedAt != nil, P(Class("mt-4 text-xs text-slate-400"), g.Text(formatDate(rec.PublishedAt)))),
	)
}

func (r *Renderer) NotFound() g.Node {
	return r.Page(
		PageMeta{Title: "Page not found"},
		Div(
			Class(containerClass+" py-24 text-center"),
			H1(Class("text-4xl font-bold"), g.Text("Page not found")),
			P(Class("mt-4 text-slate-600"), g.Text("The page you are looking for does not exist or is no longer published.")),
			A(Href("/"), Class("btn btn-primary mt-8 inline-block"), g.Text("Back home")),
		),
	)
}
