package render

import (
	"strconv"
	"strings"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/persx/persx-sub000/internal/domain/content"
)

// Article renders a flat record with the layout for its content type. Page
// records without blocks use the blog layout.
func (r *Renderer) Article(rec *content.Record, related []*content.Record) g.Node {
	html, err := r.md.ToHTML(rec.Content)
	if err != nil {
		r.log.Warn("render article body failed", "slug", rec.Slug, "error", err)
	}
	var main g.Node
	switch rec.ContentType {
	case content.TypeCaseStudy:
		main = r.caseStudy(rec, html)
	case content.TypeGuide:
		main = r.guide(rec, html)
	case content.TypeTestResult:
		main = r.testResult(rec, html)
	case content.TypeBestPractice:
		main = r.bestPractice(rec, html)
	case content.TypeToolGuide:
		main = r.toolGuide(rec, html)
	case content.TypeNews:
		main = r.news(rec, html)
	default:
		main = r.blogPost(rec, html)
	}
	return Article(
		Class("article article-"+string(rec.ContentType)+" "+containerClass+" py-12"),
		main,
		relatedList(related),
	)
}

func articleHeader(rec *content.Record, extra ...g.Node) g.Node {
	return Header(
		Class("article-header mb-8"),
		Span(Class("text-xs font-semibold uppercase tracking-wide text-indigo-600"), g.Text(rec.ContentType.Label())),
		H1(Class("mt-2 text-4xl font-bold tracking-tight"), g.Text(rec.Title)),
		g.If(rec.Excerpt != "", P(Class("mt-4 text-lg text-slate-600"), g.Text(rec.Excerpt))),
		g.Group(extra),
	)
}

func articleBody(html string) g.Node {
	return Div(Class("article-body prose max-w-none"), g.Raw(html))
}

func articleMeta(rec *content.Record) g.Node {
	return Footer(
		Class("article-meta mt-12 border-t pt-6 text-sm text-slate-600"),
		g.If(rec.PublishedAt != nil, P(g.Text("Published "+formatDate(rec.PublishedAt)))),
		g.If(len(rec.Tags) > 0, Ul(
			Class("mt-3 flex flex-wrap gap-2"),
			g.Group(g.Map([]string(rec.Tags), func(t string) g.Node {
				return Li(A(Href("/knowledge?tag="+t), Class("tag rounded-full bg-slate-100 px-3 py-1"), g.Text(t)))
			})),
		)),
		g.If(len(rec.Industries) > 0, P(Class("mt-3"), g.Text("Industries: "+strings.Join(rec.Industries, ", ")))),
	)
}

func sourcesList(rec *content.Record) g.Node {
	var items []g.Node
	if rec.SourceURL != "" || rec.SourceName != "" {
		label := rec.SourceName
		if label == "" {
			label = rec.SourceURL
		}
		items = append(items, Li(
			sourceLink(rec.SourceURL, label),
			g.If(rec.SourceAuthor != "", g.Text(" by "+rec.SourceAuthor)),
			g.If(rec.SourcePublishedDate != "", g.Text(", "+rec.SourcePublishedDate)),
		))
	}
	for _, s := range rec.ExternalSources {
		label := s.Title
		if label == "" {
			label = s.Name
		}
		items = append(items, Li(
			sourceLink(s.URL, label),
			g.If(s.Name != "" && s.Title != "", g.Text(" ("+s.Name+")")),
			g.If(s.Author != "", g.Text(" by "+s.Author)),
		))
	}
	if len(items) == 0 {
		return nil
	}
	return Section(
		Class("article-sources mt-10"),
		H2(Class("text-lg font-semibold"), g.Text("Sources")),
		Ul(Class("mt-3 list-disc space-y-1 pl-5 text-sm"), g.Group(items)),
	)
}

func sourceLink(url, label string) g.Node {
	if url == "" {
		return g.Text(label)
	}
	return A(Href(url), g.Attr("rel", "noopener nofollow"), Target("_blank"), g.Text(label))
}

func relatedList(related []*content.Record) g.Node {
	if len(related) == 0 {
		return nil
	}
	return Aside(
		Class("related mt-16"),
		H2(Class("text-xl font-semibold"), g.Text("Related")),
		Ul(
			Class("mt-4 grid gap-4 md:grid-cols-3"),
			g.Group(g.Map(related, func(rec *content.Record) g.Node {
				return Li(A(Href("/knowledge/"+rec.Slug), Class("block rounded-lg border p-4 hover:bg-slate-50"), g.Text(rec.Title)))
			})),
		),
	)
}

// blogPost is the default layout: header with author byline.
func (r *Renderer) blogPost(rec *content.Record, html string) g.Node {
	byline := []g.Node{}
	if rec.Author != "" {
		byline = append(byline, Span(Class("author font-medium"), g.Text("By "+rec.Author)))
	}
	if d := formatDate(rec.PublishedAt); d != "" {
		byline = append(byline, Span(g.Text(d)))
	}
	byline = append(byline, Span(g.Text(readingTime(rec.Content))))
	return Div(
		Class("article-layout"),
		articleHeader(rec, P(Class("byline mt-4 flex gap-3 text-sm text-slate-500"), g.Group(byline))),
		articleBody(html),
		sourcesList(rec),
		articleMeta(rec),
	)
}

func (r *Renderer) caseStudy(rec *content.Record, html string) g.Node {
	type metric struct{ label, value string }
	metrics := []metric{}
	if len(rec.Industries) > 0 {
		metrics = append(metrics, metric{"Industry", strings.Join(rec.Industries, ", ")})
	}
	if len(rec.Goals) > 0 {
		metrics = append(metrics, metric{"Goal", strings.Join(rec.Goals, ", ")})
	}
	if len(rec.MartechTools) > 0 {
		metrics = append(metrics, metric{"Stack", strings.Join(rec.MartechTools, ", ")})
	}
	var bar g.Node
	if len(metrics) > 0 {
		bar = Div(
			Class("metrics-bar my-8 grid gap-4 rounded-xl bg-slate-900 p-6 text-white sm:grid-cols-3"),
			g.Group(g.Map(metrics, func(m metric) g.Node {
				return Div(
					Span(Class("block text-xs uppercase text-slate-400"), g.Text(m.label)),
					Strong(Class("mt-1 block text-lg"), g.Text(m.value)),
				)
			})),
		)
	}
	return Div(Class("article-layout"), articleHeader(rec), bar, articleBody(html), sourcesList(rec), articleMeta(rec))
}

func (r *Renderer) guide(rec *content.Record, html string) g.Node {
	headings := r.md.Headings(rec.Content)
	var toc g.Node
	if len(headings) > 0 {
		items := make([]g.Node, 0, len(headings))
		for _, h := range headings {
			cls := "toc-item"
			if h.Level == 3 {
				cls += " pl-4"
			}
			items = append(items, Li(Class(cls), A(Href("#"+h.ID), g.Text(h.Text))))
		}
		toc = Nav(
			Class("toc lg:sticky lg:top-8"),
			H2(Class("text-sm font-semibold uppercase"), g.Text("On this page")),
			Ol(Class("mt-3 space-y-2 text-sm"), g.Group(items)),
		)
	}
	return Div(
		Class("article-layout"),
		articleHeader(rec),
		Div(
			Class("grid gap-10 lg:grid-cols-[16rem_1fr]"),
			toc,
			Div(articleBody(html), sourcesList(rec)),
		),
		articleMeta(rec),
	)
}

func (r *Renderer) testResult(rec *content.Record, html string) g.Node {
	banner := Div(
		Class("test-overview my-8 rounded-xl border-2 border-indigo-200 bg-indigo-50 p-6"),
		H2(Class("text-lg font-semibold"), g.Text("Test Overview")),
		g.If(rec.Excerpt != "", P(Class("mt-2"), g.Text(rec.Excerpt))),
		Ul(
			Class("mt-4 grid gap-2 text-sm sm:grid-cols-3"),
			g.If(len(rec.Industries) > 0, Li(Strong(g.Text("Industry: ")), g.Text(strings.Join(rec.Industries, ", ")))),
			g.If(len(rec.Goals) > 0, Li(Strong(g.Text("Goal: ")), g.Text(strings.Join(rec.Goals, ", ")))),
			g.If(len(rec.MartechTools) > 0, Li(Strong(g.Text("Tools: ")), g.Text(strings.Join(rec.MartechTools, ", ")))),
		),
	)
	return Div(Class("article-layout"), articleHeader(rec), banner, articleBody(html), sourcesList(rec), articleMeta(rec))
}

func (r *Renderer) bestPractice(rec *content.Record, html string) g.Node {
	items := r.md.ListItems(rec.Content)
	if len(items) > 8 {
		items = items[:8]
	}
	var checklist g.Node
	if len(items) > 0 {
		checklist = Aside(
			Class("checklist my-8 rounded-xl border border-emerald-200 bg-emerald-50 p-6"),
			H2(Class("text-lg font-semibold"), g.Text("Checklist")),
			Ul(
				Class("mt-3 space-y-2"),
				g.Group(g.Map(items, func(s string) g.Node {
					return Li(Class("flex gap-2"), Span(g.Text("☐")), g.Text(s))
				})),
			),
		)
	}
	return Div(Class("article-layout"), articleHeader(rec), checklist, articleBody(html), sourcesList(rec), articleMeta(rec))
}

func (r *Renderer) toolGuide(rec *content.Record, html string) g.Node {
	var sidebar g.Node
	if len(rec.MartechTools) > 0 || len(rec.ToolCategories) > 0 {
		sidebar = Aside(
			Class("tool-sidebar rounded-xl border p-6 text-sm"),
			g.If(len(rec.MartechTools) > 0, g.Group([]g.Node{
				H2(Class("font-semibold"), g.Text("Tools covered")),
				Ul(Class("mt-2 space-y-1"), g.Group(g.Map([]string(rec.MartechTools), func(s string) g.Node { return Li(g.Text(s)) }))),
			})),
			g.If(len(rec.ToolCategories) > 0, g.Group([]g.Node{
				H2(Class("mt-6 font-semibold"), g.Text("Categories")),
				Ul(Class("mt-2 space-y-1"), g.Group(g.Map([]string(rec.ToolCategories), func(s string) g.Node { return Li(g.Text(s)) }))),
			})),
		)
	}
	return Div(
		Class("article-layout"),
		articleHeader(rec),
		Div(
			Class("grid gap-10 lg:grid-cols-[1fr_18rem]"),
			Div(articleBody(html), sourcesList(rec)),
			sidebar,
		),
		articleMeta(rec),
	)
}

func (r *Renderer) news(rec *content.Record, html string) g.Node {
	var summary g.Node
	if rec.OverallSummary != "" {
		summary = Section(
			Class("roundup-summary my-8 rounded-xl bg-slate-50 p-6"),
			H2(Class("text-lg font-semibold"), g.Text("Summary")),
			P(Class("mt-2"), g.Text(rec.OverallSummary)),
		)
	}
	body := articleBody(html)
	if strings.TrimSpace(rec.Content) == "" && rec.PersxPerspective != "" {
		perspective, _ := r.md.ToHTML(rec.PersxPerspective)
		body = articleBody(perspective)
	}
	return Div(
		Class("article-layout"),
		articleHeader(rec),
		summary,
		Section(
			Class("persx-perspective"),
			H2(Class("text-lg font-semibold"), g.Text("The PersX Perspective")),
			body,
		),
		sourcesList(rec),
		articleMeta(rec),
	)
}

func readingTime(md string) string {
	mins := (len(strings.Fields(md)) + 199) / 200
	if mins <= 1 {
		return "1 min read"
	}
	return strconv.Itoa(mins) + " min read"
}
