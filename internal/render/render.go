// Package render builds the public site's HTML from content records and blocks.
package render

import (
	"io"
	"time"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type SiteConfig struct {
	Name        string
	BaseURL     string
	Description string
}

type Renderer struct {
	log  *logger.Logger
	md   *markdown.Converter
	site SiteConfig
}

func New(log *logger.Logger, md *markdown.Converter, site SiteConfig) *Renderer {
	if site.Name == "" {
		site.Name = "PersX"
	}
	return &Renderer{log: log.With("component", "Renderer"), md: md, site: site}
}

// PageMeta describes the document head of one rendered page.
type PageMeta struct {
	Title       string
	Description string
	Path        string
}

// Page wraps body in the site layout.
func (r *Renderer) Page(meta PageMeta, body ...g.Node) g.Node {
	title := r.site.Name
	if meta.Title != "" {
		title = meta.Title + " | " + r.site.Name
	}
	desc := meta.Description
	if desc == "" {
		desc = r.site.Description
	}
	return Doctype(
		HTML(
			Lang("en"),
			Head(
				Meta(Charset("utf-8")),
				Meta(Name("viewport"), Content("width=device-width, initial-scale=1")),
				g.El("title", g.Text(title)),
				Meta(Name("description"), Content(desc)),
				g.If(r.site.BaseURL != "", Link(Rel("canonical"), Href(r.site.BaseURL+meta.Path))),
				Link(Rel("stylesheet"), Href("/static/site.css")),
			),
			Body(
				Class("bg-white text-slate-900 antialiased"),
				r.siteNav(),
				Main(body...),
				r.siteFooter(),
			),
		),
	)
}

func (r *Renderer) siteNav() g.Node {
	links := []struct{ label, href string }{
		{"Knowledge", "/knowledge"},
		{"Case Studies", "/knowledge?type=case_study"},
		{"Get a Roadmap", "/roadmap"},
	}
	return Header(
		Class("border-b border-slate-200"),
		Nav(
			Class("mx-auto flex max-w-7xl items-center justify-between px-4 py-4 sm:px-6 lg:px-8"),
			A(Href("/"), Class("text-xl font-bold"), g.Text(r.site.Name)),
			Ul(
				Class("flex gap-6 text-sm font-medium"),
				g.Group(g.Map(links, func(l struct{ label, href string }) g.Node {
					return Li(A(Href(l.href), g.Text(l.label)))
				})),
			),
		),
	)
}

func (r *Renderer) siteFooter() g.Node {
	return Footer(
		Class("mt-24 border-t border-slate-200 py-10 text-center text-sm text-slate-500"),
		P(g.Textf("© %d %s. All rights reserved.", time.Now().Year(), r.site.Name)),
	)
}

// Write renders n to w.
func Write(w io.Writer, n g.Node) error {
	return n.Render(w)
}

func formatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}
