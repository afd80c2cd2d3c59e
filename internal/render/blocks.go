package render

import (
	"sort"
	"strconv"

	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"

	"github.com/persx/persx-sub000/internal/domain/blocks"
)

const containerClass = "mx-auto max-w-7xl px-4 sm:px-6 lg:px-8"

// Blocks renders bs in ascending order. Unknown block types render nothing.
func (r *Renderer) Blocks(bs []blocks.Block, industry blocks.Industry) g.Node {
	sorted := make([]blocks.Block, len(bs))
	copy(sorted, bs)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	nodes := make([]g.Node, 0, len(sorted))
	for _, b := range sorted {
		n := r.block(b, industry)
		if n == nil {
			continue
		}
		if !b.Type.FullWidth() {
			n = Div(Class(containerClass), n)
		}
		nodes = append(nodes, n)
	}
	return g.Group(nodes)
}

func (r *Renderer) block(b blocks.Block, industry blocks.Industry) g.Node {
	var inner g.Node
	switch d := blocks.Resolve(b, industry).(type) {
	case blocks.HeroData:
		inner = heroBlock(d)
	case blocks.FeatureGridData:
		inner = featureGridBlock(d)
	case blocks.CTABannerData:
		inner = ctaBannerBlock(d)
	case blocks.CalloutData:
		inner = calloutBlock(d)
	case blocks.MartechIntegrationsData:
		inner = martechBlock(d)
	case blocks.ContactFormData:
		inner = contactFormBlock(d, industry)
	case blocks.TrustCardsData:
		inner = trustCardsBlock(d)
	case blocks.StepsData:
		inner = stepsBlock(d)
	case blocks.TwoColumnData:
		inner = twoColumnBlock(d)
	default:
		r.log.Warn("skipping unknown block type", "block_id", b.ID, "block_type", string(b.Type))
		return nil
	}
	return Section(Class("block block-"+string(b.Type)), g.Attr("data-block-id", b.ID), inner)
}

func ctaLink(l blocks.Link, class string) g.Node {
	if l.Text == "" {
		return nil
	}
	return A(Href(l.URL), Class(class), g.Text(l.Text))
}

func heroBlock(d blocks.HeroData) g.Node {
	return Div(
		Class("grid items-center gap-10 py-20 lg:grid-cols-2"),
		Div(
			H1(Class("text-4xl font-bold tracking-tight sm:text-6xl"), g.Text(d.Headline)),
			P(Class("mt-6 text-lg text-slate-600"), g.Text(d.Subheadline)),
			Div(
				Class("mt-10 flex gap-4"),
				ctaLink(d.PrimaryCTA, "btn btn-primary"),
				ctaLink(d.SecondaryCTA, "btn btn-ghost"),
			),
		),
		g.If(d.ImageURL != "", Img(Src(d.ImageURL), Alt(d.ImageAlt), Class("rounded-2xl shadow-xl"))),
	)
}

func featureGridBlock(d blocks.FeatureGridData) g.Node {
	cols := d.Columns
	if cols < 1 || cols > 4 {
		cols = 3
	}
	return Div(
		Class("py-16"),
		H2(Class("text-3xl font-bold text-center"), g.Text(d.Heading)),
		P(Class("mt-4 text-center text-slate-600"), g.Text(d.Subheading)),
		Div(
			Class("mt-12 grid gap-8 md:grid-cols-"+strconv.Itoa(cols)),
			g.Group(g.Map(d.Features, func(f blocks.Feature) g.Node {
				return Div(
					Class("feature rounded-xl border border-slate-200 p-6"),
					Span(Class("iconify size-6"), g.Attr("data-icon", "lucide:"+f.Icon), g.Attr("aria-hidden", "true")),
					H3(Class("mt-4 font-semibold"), g.Text(f.Title)),
					P(Class("mt-2 text-sm text-slate-600"), g.Text(f.Description)),
				)
			})),
		),
	)
}

func ctaBannerBlock(d blocks.CTABannerData) g.Node {
	variant := d.Variant
	if variant == "" {
		variant = "primary"
	}
	return Div(
		Class("cta-banner cta-"+variant+" w-full py-16 text-center"),
		Div(
			Class(containerClass),
			H2(Class("text-3xl font-bold"), g.Text(d.Heading)),
			P(Class("mt-4"), g.Text(d.Description)),
			Div(Class("mt-8"), ctaLink(d.CTA, "btn btn-inverse")),
		),
	)
}

func calloutBlock(d blocks.CalloutData) g.Node {
	style := d.Style
	if style == "" {
		style = "info"
	}
	return Aside(
		Class("callout callout-"+style+" my-8 rounded-lg border-l-4 p-6"),
		g.If(d.Title != "", Strong(Class("block font-semibold"), g.Text(d.Title))),
		P(Class("mt-2"), g.Text(d.Content)),
	)
}

func martechBlock(d blocks.MartechIntegrationsData) g.Node {
	return Div(
		Class("py-16 text-center"),
		H2(Class("text-3xl font-bold"), g.Text(d.Heading)),
		P(Class("mt-4 text-slate-600"), g.Text(d.Subheading)),
		Ul(
			Class("mt-10 flex flex-wrap justify-center gap-6"),
			g.Group(g.Map(d.Tools, func(t blocks.MartechTool) g.Node {
				return Li(
					Class("martech-tool rounded-lg border px-4 py-3"),
					g.If(t.LogoURL != "", Img(Src(t.LogoURL), Alt(t.Name), Class("h-8"))),
					Span(Class("font-medium"), g.Text(t.Name)),
					g.If(t.Category != "", Span(Class("ml-2 text-xs uppercase text-slate-500"), g.Text(t.Category))),
				)
			})),
		),
	)
}

func contactFormBlock(d blocks.ContactFormData, industry blocks.Industry) g.Node {
	submit := d.SubmitText
	if submit == "" {
		submit = "Send"
	}
	return Div(
		Class("grid gap-12 py-16 lg:grid-cols-2"),
		Div(
			H2(Class("text-3xl font-bold"), g.Text(d.Heading)),
			P(Class("mt-4 text-lg"), g.Text(d.Headline)),
			Ul(
				Class("mt-6 space-y-3"),
				g.Group(g.Map(d.Reasons, func(reason string) g.Node {
					return Li(Class("flex gap-2"), Span(Class("text-emerald-600"), g.Text("✓")), g.Text(reason))
				})),
			),
		),
		g.El("form",
			Class("space-y-4"),
			g.Attr("method", "post"),
			g.Attr("action", "/api/contact"),
			formField("name", "Name", "text"),
			formField("email", "Work email", "email"),
			formField("company", "Company", "text"),
			g.El("textarea", Name("message"), Placeholder("How can we help?"), Class("w-full rounded border p-2")),
			g.If(industry != "", Input(Type("hidden"), Name("industry"), Value(string(industry)))),
			Button(Type("submit"), Class("btn btn-primary"), g.Text(submit)),
		),
	)
}

func formField(name, label, typ string) g.Node {
	return g.El("label",
		Class("block"),
		Span(Class("text-sm font-medium"), g.Text(label)),
		Input(Type(typ), Name(name), g.Attr("required"), Class("mt-1 w-full rounded border p-2")),
	)
}

func trustCardsBlock(d blocks.TrustCardsData) g.Node {
	return Div(
		Class("py-16"),
		g.If(d.Heading != "", H2(Class("text-center text-3xl font-bold"), g.Text(d.Heading))),
		Div(
			Class("mt-10 grid gap-6 md:grid-cols-3"),
			g.Group(g.Map(d.Cards, func(c blocks.TrustCard) g.Node {
				return Div(
					Class("trust-card rounded-xl bg-slate-50 p-6"),
					H3(Class("font-semibold"), g.Text(c.Title)),
					P(Class("mt-2 text-sm text-slate-600"), g.Text(c.Description)),
				)
			})),
		),
	)
}

func stepsBlock(d blocks.StepsData) g.Node {
	items := make([]g.Node, 0, len(d.Steps))
	for i, s := range d.Steps {
		items = append(items, Li(
			Class("step flex gap-4"),
			Span(Class("step-number flex size-10 items-center justify-center rounded-full bg-slate-900 text-white"), g.Text(strconv.Itoa(i+1))),
			Div(
				H3(Class("font-semibold"), g.Text(s.Title)),
				P(Class("text-sm text-slate-600"), g.Text(s.Description)),
			),
		))
	}
	return Div(
		Class("py-16"),
		H2(Class("text-center text-3xl font-bold"), g.Text(d.Heading)),
		g.If(d.Subheading != "", P(Class("mt-4 text-center text-slate-600"), g.Text(d.Subheading))),
		Ol(Class("mx-auto mt-10 max-w-2xl space-y-8"), g.Group(items)),
	)
}

func twoColumnBlock(d blocks.TwoColumnData) g.Node {
	bg := d.Background
	if bg == "" {
		bg = "bg-slate-50"
	}
	return Div(
		Class("w-full py-16 "+bg),
		Div(
			Class(containerClass+" grid gap-12 md:grid-cols-2"),
			column(d.Left),
			column(d.Right),
		),
	)
}

func column(c blocks.Column) g.Node {
	var cta g.Node
	if c.CTA != nil {
		cta = ctaLink(*c.CTA, "mt-6 inline-block font-semibold underline")
	}
	return Div(
		H3(Class("text-2xl font-bold"), g.Text(c.Heading)),
		P(Class("mt-4 text-slate-700"), g.Text(c.Content)),
		g.If(len(c.Bullets) > 0, Ul(
			Class("mt-4 list-disc pl-5"),
			g.Group(g.Map(c.Bullets, func(s string) g.Node { return Li(g.Text(s)) })),
		)),
		cta,
	)
}
