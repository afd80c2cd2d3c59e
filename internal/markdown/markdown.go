// Package markdown converts article bodies between the stored markdown form and
// the HTML the admin editor works with.
package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	nethtml "golang.org/x/net/html"
)

type Converter struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func New() *Converter {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(html.WithXHTML(), html.WithUnsafe()),
	)
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("class").OnElements("code", "pre", "span", "div")
	return &Converter{md: md, policy: policy}
}

// ToHTML renders markdown to sanitized HTML.
func (c *Converter) ToHTML(src string) (string, error) {
	var buf bytes.Buffer
	if err := c.md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return c.Sanitize(buf.String()), nil
}

// Sanitize strips anything unsafe from editor-submitted HTML.
func (c *Converter) Sanitize(s string) string {
	return c.policy.Sanitize(s)
}

type Heading struct {
	Level int
	ID    string
	Text  string
}

// Headings lists h2/h3 headings in document order, with the ids ToHTML assigns.
func (c *Converter) Headings(src string) []Heading {
	source := []byte(src)
	doc := c.md.Parser().Parse(text.NewReader(source))
	var out []Heading
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		h, ok := n.(*ast.Heading)
		if !ok || !entering {
			return ast.WalkContinue, nil
		}
		if h.Level < 2 || h.Level > 3 {
			return ast.WalkSkipChildren, nil
		}
		var id string
		if v, ok := h.AttributeString("id"); ok {
			if b, ok := v.([]byte); ok {
				id = string(b)
			}
		}
		out = append(out, Heading{Level: h.Level, ID: id, Text: string(h.Text(source))})
		return ast.WalkSkipChildren, nil
	})
	return out
}

// PlainText renders markdown and returns its visible text with whitespace collapsed.
func (c *Converter) PlainText(src string) string {
	rendered, err := c.ToHTML(src)
	if err != nil {
		return strings.TrimSpace(src)
	}
	doc, err := nethtml.Parse(strings.NewReader(rendered))
	if err != nil {
		return strings.TrimSpace(src)
	}
	var sb strings.Builder
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		if n.Type == nethtml.TextNode {
			sb.WriteString(n.Data)
			sb.WriteByte(' ')
		}
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	walk(doc)
	return strings.Join(strings.Fields(sb.String()), " ")
}

// Excerpt returns at most limit runes of the plain text, cut on a word boundary.
func (c *Converter) Excerpt(src string, limit int) string {
	plain := []rune(c.PlainText(src))
	if limit <= 0 || len(plain) <= limit {
		return string(plain)
	}
	cut := string(plain[:limit])
	if i := strings.LastIndexByte(cut, ' '); i > limit/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "..."
}

// ListItems returns the text of the top-level items of the first list in src.
func (c *Converter) ListItems(src string) []string {
	source := []byte(src)
	doc := c.md.Parser().Parse(text.NewReader(source))
	var out []string
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		list, ok := n.(*ast.List)
		if !ok {
			continue
		}
		for item := list.FirstChild(); item != nil; item = item.NextSibling() {
			if first := item.FirstChild(); first != nil {
				out = append(out, strings.TrimSpace(string(first.Text(source))))
			}
		}
		break
	}
	return out
}
