package markdown

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var (
	multiNewline = regexp.MustCompile(`\n{3,}`)
	spaceRun     = regexp.MustCompile(`[ \t\r\n\f]+`)
	// a line holding only indentation, quote markers and at most one list marker
	emptyLine   = regexp.MustCompile(`^ *(?:> ?)* *(?:(?:-|\d+\.) )?$`)
	orderedLead = regexp.MustCompile(`^(\d+)([.)])`)
)

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"`", "\\`",
	"~", `\~`,
	"<", `\<`,
)

// containers never carry meaningful whitespace-only text.
var containers = map[string]bool{
	"html": true, "head": true, "body": true, "ul": true, "ol": true, "blockquote": true,
	"div": true, "section": true, "article": true, "table": true, "thead": true,
	"tbody": true, "tr": true, "li": true,
}

type listFrame struct {
	ordered bool
	n       int
}

type mdWriter struct {
	sb    strings.Builder
	lists []listFrame
	quote int
	pre   bool
	code  int
}

// ToMarkdown converts editor HTML back to markdown.
func (c *Converter) ToMarkdown(src string) (string, error) {
	doc, err := html.Parse(strings.NewReader(c.Sanitize(src)))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	w := &mdWriter{}
	w.walk(doc)
	return cleanMarkdown(w.sb.String()), nil
}

func (w *mdWriter) block() {
	w.sb.WriteString("\n\n")
	if w.quote > 0 {
		w.sb.WriteString(strings.Repeat("> ", w.quote))
	}
}

func (w *mdWriter) atLineStart() bool {
	s := w.sb.String()
	return s == "" || strings.HasSuffix(s, "\n") || strings.HasSuffix(s, " ")
}

func (w *mdWriter) children(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		w.walk(c)
	}
}

func (w *mdWriter) walk(n *html.Node) {
	switch n.Type {
	case html.TextNode:
		w.text(n)
		return
	case html.ElementNode:
	default:
		w.children(n)
		return
	}

	switch n.Data {
	case "script", "style", "noscript", "iframe":
		return
	case "h1", "h2", "h3", "h4", "h5", "h6":
		w.block()
		w.sb.WriteString(strings.Repeat("#", int(n.Data[1]-'0')) + " ")
		w.children(n)
		w.block()
	case "p":
		if len(w.lists) > 0 && n.Parent != nil && n.Parent.Data == "li" {
			w.children(n)
			return
		}
		w.block()
		w.children(n)
		w.block()
	case "br":
		w.sb.WriteString("  \n")
	case "hr":
		w.block()
		w.sb.WriteString("---")
		w.block()
	case "strong", "b":
		w.wrap(n, "**")
	case "em", "i":
		w.wrap(n, "*")
	case "del", "s":
		w.wrap(n, "~~")
	case "code":
		if w.pre {
			w.children(n)
			return
		}
		w.code++
		w.wrap(n, "`")
		w.code--
	case "pre":
		w.block()
		w.sb.WriteString("```" + codeLanguage(n) + "\n")
		w.pre = true
		w.children(n)
		w.pre = false
		if !strings.HasSuffix(w.sb.String(), "\n") {
			w.sb.WriteByte('\n')
		}
		w.sb.WriteString("```")
		w.block()
	case "a":
		href := attr(n, "href")
		if href == "" {
			w.children(n)
			return
		}
		w.sb.WriteByte('[')
		w.children(n)
		w.sb.WriteString("](" + href + ")")
	case "img":
		w.sb.WriteString("![" + attr(n, "alt") + "](" + attr(n, "src") + ")")
	case "blockquote":
		w.quote++
		w.block()
		w.children(n)
		w.quote--
		w.block()
	case "ul", "ol":
		if len(w.lists) == 0 {
			w.block()
		}
		w.lists = append(w.lists, listFrame{ordered: n.Data == "ol"})
		w.children(n)
		w.lists = w.lists[:len(w.lists)-1]
		if len(w.lists) == 0 {
			w.block()
		}
	case "li":
		w.listItem(n)
	default:
		w.children(n)
	}
}

func (w *mdWriter) listItem(n *html.Node) {
	if len(w.lists) == 0 {
		w.children(n)
		return
	}
	top := &w.lists[len(w.lists)-1]
	top.n++
	w.sb.WriteByte('\n')
	w.sb.WriteString(strings.Repeat("  ", len(w.lists)-1))
	if top.ordered {
		fmt.Fprintf(&w.sb, "%d. ", top.n)
	} else {
		w.sb.WriteString("- ")
	}
	w.children(n)
}

func (w *mdWriter) wrap(n *html.Node, marker string) {
	w.sb.WriteString(marker)
	w.children(n)
	w.sb.WriteString(marker)
}

func (w *mdWriter) text(n *html.Node) {
	if w.pre {
		w.sb.WriteString(n.Data)
		return
	}
	if strings.TrimSpace(n.Data) == "" && (n.Parent == nil || containers[n.Parent.Data]) {
		return
	}
	s := spaceRun.ReplaceAllString(n.Data, " ")
	if w.atLineStart() {
		s = strings.TrimLeft(s, " ")
	}
	if w.code == 0 {
		s = escapeText(s, w.lineEmpty())
	}
	w.sb.WriteString(s)
}

// lineEmpty reports whether nothing but block prefixes has been written on
// the current line.
func (w *mdWriter) lineEmpty() bool {
	s := w.sb.String()
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	return emptyLine.MatchString(s)
}

// escapeText backslash-escapes literal text so it reads back as text.
func escapeText(s string, lineStart bool) string {
	s = inlineEscaper.Replace(s)
	if !lineStart || s == "" {
		return s
	}
	switch s[0] {
	case '#', '>', '-', '+', '=':
		return `\` + s
	}
	return orderedLead.ReplaceAllString(s, `$1\$2`)
}

func codeLanguage(pre *html.Node) string {
	for c := pre.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode || c.Data != "code" {
			continue
		}
		for _, cls := range strings.Fields(attr(c, "class")) {
			if lang, ok := strings.CutPrefix(cls, "language-"); ok {
				return lang
			}
		}
	}
	return ""
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func cleanMarkdown(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.HasSuffix(line, "  ") && strings.TrimSpace(line) != "" {
			lines[i] = strings.TrimRight(line, " ") + "  "
			continue
		}
		lines[i] = strings.TrimRight(line, " ")
	}
	s = strings.Join(lines, "\n")
	s = multiNewline.ReplaceAllString(s, "\n\n")
	return strings.TrimSpace(s)
}
