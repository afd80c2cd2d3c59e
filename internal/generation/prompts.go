package generation

import (
	"fmt"
	"strings"
)

const systemPrompt = "You are a senior content strategist at PersX, a B2B website personalization platform. " +
	"You write for marketing leaders at mid-market and enterprise companies. Be concise, concrete and free of hype."

const (
	titleMaxTokens       = 100
	summaryMaxTokens     = 500
	perspectiveMaxTokens = 400
	tagsMaxTokens        = 100
)

func sourceDigest(sources []Source) string {
	var b strings.Builder
	for i, s := range sources {
		fmt.Fprintf(&b, "%d. %s", i+1, s.Title)
		if s.Name != "" {
			fmt.Fprintf(&b, " (%s)", s.Name)
		}
		b.WriteByte('\n')
		if s.Summary != "" {
			fmt.Fprintf(&b, "   %s\n", s.Summary)
		}
		if s.URL != "" {
			fmt.Fprintf(&b, "   %s\n", s.URL)
		}
	}
	return b.String()
}

func titlePrompt(sources []Source) string {
	return "Write one headline for a news roundup that covers the articles below. " +
		"Keep it under 12 words. Return only the headline, no quotes.\n\n" + sourceDigest(sources)
}

func summaryPrompt(sources []Source, title string) string {
	var b strings.Builder
	b.WriteString("Write a 2-3 paragraph summary for a news roundup")
	if title != "" {
		fmt.Fprintf(&b, " titled %q", title)
	}
	b.WriteString(". Explain what the articles have in common and why it matters for B2B marketers. " +
		"Return plain text only.\n\n")
	b.WriteString(sourceDigest(sources))
	return b.String()
}

func perspectivePrompt(s Source) string {
	return "Write the PersX perspective on the article below in one short paragraph: what it means for " +
		"teams personalizing their website by industry, and one concrete action to take. Return plain text only.\n\n" +
		sourceDigest([]Source{s})
}

func tagsPrompt(title, summary string, sources []Source) string {
	var b strings.Builder
	b.WriteString("Suggest 3 to 6 tags for the roundup below. Tags are lowercase, hyphen-separated, " +
		"and describe topics, industries or martech tools. Respond with a JSON array of strings and nothing else.\n\n")
	if title != "" {
		fmt.Fprintf(&b, "Title: %s\n", title)
	}
	if summary != "" {
		fmt.Fprintf(&b, "Summary: %s\n", summary)
	}
	b.WriteString(sourceDigest(sources))
	return b.String()
}
