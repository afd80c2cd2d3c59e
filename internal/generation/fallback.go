package generation

import (
	"fmt"
	"strings"
)

// DefaultTags is returned whenever tag generation cannot produce valid output.
var DefaultTags = []string{"marketing-technology", "industry-news", "digital-marketing"}

func titles(sources []Source, max int) []string {
	out := make([]string, 0, len(sources))
	for _, s := range sources {
		if t := strings.TrimSpace(s.Title); t != "" {
			out = append(out, t)
		}
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func fallbackTitle(sources []Source) string {
	return "Industry Insights: " + strings.Join(titles(sources, 3), ", ") + "..."
}

func fallbackSummary(sources []Source) string {
	return fmt.Sprintf(
		"This roundup covers %d key articles on %s. Each source is summarized below with the PersX perspective on what it means for personalization teams.",
		len(sources), strings.Join(titles(sources, 0), ", "),
	)
}

func fallbackPerspective(s Source) string {
	title := strings.TrimSpace(s.Title)
	if title == "" {
		title = "This article"
	} else {
		title = "“" + title + "”"
	}
	return title + " highlights a trend worth watching for B2B marketers. Review how it applies to the industries you serve before adjusting your personalization roadmap."
}

func fallbackTags() []string {
	out := make([]string, len(DefaultTags))
	copy(out, DefaultTags)
	return out
}
