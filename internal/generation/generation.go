// Package generation drafts roundup titles, summaries, perspectives and tags
// with an LLM, substituting a deterministic fallback whenever the model fails.
package generation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/platform/openai"
)

type Op string

const (
	OpTitleAndSummary Op = "title_and_summary"
	OpTitleOnly       Op = "title_only"
	OpSummaryOnly     Op = "summary_only"
	OpPerspective     Op = "perspective"
	OpTags            Op = "tags"
)

func ParseOp(s string) (Op, bool) {
	switch op := Op(strings.TrimSpace(s)); op {
	case OpTitleAndSummary, OpTitleOnly, OpSummaryOnly, OpPerspective, OpTags:
		return op, true
	}
	return "", false
}

// Source is the caller-supplied description of one article.
type Source struct {
	URL     string `json:"url,omitempty"`
	Title   string `json:"title"`
	Name    string `json:"name,omitempty"`
	Author  string `json:"author,omitempty"`
	Summary string `json:"summary,omitempty"`
}

// Result is generated text plus whether it came from the fallback path.
type Result struct {
	Value    string
	Fallback bool
	Reason   string
}

type TagsResult struct {
	Tags     []string
	Fallback bool
	Reason   string
}

var ErrNotConfigured = errors.New("llm not configured")

const tagsSchema = `{
  "type": "array",
  "minItems": 1,
  "maxItems": 8,
  "items": {"type": "string", "minLength": 2, "maxLength": 40, "pattern": "^[a-z0-9]+(-[a-z0-9]+)*$"}
}`

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

type Service struct {
	llm        openai.Client
	log        *logger.Logger
	tagsSchema *jsonschema.Schema
}

// NewService accepts a nil client; every operation then returns its fallback.
func NewService(llm openai.Client, log *logger.Logger) (*Service, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("tags.json", strings.NewReader(tagsSchema)); err != nil {
		return nil, fmt.Errorf("add tags schema: %w", err)
	}
	schema, err := compiler.Compile("tags.json")
	if err != nil {
		return nil, fmt.Errorf("compile tags schema: %w", err)
	}
	return &Service{llm: llm, log: log.With("service", "GenerationService"), tagsSchema: schema}, nil
}

func (s *Service) complete(ctx context.Context, op Op, user string, maxTokens int64) (string, error) {
	if s.llm == nil {
		return "", ErrNotConfigured
	}
	out, err := s.llm.GenerateText(ctx, openai.TextRequest{
		System:      systemPrompt,
		User:        user,
		MaxTokens:   maxTokens,
		Temperature: 0.7,
	})
	if err != nil {
		s.log.Warn("generation failed, using fallback", "op", string(op), "error", err)
		return "", err
	}
	return out, nil
}

func (s *Service) Title(ctx context.Context, sources []Source) Result {
	out, err := s.complete(ctx, OpTitleOnly, titlePrompt(sources), titleMaxTokens)
	out = cleanLine(out)
	if err != nil || out == "" {
		return Result{Value: fallbackTitle(sources), Fallback: true, Reason: reason(err)}
	}
	return Result{Value: out}
}

// Summary drafts the roundup summary. title may be empty.
func (s *Service) Summary(ctx context.Context, sources []Source, title string) Result {
	out, err := s.complete(ctx, OpSummaryOnly, summaryPrompt(sources, title), summaryMaxTokens)
	out = strings.TrimSpace(out)
	if err != nil || out == "" {
		return Result{Value: fallbackSummary(sources), Fallback: true, Reason: reason(err)}
	}
	return Result{Value: out}
}

// TitleAndSummary generates the title first so the summary can reference it.
func (s *Service) TitleAndSummary(ctx context.Context, sources []Source) (Result, Result) {
	title := s.Title(ctx, sources)
	return title, s.Summary(ctx, sources, title.Value)
}

func (s *Service) Perspective(ctx context.Context, src Source) Result {
	out, err := s.complete(ctx, OpPerspective, perspectivePrompt(src), perspectiveMaxTokens)
	out = strings.TrimSpace(out)
	if err != nil || out == "" {
		return Result{Value: fallbackPerspective(src), Fallback: true, Reason: reason(err)}
	}
	return Result{Value: out}
}

func (s *Service) Tags(ctx context.Context, title, summary string, sources []Source) TagsResult {
	out, err := s.complete(ctx, OpTags, tagsPrompt(title, summary, sources), tagsMaxTokens)
	if err != nil {
		return TagsResult{Tags: fallbackTags(), Fallback: true, Reason: reason(err)}
	}
	tags, err := s.parseTags(out)
	if err != nil {
		s.log.Warn("model returned invalid tags, using fallback", "error", err)
		return TagsResult{Tags: fallbackTags(), Fallback: true, Reason: reason(err)}
	}
	return TagsResult{Tags: tags}
}

// parseTags extracts the JSON array from the completion, normalizes each tag
// to a slug and validates the result.
func (s *Service) parseTags(raw string) ([]string, error) {
	start, end := strings.Index(raw, "["), strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no json array in tags output")
	}
	var items []string
	if err := json.Unmarshal([]byte(raw[start:end+1]), &items); err != nil {
		return nil, fmt.Errorf("decode tags: %w", err)
	}
	seen := map[string]bool{}
	tags := make([]string, 0, len(items))
	doc := make([]interface{}, 0, len(items))
	for _, it := range items {
		t := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(strings.TrimSpace(it)), "-"), "-")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		tags = append(tags, t)
		doc = append(doc, t)
	}
	if err := s.tagsSchema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tags: %w", err)
	}
	return tags, nil
}

func cleanLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimPrefix(s, "Title:")
	return strings.Trim(strings.TrimSpace(s), `"'“”`)
}

func reason(err error) string {
	if err == nil {
		return "empty completion"
	}
	return err.Error()
}
