// Package wizard implements the four-step Quick-Add flow that turns up to
// five article URLs into a curated news roundup.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/persx/persx-sub000/internal/generation"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/platform/metadata"
)

type Step int

const (
	StepCollectingURLs Step = iota + 1
	StepReviewingSummary
	StepReviewingPerspectives
	StepTaggingAndPublishing
)

func (s Step) String() string {
	switch s {
	case StepCollectingURLs:
		return "collecting_urls"
	case StepReviewingSummary:
		return "reviewing_summary"
	case StepReviewingPerspectives:
		return "reviewing_perspectives"
	case StepTaggingAndPublishing:
		return "tagging_and_publishing"
	}
	return "unknown"
}

const MaxURLs = 5

var (
	ErrURLRequired     = errors.New("the first source url is required")
	ErrTooManyURLs     = fmt.Errorf("at most %d source urls", MaxURLs)
	ErrFetchFailed     = errors.New("could not fetch source metadata")
	ErrWrongStep       = errors.New("operation not available at this step")
	ErrUnknownField    = errors.New("unknown field")
	ErrSessionNotFound = errors.New("wizard session not found")
)

// Source is one fetched article plus its generated perspective.
type Source struct {
	URL           string `json:"url"`
	Title         string `json:"title"`
	Name          string `json:"name"`
	Author        string `json:"author,omitempty"`
	PublishedDate string `json:"published_date,omitempty"`
	Description   string `json:"description,omitempty"`
	Perspective   string `json:"perspective,omitempty"`
}

func (s Source) genSource() generation.Source {
	return generation.Source{URL: s.URL, Title: s.Title, Name: s.Name, Author: s.Author, Summary: s.Description}
}

// Session is the whole wizard state. Outputs of later steps survive Back so
// returning forward does not regenerate them.
type Session struct {
	ID      string   `json:"id"`
	Step    Step     `json:"step"`
	URLs    []string `json:"urls"`
	Sources []Source `json:"sources"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`

	// Degraded maps an output field to the reason its fallback was used.
	Degraded  map[string]string `json:"degraded,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}

func (s *Session) clone() *Session {
	cp := *s
	cp.URLs = append([]string(nil), s.URLs...)
	cp.Sources = append([]Source(nil), s.Sources...)
	cp.Tags = append([]string(nil), s.Tags...)
	cp.Degraded = make(map[string]string, len(s.Degraded))
	for k, v := range s.Degraded {
		cp.Degraded[k] = v
	}
	return &cp
}

func (s *Session) mark(field string, fallback bool, reason string) {
	if fallback {
		s.Degraded[field] = reason
	} else {
		delete(s.Degraded, field)
	}
}

func perspectiveField(i int) string { return "perspective[" + strconv.Itoa(i) + "]" }

func (s *Session) genSources() []generation.Source {
	out := make([]generation.Source, len(s.Sources))
	for i, src := range s.Sources {
		out[i] = src.genSource()
	}
	return out
}

// Generator is the subset of generation.Service the wizard drives.
type Generator interface {
	Title(ctx context.Context, sources []generation.Source) generation.Result
	Summary(ctx context.Context, sources []generation.Source, title string) generation.Result
	TitleAndSummary(ctx context.Context, sources []generation.Source) (generation.Result, generation.Result)
	Perspective(ctx context.Context, src generation.Source) generation.Result
	Tags(ctx context.Context, title, summary string, sources []generation.Source) generation.TagsResult
}

type Wizard struct {
	log     *logger.Logger
	fetcher metadata.Fetcher
	gen     Generator
	now     func() time.Time
}

func New(log *logger.Logger, fetcher metadata.Fetcher, gen Generator) *Wizard {
	return &Wizard{
		log:     log.With("component", "QuickAddWizard"),
		fetcher: fetcher,
		gen:     gen,
		now:     time.Now,
	}
}

func (w *Wizard) Start() *Session {
	now := w.now().UTC()
	return &Session{
		ID:        uuid.NewString(),
		Step:      StepCollectingURLs,
		URLs:      make([]string, MaxURLs),
		Degraded:  map[string]string{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// SetURLs replaces the URL slots. Only allowed while collecting URLs.
func (w *Wizard) SetURLs(s *Session, urls []string) (*Session, error) {
	if s.Step != StepCollectingURLs {
		return s, ErrWrongStep
	}
	if len(urls) > MaxURLs {
		return s, ErrTooManyURLs
	}
	next := s.clone()
	next.URLs = make([]string, MaxURLs)
	for i, u := range urls {
		next.URLs[i] = strings.TrimSpace(u)
	}
	next.UpdatedAt = w.now().UTC()
	return next, nil
}

// Next advances one step, running that step's fetch and generation. On error
// the returned session is s unchanged.
func (w *Wizard) Next(ctx context.Context, s *Session) (*Session, error) {
	next := s.clone()
	switch s.Step {
	case StepCollectingURLs:
		if err := w.collect(ctx, next); err != nil {
			return s, err
		}
	case StepReviewingSummary:
		w.perspectives(ctx, next)
	case StepReviewingPerspectives:
		w.tags(ctx, next)
	default:
		return s, ErrWrongStep
	}
	next.Step++
	next.UpdatedAt = w.now().UTC()
	return next, nil
}

func (w *Wizard) Back(s *Session) (*Session, error) {
	if s.Step <= StepCollectingURLs {
		return s, ErrWrongStep
	}
	next := s.clone()
	next.Step--
	next.UpdatedAt = w.now().UTC()
	return next, nil
}

func (w *Wizard) collect(ctx context.Context, s *Session) error {
	if len(s.URLs) == 0 || strings.TrimSpace(s.URLs[0]) == "" {
		return ErrURLRequired
	}
	urls := make([]string, 0, MaxURLs)
	for _, u := range s.URLs {
		if u = strings.TrimSpace(u); u != "" {
			urls = append(urls, u)
		}
	}
	if s.Title != "" && sameURLs(urls, s.Sources) {
		return nil
	}
	metas, err := w.fetcher.FetchAll(ctx, urls)
	if err != nil {
		w.log.Warn("quick-add metadata fetch failed", "urls", len(urls), "error", err)
		return fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	prev := make(map[string]int, len(s.Sources))
	for i, src := range s.Sources {
		prev[src.URL] = i
	}
	oldSources, oldDegraded := s.Sources, s.Degraded
	s.Degraded = make(map[string]string, len(oldDegraded))
	for k, v := range oldDegraded {
		if !strings.HasPrefix(k, "perspective[") {
			s.Degraded[k] = v
		}
	}
	s.Sources = make([]Source, len(metas))
	for i, m := range metas {
		src := Source{
			URL:           urls[i],
			Title:         m.Title,
			Name:          m.SiteName,
			Author:        m.Author,
			PublishedDate: m.PublishedTime,
			Description:   m.Description,
		}
		// a kept source keeps its perspective and any fallback mark on it
		if j, ok := prev[src.URL]; ok {
			src.Perspective = oldSources[j].Perspective
			if reason, ok := oldDegraded[perspectiveField(j)]; ok {
				s.Degraded[perspectiveField(i)] = reason
			}
		}
		s.Sources[i] = src
	}

	title, summary := w.gen.TitleAndSummary(ctx, s.genSources())
	s.Title, s.Summary = title.Value, summary.Value
	s.mark("title", title.Fallback, title.Reason)
	s.mark("summary", summary.Fallback, summary.Reason)

	// tags describe the source set
	s.Tags = nil
	delete(s.Degraded, "tags")
	return nil
}

func (w *Wizard) perspectives(ctx context.Context, s *Session) {
	results := make([]generation.Result, len(s.Sources))
	var g errgroup.Group
	g.SetLimit(MaxURLs)
	for i, src := range s.Sources {
		if src.Perspective != "" {
			continue
		}
		g.Go(func() error {
			results[i] = w.gen.Perspective(ctx, src.genSource())
			return nil
		})
	}
	_ = g.Wait()
	for i := range s.Sources {
		if s.Sources[i].Perspective != "" {
			continue
		}
		s.Sources[i].Perspective = results[i].Value
		s.mark(perspectiveField(i), results[i].Fallback, results[i].Reason)
	}
}

func (w *Wizard) tags(ctx context.Context, s *Session) {
	if len(s.Tags) > 0 {
		return
	}
	res := w.gen.Tags(ctx, s.Title, s.Summary, s.genSources())
	s.Tags = append([]string(nil), res.Tags...)
	s.mark("tags", res.Fallback, res.Reason)
}

// Regenerate reruns one AI output without touching earlier steps. Fields are
// "title", "summary", "tags" and "perspective:<index>".
func (w *Wizard) Regenerate(ctx context.Context, s *Session, field string) (*Session, error) {
	next := s.clone()
	switch {
	case field == "title" || field == "summary":
		if s.Step < StepReviewingSummary {
			return s, ErrWrongStep
		}
		if field == "title" {
			r := w.gen.Title(ctx, next.genSources())
			next.Title = r.Value
			next.mark("title", r.Fallback, r.Reason)
		} else {
			r := w.gen.Summary(ctx, next.genSources(), next.Title)
			next.Summary = r.Value
			next.mark("summary", r.Fallback, r.Reason)
		}
	case field == "tags":
		if s.Step < StepTaggingAndPublishing {
			return s, ErrWrongStep
		}
		next.Tags = nil
		w.tags(ctx, next)
	case strings.HasPrefix(field, "perspective:"):
		if s.Step < StepReviewingPerspectives {
			return s, ErrWrongStep
		}
		i, err := strconv.Atoi(strings.TrimPrefix(field, "perspective:"))
		if err != nil || i < 0 || i >= len(next.Sources) {
			return s, fmt.Errorf("%w: %s", ErrUnknownField, field)
		}
		r := w.gen.Perspective(ctx, next.Sources[i].genSource())
		next.Sources[i].Perspective = r.Value
		next.mark(perspectiveField(i), r.Fallback, r.Reason)
	default:
		return s, fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	next.UpdatedAt = w.now().UTC()
	return next, nil
}

// Edit carries manual changes. Nil fields are left alone; an edited field is
// no longer considered degraded.
type Edit struct {
	Title        *string        `json:"title,omitempty"`
	Summary      *string        `json:"summary,omitempty"`
	Perspectives map[int]string `json:"perspectives,omitempty"`
	Tags         []string       `json:"tags,omitempty"`
}

func (w *Wizard) Edit(s *Session, e Edit) (*Session, error) {
	if s.Step < StepReviewingSummary {
		return s, ErrWrongStep
	}
	next := s.clone()
	if e.Title != nil {
		next.Title = strings.TrimSpace(*e.Title)
		delete(next.Degraded, "title")
	}
	if e.Summary != nil {
		next.Summary = strings.TrimSpace(*e.Summary)
		delete(next.Degraded, "summary")
	}
	for i, p := range e.Perspectives {
		if i < 0 || i >= len(next.Sources) {
			return s, fmt.Errorf("%w: perspective:%d", ErrUnknownField, i)
		}
		next.Sources[i].Perspective = strings.TrimSpace(p)
		delete(next.Degraded, perspectiveField(i))
	}
	if e.Tags != nil {
		next.Tags = dedupe(e.Tags)
		delete(next.Degraded, "tags")
	}
	next.UpdatedAt = w.now().UTC()
	return next, nil
}

// Body renders the per-source perspectives as markdown sections.
func (s *Session) Body() string {
	var b strings.Builder
	for i, src := range s.Sources {
		if i > 0 {
			b.WriteString("\n\n")
		}
		heading := src.Title
		if heading == "" {
			heading = src.Name
		}
		b.WriteString("### ")
		b.WriteString(heading)
		b.WriteString("\n\n")
		b.WriteString(src.Perspective)
	}
	return b.String()
}

// ReadyToSave reports whether the session reached the final step.
func (s *Session) ReadyToSave() bool { return s.Step == StepTaggingAndPublishing }

func sameURLs(urls []string, sources []Source) bool {
	if len(urls) != len(sources) {
		return false
	}
	for i := range urls {
		if urls[i] != sources[i].URL {
			return false
		}
	}
	return true
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, t := range in {
		t = strings.TrimSpace(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
