package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	types "github.com/persx/persx-sub000/internal/domain"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/services"
)

// SeedFile is the YAML fixture format for `persx seed`.
type SeedFile struct {
	Content []SeedRecord `yaml:"content"`
}

type SeedRecord struct {
	Title            string   `yaml:"title"`
	Slug             string   `yaml:"slug"`
	Type             string   `yaml:"type"`
	Status           string   `yaml:"status"`
	Excerpt          string   `yaml:"excerpt"`
	Author           string   `yaml:"author"`
	Body             string   `yaml:"body"`
	Tags             []string `yaml:"tags"`
	Industries       []string `yaml:"industries"`
	PersxPerspective string   `yaml:"persx_perspective"`
	Blocks           []any    `yaml:"blocks"`
}

func ParseSeed(r io.Reader) (*SeedFile, error) {
	var f SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

func (r SeedRecord) input() (services.ContentInput, error) {
	in := services.ContentInput{
		Title:            r.Title,
		Slug:             r.Slug,
		ContentType:      types.ContentType(r.Type),
		Status:           types.ContentStatus(r.Status),
		Excerpt:          r.Excerpt,
		Author:           r.Author,
		Tags:             r.Tags,
		Industries:       r.Industries,
		PersxPerspective: r.PersxPerspective,
	}
	if r.Body != "" {
		body := r.Body
		in.Content = &body
	}
	if len(r.Blocks) > 0 {
		raw, err := json.Marshal(r.Blocks)
		if err != nil {
			return in, fmt.Errorf("encode blocks for %q: %w", r.Title, err)
		}
		in.ContentBlocks = raw
	}
	return in, nil
}

type SeedResult struct {
	Created int
	Skipped int
}

// Seed creates every record in f. Records whose slug already exists are
// skipped, so re-running a fixture is safe.
func Seed(ctx context.Context, log *logger.Logger, content services.ContentService, f *SeedFile) (SeedResult, error) {
	var res SeedResult
	for _, r := range f.Content {
		in, err := r.input()
		if err != nil {
			return res, err
		}
		rec, err := content.Create(ctx, in)
		if errors.Is(err, perrors.ErrConflict) {
			log.Info("seed record exists; skipping", "title", r.Title, "slug", r.Slug)
			res.Skipped++
			continue
		}
		if err != nil {
			return res, fmt.Errorf("seed %q: %w", r.Title, err)
		}
		log.Info("seed record created", "content_id", rec.ID.String(), "slug", rec.Slug)
		res.Created++
	}
	return res, nil
}
