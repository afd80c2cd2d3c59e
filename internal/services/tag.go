package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/persx/persx-sub000/internal/data/repos"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/domain/content"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

var ErrInvalidCategory = fmt.Errorf("%w: invalid tag category", perrors.ErrInvalidArgument)

type TagInput struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Color    string `json:"color"`
}

type TagService interface {
	List(ctx context.Context, category string) ([]*types.Tag, error)
	Create(ctx context.Context, in TagInput) (*types.Tag, error)
	// ApplyUsageDelta creates missing tags from after and moves usage counts
	// by the difference between the two name lists.
	ApplyUsageDelta(dbc dbctx.Context, before, after []string) error
}

type tagService struct {
	log     *logger.Logger
	tagRepo repos.TagRepo
}

func NewTagService(log *logger.Logger, tagRepo repos.TagRepo) TagService {
	return &tagService{log: log.With("service", "TagService"), tagRepo: tagRepo}
}

func parseCategory(s string) (*types.TagCategory, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	c := content.TagCategory(s)
	if !c.Valid() {
		return nil, ErrInvalidCategory
	}
	return &c, nil
}

func (s *tagService) List(ctx context.Context, category string) ([]*types.Tag, error) {
	c, err := parseCategory(category)
	if err != nil {
		return nil, err
	}
	return s.tagRepo.List(dbctx.Of(ctx), c)
}

func (s *tagService) Create(ctx context.Context, in TagInput) (*types.Tag, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name is required", perrors.ErrInvalidArgument)
	}
	c, err := parseCategory(in.Category)
	if err != nil {
		return nil, err
	}
	created, err := s.tagRepo.Create(dbctx.Of(ctx), []*types.Tag{{
		Name:     name,
		Category: c,
		Color:    strings.TrimSpace(in.Color),
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (s *tagService) ApplyUsageDelta(dbc dbctx.Context, before, after []string) error {
	prev := make(map[string]bool, len(before))
	for _, n := range before {
		prev[n] = true
	}
	next := make(map[string]bool, len(after))
	var added, removed []string
	for _, n := range after {
		next[n] = true
		if !prev[n] {
			added = append(added, n)
		}
	}
	for _, n := range before {
		if !next[n] {
			removed = append(removed, n)
		}
	}
	if len(added) == 0 && len(removed) == 0 {
		return nil
	}

	if len(added) > 0 {
		existing, err := s.tagRepo.GetByNames(dbc, added)
		if err != nil {
			return err
		}
		have := make(map[string]bool, len(existing))
		for _, t := range existing {
			have[t.Name] = true
		}
		var missing []*types.Tag
		for _, n := range added {
			if !have[n] {
				missing = append(missing, &types.Tag{Name: n})
			}
		}
		if _, err := s.tagRepo.Create(dbc, missing); err != nil {
			return fmt.Errorf("create tags: %w", err)
		}
		if err := s.tagRepo.AdjustUsage(dbc, added, 1); err != nil {
			return err
		}
	}
	if err := s.tagRepo.AdjustUsage(dbc, removed, -1); err != nil {
		return err
	}
	s.log.Debug("tag usage adjusted", "added", len(added), "removed", len(removed))
	return nil
}
