package services

import (
	"context"
	"errors"
	"fmt"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/markdown"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
	"github.com/persx/persx-sub000/internal/wizard"
)

type QuickAddService interface {
	Start(ctx context.Context) (*wizard.Session, error)
	Get(ctx context.Context, id string) (*wizard.Session, error)
	SetURLs(ctx context.Context, id string, urls []string) (*wizard.Session, error)
	Next(ctx context.Context, id string) (*wizard.Session, error)
	Back(ctx context.Context, id string) (*wizard.Session, error)
	Regenerate(ctx context.Context, id string, field string) (*wizard.Session, error)
	Edit(ctx context.Context, id string, e wizard.Edit) (*wizard.Session, error)
	Save(ctx context.Context, id string, status types.ContentStatus) (*types.ContentRecord, error)
}

type quickAddService struct {
	log     *logger.Logger
	wiz     *wizard.Wizard
	store   wizard.Store
	content ContentService
	md      *markdown.Converter
}

func NewQuickAddService(log *logger.Logger, wiz *wizard.Wizard, store wizard.Store, content ContentService, md *markdown.Converter) QuickAddService {
	return &quickAddService{
		log:     log.With("service", "QuickAddService"),
		wiz:     wiz,
		store:   store,
		content: content,
		md:      md,
	}
}

func (s *quickAddService) Start(ctx context.Context) (*wizard.Session, error) {
	sess := s.wiz.Start()
	if err := s.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *quickAddService) Get(ctx context.Context, id string) (*wizard.Session, error) {
	sess, err := s.store.Get(ctx, id)
	if errors.Is(err, wizard.ErrSessionNotFound) {
		return nil, fmt.Errorf("%w: %w", perrors.ErrNotFound, err)
	}
	return sess, err
}

// step loads the session, applies op and stores the result. A failing op
// leaves the stored session untouched and returns it with the error.
func (s *quickAddService) step(ctx context.Context, id string, op func(*wizard.Session) (*wizard.Session, error)) (*wizard.Session, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	next, err := op(sess)
	if err != nil {
		return sess, err
	}
	if err := s.store.Put(ctx, next); err != nil {
		return nil, err
	}
	return next, nil
}

func (s *quickAddService) SetURLs(ctx context.Context, id string, urls []string) (*wizard.Session, error) {
	return s.step(ctx, id, func(sess *wizard.Session) (*wizard.Session, error) {
		return s.wiz.SetURLs(sess, urls)
	})
}

func (s *quickAddService) Next(ctx context.Context, id string) (*wizard.Session, error) {
	return s.step(ctx, id, func(sess *wizard.Session) (*wizard.Session, error) {
		return s.wiz.Next(ctx, sess)
	})
}

func (s *quickAddService) Back(ctx context.Context, id string) (*wizard.Session, error) {
	return s.step(ctx, id, s.wiz.Back)
}

func (s *quickAddService) Regenerate(ctx context.Context, id string, field string) (*wizard.Session, error) {
	return s.step(ctx, id, func(sess *wizard.Session) (*wizard.Session, error) {
		return s.wiz.Regenerate(ctx, sess, field)
	})
}

func (s *quickAddService) Edit(ctx context.Context, id string, e wizard.Edit) (*wizard.Session, error) {
	return s.step(ctx, id, func(sess *wizard.Session) (*wizard.Session, error) {
		return s.wiz.Edit(sess, e)
	})
}

// Save writes the roundup as one news record and ends the session.
func (s *quickAddService) Save(ctx context.Context, id string, status types.ContentStatus) (*types.ContentRecord, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !sess.ReadyToSave() {
		return nil, wizard.ErrWrongStep
	}
	if status == "" {
		status = types.StatusDraft
	}
	if status != types.StatusDraft && status != types.StatusPublished {
		return nil, ErrInvalidStatus
	}

	body := sess.Body()
	sources := make([]types.ExternalSource, len(sess.Sources))
	for i, src := range sess.Sources {
		sources[i] = types.ExternalSource{
			URL:           src.URL,
			Name:          src.Name,
			Title:         src.Title,
			Author:        src.Author,
			PublishedDate: src.PublishedDate,
			Summary:       src.Description,
		}
	}
	in := ContentInput{
		Title:            sess.Title,
		ContentType:      types.ContentTypeNews,
		Status:           status,
		Content:          &body,
		Excerpt:          s.md.Excerpt(sess.Summary, excerptLen),
		Tags:             sess.Tags,
		SourceType:       types.SourceExternalCurated,
		ExternalSources:  sources,
		OverallSummary:   sess.Summary,
		PersxPerspective: body,
	}

	rec, err := s.content.Create(ctx, in)
	if errors.Is(err, perrors.ErrConflict) {
		in.Slug = Slugify(sess.Title) + "-" + sess.ID[:8]
		rec, err = s.content.Create(ctx, in)
	}
	if err != nil {
		return nil, err
	}
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.Warn("quick-add session cleanup failed", "session_id", id, "error", err)
	}
	s.log.Info("quick-add roundup saved", "content_id", rec.ID.String(), "sources", len(sources), "degraded", len(sess.Degraded))
	return rec, nil
}
