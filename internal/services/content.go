package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/persx/persx-sub000/internal/data/graph"
	"github.com/persx/persx-sub000/internal/data/repos"
	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/domain/blocks"
	"github.com/persx/persx-sub000/internal/markdown"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

var (
	ErrInvalidStatus      = fmt.Errorf("%w: invalid status transition", perrors.ErrInvalidArgument)
	ErrInvalidContentType = fmt.Errorf("%w: invalid content type", perrors.ErrInvalidArgument)
	ErrInvalidBlocks      = fmt.Errorf("%w: invalid content blocks", perrors.ErrInvalidArgument)
)

const excerptLen = 200

// transitions lists the allowed status changes; staying put is always allowed.
var transitions = map[types.ContentStatus][]types.ContentStatus{
	types.StatusDraft:     {types.StatusPublished, types.StatusArchived},
	types.StatusPublished: {types.StatusArchived, types.StatusDraft},
	types.StatusArchived:  {types.StatusDraft},
}

func canTransition(from, to types.ContentStatus) bool {
	if from == to {
		return true
	}
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// ContentInput is the admin editor's form state. On update, a nil body
// (Content and ContentHTML) or nil ContentBlocks leaves the stored value alone.
type ContentInput struct {
	Title               string                 `json:"title"`
	Slug                string                 `json:"slug"`
	ContentType         types.ContentType      `json:"content_type"`
	Status              types.ContentStatus    `json:"status"`
	Content             *string                `json:"content"`
	ContentHTML         *string                `json:"content_html"`
	Excerpt             string                 `json:"excerpt"`
	Author              string                 `json:"author"`
	Tags                []string               `json:"tags"`
	Industries          []string               `json:"industries"`
	Goals               []string               `json:"goals"`
	MartechTools        []string               `json:"martech_tools"`
	ToolCategories      []string               `json:"tool_categories"`
	SourceType          types.SourceType       `json:"source_type"`
	SourceName          string                 `json:"source_name"`
	SourceURL           string                 `json:"source_url"`
	SourceAuthor        string                 `json:"source_author"`
	SourcePublishedDate string                 `json:"source_published_date"`
	ExternalSources     []types.ExternalSource `json:"external_sources"`
	OverallSummary      string                 `json:"overall_summary"`
	PersxPerspective    string                 `json:"persx_perspective"`
	ContentBlocks       json.RawMessage        `json:"content_blocks"`
}

// ContentView is a record plus the HTML the rich-text editor loads.
type ContentView struct {
	*types.ContentRecord
	ContentHTML string `json:"content_html"`
}

type ContentListInput struct {
	Status string
	Type   string
	Tag    string
	Limit  int
	Offset int
}

type ContentService interface {
	List(ctx context.Context, in ContentListInput) ([]*types.ContentRecord, int64, error)
	Get(ctx context.Context, id uuid.UUID) (*ContentView, error)
	Create(ctx context.Context, in ContentInput) (*types.ContentRecord, error)
	Update(ctx context.Context, id uuid.UUID, in ContentInput) (*types.ContentRecord, error)
	SetStatus(ctx context.Context, id uuid.UUID, status types.ContentStatus) (*types.ContentRecord, error)

	GetPublished(ctx context.Context, slug string) (*types.ContentRecord, error)
	ListPublished(ctx context.Context, contentType types.ContentType, tag string) ([]*types.ContentRecord, error)
	Related(ctx context.Context, rec *types.ContentRecord, limit int) ([]*types.ContentRecord, error)

	ListBlocks(ctx context.Context, id uuid.UUID) ([]blocks.Block, error)
	AddBlock(ctx context.Context, id uuid.UUID, t blocks.Type) (blocks.Block, error)
	UpdateBlock(ctx context.Context, id uuid.UUID, blockID string, in BlockUpdate) (blocks.Block, error)
	DeleteBlock(ctx context.Context, id uuid.UUID, blockID string) error
	MoveBlock(ctx context.Context, id uuid.UUID, blockID string, direction string) ([]blocks.Block, error)
}

type contentService struct {
	db          *gorm.DB
	log         *logger.Logger
	contentRepo repos.ContentRepo
	tags        TagService
	md          *markdown.Converter
	graph       graph.ContentGraph
	pages       *PageCache
	now         func() time.Time
}

func NewContentService(
	db *gorm.DB,
	log *logger.Logger,
	contentRepo repos.ContentRepo,
	tags TagService,
	md *markdown.Converter,
	contentGraph graph.ContentGraph,
	pages *PageCache,
) ContentService {
	return &contentService{
		db:          db,
		log:         log.With("service", "ContentService"),
		contentRepo: contentRepo,
		tags:        tags,
		md:          md,
		graph:       contentGraph,
		pages:       pages,
		now:         time.Now,
	}
}

func (s *contentService) List(ctx context.Context, in ContentListInput) ([]*types.ContentRecord, int64, error) {
	f := repos.ContentListFilter{Tag: in.Tag, Limit: in.Limit, Offset: in.Offset}
	if in.Status != "" {
		st := types.ContentStatus(in.Status)
		if !st.Valid() {
			return nil, 0, fmt.Errorf("%w: unknown status %q", perrors.ErrInvalidArgument, in.Status)
		}
		f.Status = st
	}
	if in.Type != "" {
		t := types.ContentType(in.Type)
		if !t.Valid() {
			return nil, 0, ErrInvalidContentType
		}
		f.Type = t
	}
	return s.contentRepo.List(dbctx.Of(ctx), f)
}

func (s *contentService) load(ctx context.Context, id uuid.UUID) (*types.ContentRecord, error) {
	rec, err := s.contentRepo.GetByID(dbctx.Of(ctx), id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, perrors.ErrNotFound
	}
	return rec, nil
}

func (s *contentService) Get(ctx context.Context, id uuid.UUID) (*ContentView, error) {
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	html, err := s.md.ToHTML(rec.Content)
	if err != nil {
		return nil, fmt.Errorf("render content html: %w", err)
	}
	return &ContentView{ContentRecord: rec, ContentHTML: html}, nil
}

func (s *contentService) Create(ctx context.Context, in ContentInput) (*types.ContentRecord, error) {
	rec := &types.ContentRecord{Status: types.StatusDraft, SourceType: types.SourceOriginal}
	if err := s.apply(rec, in, true); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		if err := s.ensureSlug(dbc, rec, uuid.Nil); err != nil {
			return err
		}
		if err := s.contentRepo.Create(dbc, rec); err != nil {
			return err
		}
		return s.tags.ApplyUsageDelta(dbc, nil, rec.Tags)
	})
	if err != nil {
		return nil, err
	}
	s.afterSave(ctx, rec)
	s.log.Info("content created", "content_id", rec.ID.String(), "slug", rec.Slug, "status", string(rec.Status))
	return rec, nil
}

func (s *contentService) Update(ctx context.Context, id uuid.UUID, in ContentInput) (*types.ContentRecord, error) {
	var rec *types.ContentRecord
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := dbctx.Context{Ctx: ctx, Tx: tx}
		cur, err := s.contentRepo.GetByID(dbc, id)
		if err != nil {
			return err
		}
		if cur == nil {
			return perrors.ErrNotFound
		}
		beforeTags := append([]string(nil), cur.Tags...)
		if err := s.apply(cur, in, false); err != nil {
			return err
		}
		if err := s.ensureSlug(dbc, cur, cur.ID); err != nil {
			return err
		}
		if err := s.contentRepo.Save(dbc, cur); err != nil {
			return err
		}
		if err := s.tags.ApplyUsageDelta(dbc, beforeTags, cur.Tags); err != nil {
			return err
		}
		rec = cur
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.afterSave(ctx, rec)
	s.log.Info("content updated", "content_id", rec.ID.String(), "status", string(rec.Status))
	return rec, nil
}

func (s *contentService) SetStatus(ctx context.Context, id uuid.UUID, status types.ContentStatus) (*types.ContentRecord, error) {
	if !status.Valid() {
		return nil, ErrInvalidStatus
	}
	rec, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !canTransition(rec.Status, status) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidStatus, rec.Status, status)
	}
	if rec.Status == status {
		return rec, nil
	}
	rec.Status = status
	s.stampPublished(rec)
	if err := s.contentRepo.Save(dbctx.Of(ctx), rec); err != nil {
		return nil, err
	}
	s.afterSave(ctx, rec)
	s.log.Info("content status changed", "content_id", rec.ID.String(), "status", string(status))
	return rec, nil
}

// apply copies the form state onto rec after validation.
func (s *contentService) apply(rec *types.ContentRecord, in ContentInput, creating bool) error {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return fmt.Errorf("%w: title is required", perrors.ErrInvalidArgument)
	}
	if in.ContentType == "" && creating {
		return ErrInvalidContentType
	}
	if in.ContentType != "" {
		if !in.ContentType.Valid() {
			return ErrInvalidContentType
		}
		rec.ContentType = in.ContentType
	}
	if in.Status != "" {
		if !in.Status.Valid() || (!creating && !canTransition(rec.Status, in.Status)) {
			return ErrInvalidStatus
		}
		rec.Status = in.Status
	}
	if in.SourceType != "" {
		if !in.SourceType.Valid() {
			return fmt.Errorf("%w: invalid source type", perrors.ErrInvalidArgument)
		}
		rec.SourceType = in.SourceType
	}

	switch {
	case in.ContentHTML != nil:
		body, err := s.md.ToMarkdown(*in.ContentHTML)
		if err != nil {
			return fmt.Errorf("%w: content_html: %v", perrors.ErrInvalidArgument, err)
		}
		rec.Content = body
	case in.Content != nil:
		rec.Content = strings.TrimSpace(*in.Content)
	}

	if in.ContentBlocks != nil {
		normalized, err := normalizeBlocks(in.ContentBlocks)
		if err != nil {
			return err
		}
		rec.ContentBlocks = normalized
	}

	rec.Title = title
	if in.Slug != "" {
		rec.Slug = Slugify(in.Slug)
	}
	rec.Excerpt = strings.TrimSpace(in.Excerpt)
	if rec.Excerpt == "" {
		rec.Excerpt = s.md.Excerpt(rec.Content, excerptLen)
	}
	rec.Author = strings.TrimSpace(in.Author)
	rec.Tags = cleanList(in.Tags)
	rec.Industries = cleanList(in.Industries)
	rec.Goals = cleanList(in.Goals)
	rec.MartechTools = cleanList(in.MartechTools)
	rec.ToolCategories = cleanList(in.ToolCategories)
	rec.SourceName = strings.TrimSpace(in.SourceName)
	rec.SourceURL = strings.TrimSpace(in.SourceURL)
	rec.SourceAuthor = strings.TrimSpace(in.SourceAuthor)
	rec.SourcePublishedDate = strings.TrimSpace(in.SourcePublishedDate)
	rec.ExternalSources = datatypes.JSONSlice[types.ExternalSource](in.ExternalSources)
	if rec.ExternalSources == nil {
		rec.ExternalSources = datatypes.JSONSlice[types.ExternalSource]{}
	}
	rec.OverallSummary = strings.TrimSpace(in.OverallSummary)
	rec.PersxPerspective = strings.TrimSpace(in.PersxPerspective)
	s.stampPublished(rec)
	return nil
}

func (s *contentService) stampPublished(rec *types.ContentRecord) {
	if rec.Status == types.StatusPublished && rec.PublishedAt == nil {
		now := s.now().UTC()
		rec.PublishedAt = &now
	}
}

func (s *contentService) ensureSlug(dbc dbctx.Context, rec *types.ContentRecord, self uuid.UUID) error {
	if rec.Slug == "" {
		rec.Slug = Slugify(rec.Title)
	}
	if rec.Slug == "" {
		return fmt.Errorf("%w: cannot derive a slug from the title", perrors.ErrInvalidArgument)
	}
	taken, err := s.contentRepo.SlugExists(dbc, rec.Slug, self)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: slug %q is already in use", perrors.ErrConflict, rec.Slug)
	}
	return nil
}

// normalizeBlocks decodes a stored or submitted block array and re-encodes it
// with dense 1-based order.
func normalizeBlocks(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return datatypes.JSON("[]"), nil
	}
	bs, err := blocks.ParseList(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBlocks, err)
	}
	return encodeBlocks(blocks.NewList(bs).Blocks())
}

func encodeBlocks(bs []blocks.Block) (datatypes.JSON, error) {
	if len(bs) == 0 {
		return datatypes.JSON("[]"), nil
	}
	out, err := json.Marshal(bs)
	if err != nil {
		return nil, fmt.Errorf("encode blocks: %w", err)
	}
	return datatypes.JSON(out), nil
}

func (s *contentService) afterSave(ctx context.Context, rec *types.ContentRecord) {
	s.pages.InvalidateAll(ctx)
	if s.graph != nil && s.graph.Enabled() {
		if err := s.graph.Upsert(ctx, rec); err != nil {
			s.log.Warn("content graph sync failed", "content_id", rec.ID.String(), "error", err)
		}
	}
}

func (s *contentService) GetPublished(ctx context.Context, slug string) (*types.ContentRecord, error) {
	rec, err := s.contentRepo.GetBySlug(dbctx.Of(ctx), slug)
	if err != nil {
		return nil, err
	}
	if rec == nil || !rec.IsPublished() {
		return nil, perrors.ErrNotFound
	}
	return rec, nil
}

func (s *contentService) ListPublished(ctx context.Context, contentType types.ContentType, tag string) ([]*types.ContentRecord, error) {
	recs, _, err := s.contentRepo.List(dbctx.Of(ctx), repos.ContentListFilter{
		Status: types.StatusPublished,
		Type:   contentType,
		Tag:    tag,
		Limit:  200,
	})
	return recs, err
}

// Related prefers the neo4j graph and falls back to SQL tag overlap.
func (s *contentService) Related(ctx context.Context, rec *types.ContentRecord, limit int) ([]*types.ContentRecord, error) {
	if rec == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 3
	}
	dbc := dbctx.Of(ctx)
	if s.graph != nil && s.graph.Enabled() {
		ids, err := s.graph.Related(ctx, rec.ID.String(), limit)
		if err != nil {
			s.log.Warn("graph related lookup failed, using tag overlap", "content_id", rec.ID.String(), "error", err)
		} else if len(ids) > 0 {
			out, err := s.byIDsInOrder(dbc, ids)
			if err == nil && len(out) > 0 {
				return out, nil
			}
		}
	}
	return s.contentRepo.RelatedByTags(dbc, rec, limit)
}

func (s *contentService) byIDsInOrder(dbc dbctx.Context, ids []string) ([]*types.ContentRecord, error) {
	uids := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if u, err := uuid.Parse(id); err == nil {
			uids = append(uids, u)
		}
	}
	recs, err := s.contentRepo.GetByIDs(dbc, uids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*types.ContentRecord, len(recs))
	for _, r := range recs {
		byID[r.ID] = r
	}
	out := make([]*types.ContentRecord, 0, len(uids))
	for _, u := range uids {
		if r, ok := byID[u]; ok && r.IsPublished() {
			out = append(out, r)
		}
	}
	return out, nil
}
