package content

import (
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	perrors "github.com/persx/persx-sub000/internal/pkg/errors"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type ListFilter struct {
	Status   types.ContentStatus
	Type     types.ContentType
	Tag      string
	Industry string
	Limit    int
	Offset   int
}

type ContentRepo interface {
	Create(dbc dbctx.Context, rec *types.ContentRecord) error
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContentRecord, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ContentRecord, error)
	GetBySlug(dbc dbctx.Context, slug string) (*types.ContentRecord, error)
	SlugExists(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error)
	List(dbc dbctx.Context, f ListFilter) ([]*types.ContentRecord, int64, error)
	Save(dbc dbctx.Context, rec *types.ContentRecord) error
	UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error
	// RelatedByTags ranks other published records by the number of shared tags.
	RelatedByTags(dbc dbctx.Context, rec *types.ContentRecord, limit int) ([]*types.ContentRecord, error)
}

type contentRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRepo(db *gorm.DB, baseLog *logger.Logger) ContentRepo {
	return &contentRepo{
		db:  db,
		log: baseLog.With("repo", "ContentRepo"),
	}
}

func mapWriteErr(err error) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return perrors.ErrConflict
	}
	return err
}

func (r *contentRepo) Create(dbc dbctx.Context, rec *types.ContentRecord) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if rec == nil {
		return nil
	}
	return mapWriteErr(transaction.WithContext(dbc.Ctx).Create(rec).Error)
}

func (r *contentRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.ContentRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil {
		return nil, nil
	}
	var rec types.ContentRecord
	err := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Limit(1).Find(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *contentRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.ContentRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.ContentRecord
	if len(ids) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *contentRepo) GetBySlug(dbc dbctx.Context, slug string) (*types.ContentRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		return nil, nil
	}
	var rec types.ContentRecord
	err := transaction.WithContext(dbc.Ctx).Where("slug = ?", slug).Limit(1).Find(&rec).Error
	if err != nil {
		return nil, err
	}
	if rec.ID == uuid.Nil {
		return nil, nil
	}
	return &rec, nil
}

func (r *contentRepo) SlugExists(dbc dbctx.Context, slug string, excludeID uuid.UUID) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	q := transaction.WithContext(dbc.Ctx).
		Model(&types.ContentRecord{}).
		Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *contentRepo) List(dbc dbctx.Context, f ListFilter) ([]*types.ContentRecord, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.ContentRecord{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Type != "" {
		q = q.Where("content_type = ?", f.Type)
	}
	if tag := strings.TrimSpace(f.Tag); tag != "" {
		q = q.Where(datatypes.JSONArrayQuery("tags").Contains(tag))
	}
	if ind := strings.TrimSpace(f.Industry); ind != "" {
		q = q.Where(datatypes.JSONArrayQuery("industries").Contains(ind))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit := f.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	order := "updated_at DESC"
	if f.Status == types.StatusPublished {
		order = "published_at DESC, updated_at DESC"
	}
	var out []*types.ContentRecord
	if err := q.Order(order).Limit(limit).Offset(f.Offset).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (r *contentRepo) Save(dbc dbctx.Context, rec *types.ContentRecord) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if rec == nil || rec.ID == uuid.Nil {
		return perrors.ErrInvalidArgument
	}
	return mapWriteErr(transaction.WithContext(dbc.Ctx).Save(rec).Error)
}

func (r *contentRepo) UpdateFields(dbc dbctx.Context, id uuid.UUID, updates map[string]interface{}) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if id == uuid.Nil || len(updates) == 0 {
		return nil
	}
	res := transaction.WithContext(dbc.Ctx).
		Model(&types.ContentRecord{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return mapWriteErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return perrors.ErrNotFound
	}
	return nil
}

func (r *contentRepo) RelatedByTags(dbc dbctx.Context, rec *types.ContentRecord, limit int) ([]*types.ContentRecord, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if rec == nil || len(rec.Tags) == 0 {
		return []*types.ContentRecord{}, nil
	}
	if limit <= 0 {
		limit = 3
	}

	var anyTag *gorm.DB
	for _, t := range rec.Tags {
		cond := datatypes.JSONArrayQuery("tags").Contains(t)
		if anyTag == nil {
			anyTag = r.db.Where(cond)
		} else {
			anyTag = anyTag.Or(cond)
		}
	}

	var candidates []*types.ContentRecord
	if err := transaction.WithContext(dbc.Ctx).
		Where("status = ?", types.StatusPublished).
		Where("id <> ?", rec.ID).
		Where(anyTag).
		Limit(100).
		Find(&candidates).Error; err != nil {
		return nil, err
	}

	mine := make(map[string]bool, len(rec.Tags))
	for _, t := range rec.Tags {
		mine[t] = true
	}
	score := make(map[uuid.UUID]int, len(candidates))
	for _, c := range candidates {
		for _, t := range c.Tags {
			if mine[t] {
				score[c.ID]++
			}
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		si, sj := score[candidates[i].ID], score[candidates[j].ID]
		if si != sj {
			return si > sj
		}
		return candidates[i].Title < candidates[j].Title
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}
	return candidates, nil
}
