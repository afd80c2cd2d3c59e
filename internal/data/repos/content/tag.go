package content

import (
	"strings"

	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type TagRepo interface {
	List(dbc dbctx.Context, category *types.TagCategory) ([]*types.Tag, error)
	Create(dbc dbctx.Context, tags []*types.Tag) ([]*types.Tag, error)
	GetByNames(dbc dbctx.Context, names []string) ([]*types.Tag, error)
	// AdjustUsage adds delta to every named tag's usage_count, floored at zero.
	AdjustUsage(dbc dbctx.Context, names []string, delta int) error
}

type tagRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTagRepo(db *gorm.DB, baseLog *logger.Logger) TagRepo {
	return &tagRepo{db: db, log: baseLog.With("repo", "TagRepo")}
}

func (r *tagRepo) List(dbc dbctx.Context, category *types.TagCategory) ([]*types.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	q := transaction.WithContext(dbc.Ctx).Model(&types.Tag{})
	if category != nil {
		q = q.Where("category = ?", *category)
	}
	var out []*types.Tag
	if err := q.Order("usage_count DESC").Order("name ASC").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) Create(dbc dbctx.Context, tags []*types.Tag) ([]*types.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if len(tags) == 0 {
		return []*types.Tag{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&tags).Error; err != nil {
		return nil, mapWriteErr(err)
	}
	return tags, nil
}

func (r *tagRepo) GetByNames(dbc dbctx.Context, names []string) ([]*types.Tag, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	var out []*types.Tag
	if len(names) == 0 {
		return out, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("name IN ?", names).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *tagRepo) AdjustUsage(dbc dbctx.Context, names []string, delta int) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	clean := make([]string, 0, len(names))
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			clean = append(clean, n)
		}
	}
	if len(clean) == 0 || delta == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Model(&types.Tag{}).
		Where("name IN ?", clean).
		Update("usage_count", gorm.Expr("CASE WHEN usage_count + ? < 0 THEN 0 ELSE usage_count + ? END", delta, delta)).Error
}
