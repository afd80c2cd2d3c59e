package leads

import (
	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type ContactSubmissionRepo interface {
	Create(dbc dbctx.Context, sub *types.ContactSubmission) error
	ListRecent(dbc dbctx.Context, limit int) ([]*types.ContactSubmission, error)
}

type contactSubmissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContactSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) ContactSubmissionRepo {
	return &contactSubmissionRepo{db: db, log: baseLog.With("repo", "ContactSubmissionRepo")}
}

func (r *contactSubmissionRepo) Create(dbc dbctx.Context, sub *types.ContactSubmission) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if sub == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).Create(sub).Error
}

func (r *contactSubmissionRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.ContactSubmission, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []*types.ContactSubmission
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
