package leads

import (
	"gorm.io/gorm"

	types "github.com/persx/persx-sub000/internal/domain"
	"github.com/persx/persx-sub000/internal/pkg/dbctx"
	"github.com/persx/persx-sub000/internal/platform/logger"
)

type RoadmapSubmissionRepo interface {
	Create(dbc dbctx.Context, sub *types.RoadmapSubmission) error
	ListRecent(dbc dbctx.Context, limit int) ([]*types.RoadmapSubmission, error)
}

type roadmapSubmissionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRoadmapSubmissionRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapSubmissionRepo {
	return &roadmapSubmissionRepo{db: db, log: baseLog.With("repo", "RoadmapSubmissionRepo")}
}

func (r *roadmapSubmissionRepo) Create(dbc dbctx.Context, sub *types.RoadmapSubmission) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if sub == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).Create(sub).Error
}

func (r *roadmapSubmissionRepo) ListRecent(dbc dbctx.Context, limit int) ([]*types.RoadmapSubmission, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	var out []*types.RoadmapSubmission
	if err := transaction.WithContext(dbc.Ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}
